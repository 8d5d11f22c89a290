// Package acl keeps the font host's HTTP details out of the rest of the
// service. Callers only ever see domain types and domain errors.
//
// [FontClient] implements [ports.FontSource] on top of [BaseAdapter], which
// issues capped GET requests through a [clients.Client]. [MapHTTPError]
// classifies failures:
//
//	404, 410            domain.ErrNotFound
//	401, 403            domain.ErrForbidden
//	everything else     domain.ErrUnavailable
//
// The quote service wraps any of these in a render failure.
package acl
