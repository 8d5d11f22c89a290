// Package repository implements ports.QuoteStore.
//
// GormStore persists entries in PostgreSQL, MemoryStore keeps them in process
// for local runs and tests, and CachedStore puts a read-through cache in front
// of either one. Entries are never modified after creation, so cached copies
// never need invalidating.
package repository
