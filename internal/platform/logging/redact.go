package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// userinfo in a URL, as in redis://:secret@cache:6379/0
	credentialURLPattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://[^/\s]*:[^/\s]*@`)

	// key=value DSN carrying a password, as in "host=db password=secret"
	keywordDSNPattern = regexp.MustCompile(`(?i)(^|\s)password=\S+`)

	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
)

// DefaultRedactOptions covers the secrets this service handles: database
// DSNs, cache URLs and any credential-like field. Extend per deployment:
//
//	logging.NewReplaceAttr(masq.WithFieldName("Signature"))
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("dsn"),
		masq.WithFieldName("DSN"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("api_key"),
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(credentialURLPattern),
		masq.WithRegex(keywordDSNPattern),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr returns a slog ReplaceAttr func that redacts with the
// default options plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
