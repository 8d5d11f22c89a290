package app

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

// QuoteInput carries the raw fields of a quote submission.
// A nil field means the submitter did not send it at all.
type QuoteInput struct {
	Quote  *string
	Author *string
}

// quoteFields mirrors QuoteInput with the constraints attached.
// Field order matters: quote errors are reported before author errors.
type quoteFields struct {
	Quote  string `validate:"required,min=10,max=280"`
	Author string `validate:"omitempty,max=50"`
}

var quoteValidate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQuoteInput checks a submission against the quote length rules and
// returns the normalised draft. Only the first violated rule is reported, as a
// *domain.ValidationError whose Message is safe to show to the submitter.
// Values are not trimmed; an empty author becomes an absent author. Invalid
// bytes are replaced with U+FFFD before counting.
func ValidateQuoteInput(in QuoteInput) (domain.QuoteDraft, error) {
	fields := quoteFields{
		Quote:  deref(in.Quote),
		Author: deref(in.Author),
	}

	err := quoteValidate.Struct(fields)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return domain.QuoteDraft{}, domain.NewValidationError("", err.Error())
		}

		return domain.QuoteDraft{}, quoteFieldError(fieldErrs[0])
	}

	return domain.QuoteDraft{Quote: fields.Quote, Author: fields.Author}, nil
}

func quoteFieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Quote":
		if fe.Tag() == "max" {
			return domain.NewValidationError("quote", domain.MsgQuoteTooLong)
		}

		return domain.NewValidationError("quote", domain.MsgQuoteTooShort)
	case "Author":
		return domain.NewValidationError("author", domain.MsgAuthorTooLong)
	default:
		return domain.NewValidationError(fe.Field(), fe.Error())
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return validUTF8(*s)
}

// validUTF8 replaces each invalid byte of s with U+FFFD, one per byte, the
// way a browser decodes a malformed form post.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		b.WriteRune(r)
	}

	return b.String()
}
