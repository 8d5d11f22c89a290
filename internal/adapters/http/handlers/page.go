package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/jsamuelsen/quote-image-generator/internal/app"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Sample text the form opens with.
const (
	DefaultQuote  = "The greatest glory in living lies not in never falling, but in rising every time we fall."
	DefaultAuthor = "Nelson Mandela"
)

// FormStatus is the lifecycle of one form instance.
type FormStatus string

const (
	FormIdle       FormStatus = "idle"
	FormSubmitting FormStatus = "submitting"
	FormSucceeded  FormStatus = "succeeded"
	FormFailed     FormStatus = "failed"
)

// FormState is what the page renders: the field values, the status and
// the outcome of the last submission.
//
// idle -> submitting -> succeeded | failed. A success clears the fields, a
// failure keeps them so the user can correct the input.
type FormState struct {
	Status  FormStatus
	Quote   string
	Author  string
	Error   string
	ImageID string
}

// NewFormState returns an idle form holding the sample quote.
func NewFormState() FormState {
	return FormState{Status: FormIdle, Quote: DefaultQuote, Author: DefaultAuthor}
}

// Submit moves an idle or settled form to submitting with the given values.
// A form that is already submitting is returned unchanged.
func (s FormState) Submit(quote, author string) FormState {
	if s.Status == FormSubmitting {
		return s
	}

	return FormState{Status: FormSubmitting, Quote: quote, Author: author}
}

// Resolve settles a submitting form with the result of the submission.
func (s FormState) Resolve(resp SubmitResponse) FormState {
	if s.Status != FormSubmitting {
		return s
	}

	if resp.Error != "" || resp.ImageID == "" {
		s.Status = FormFailed
		s.Error = resp.Error

		if s.Error == "" {
			s.Error = MsgInvalidInput
		}

		return s
	}

	return FormState{Status: FormSucceeded, ImageID: resp.ImageID}
}

// Failed reports whether the last submission was rejected.
func (s FormState) Failed() bool { return s.Status == FormFailed }

// Succeeded reports whether the last submission produced an image.
func (s FormState) Succeeded() bool { return s.Status == FormSucceeded }

// ImageURL is the card URL of a succeeded submission.
func (s FormState) ImageURL() string {
	if !s.Succeeded() {
		return ""
	}

	return ImageURL(s.ImageID)
}

// QuoteLength counts characters, matching the length rule of the validator.
func (s FormState) QuoteLength() int {
	return utf8.RuneCountInString(s.Quote)
}

type pageData struct {
	Title           string
	Form            FormState
	MaxQuoteLength  int
	MaxAuthorLength int
}

// PageHandler serves the HTML form.
type PageHandler struct {
	quotes *QuoteHandler
	title  string
}

// NewPageHandler creates a page handler that submits through quotes.
func NewPageHandler(quotes *QuoteHandler, title string) *PageHandler {
	if title == "" {
		title = "Quote Image Generator"
	}

	return &PageHandler{quotes: quotes, title: title}
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, NewFormState())
}

// Submit handles POST / and re-renders the page with the outcome.
func (h *PageHandler) Submit(c *gin.Context) {
	quote, hasQuote := c.GetPostForm("quote")
	author, hasAuthor := c.GetPostForm("author")

	in := app.QuoteInput{}
	if hasQuote {
		in.Quote = &quote
	}

	if hasAuthor {
		in.Author = &author
	}

	state := NewFormState().Submit(quote, author)
	resp, status := h.quotes.submit(c, in)
	state = state.Resolve(resp)

	if status == http.StatusCreated {
		status = http.StatusOK
	}

	h.render(c, status, state)
}

func (h *PageHandler) render(c *gin.Context, status int, state FormState) {
	c.Render(status, render.HTML{
		Template: pageTemplate,
		Name:     "index",
		Data: pageData{
			Title:           h.title,
			Form:            state,
			MaxQuoteLength:  domain.QuoteMaxLength,
			MaxAuthorLength: domain.AuthorMaxLength,
		},
	})
}

// RegisterPageRoutes registers GET / and POST /.
func (h *PageHandler) RegisterPageRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/", h.Submit)
}
