package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-image-generator/internal/app"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

// MsgInvalidInput is returned when a submission body cannot be decoded.
const MsgInvalidInput = "Invalid input."

const imageCacheControl = "public, immutable, no-transform, max-age=31536000"

// QuoteHandler handles the quote submission and image endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// CreateQuoteRequest is the body of POST /api/quotes. It binds from a form
// or from JSON; absent fields stay nil.
type CreateQuoteRequest struct {
	Quote  *string `json:"quote" form:"quote"`
	Author *string `json:"author" form:"author"`
}

// SubmitResponse is the result of a submission: exactly one of the fields is set.
type SubmitResponse struct {
	Error   string `json:"error,omitempty"`
	ImageID string `json:"imageId,omitempty"`
}

// QuoteResponse is the HTTP response structure for a stored quote.
type QuoteResponse struct {
	ID        string    `json:"id"`
	Quote     string    `json:"quote"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ImageURL  string    `json:"imageUrl"`
}

// toQuoteResponse converts a domain QuoteEntry to an HTTP response.
func toQuoteResponse(e *domain.QuoteEntry) *QuoteResponse {
	return &QuoteResponse{
		ID:        e.ID,
		Quote:     e.Quote,
		Author:    e.Author,
		CreatedAt: e.CreatedAt,
		ImageURL:  ImageURL(e.ID),
	}
}

// submit runs the create use case and reduces the outcome to what the
// submitter may see.
func (h *QuoteHandler) submit(c *gin.Context, in app.QuoteInput) (SubmitResponse, int) {
	entry, err := h.service.CreateQuote(c.Request.Context(), in)
	if err == nil {
		return SubmitResponse{ImageID: entry.ID}, http.StatusCreated
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		msg := validation.Message
		if msg == "" {
			msg = MsgInvalidInput
		}

		return SubmitResponse{Error: msg}, http.StatusBadRequest
	}

	return SubmitResponse{Error: domain.MsgDatabaseError}, http.StatusInternalServerError
}

// CreateQuote handles POST /api/quotes.
// Accepts a form or JSON body with quote and optional author.
//
// @Summary Submit a quote
// @Tags quotes
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} SubmitResponse
// @Failure 400 {object} SubmitResponse
// @Failure 500 {object} SubmitResponse
// @Router /api/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest

	err := c.ShouldBind(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, SubmitResponse{Error: MsgInvalidInput})
		return
	}

	resp, status := h.submit(c, app.QuoteInput{Quote: req.Quote, Author: req.Author})
	c.JSON(status, resp)
}

// GetQuoteByID handles GET /api/quotes/:id
//
// @Summary Get a stored quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"quote ID is required",
		).WithTraceID(dto.GetTraceID(c)))
		return
	}

	entry, err := h.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(entry))
}

// QuoteImage handles GET /api/og?id=<id>.
// Errors are plain text so an <img> consumer gets a readable body.
//
// @Summary Render a quote card
// @Tags quotes
// @Produce png
// @Param id query string true "Quote ID"
// @Success 200 {file} binary
// @Failure 400 {string} string "Missing quote ID"
// @Failure 404 {string} string "Quote not found"
// @Failure 500 {string} string "Failed to generate image"
// @Router /api/og [get]
func (h *QuoteHandler) QuoteImage(c *gin.Context) {
	id := c.Query("id")

	img, err := h.service.RenderQuoteImage(c.Request.Context(), id)

	switch {
	case err == nil:
		c.Header("Cache-Control", imageCacheControl)
		c.Header("Content-Disposition", `inline; filename="quote.png"`)
		c.Data(http.StatusOK, h.service.ImageContentType(), img)
	case domain.IsValidation(err):
		c.String(http.StatusBadRequest, domain.MsgMissingQuoteID)
	case domain.IsNotFound(err):
		c.String(http.StatusNotFound, domain.MsgQuoteNotFound)
	default:
		c.String(http.StatusInternalServerError, domain.MsgImageFailed)
	}
}

// RegisterQuoteRoutes registers the quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.CreateQuote)
	quotes.GET("/:id", h.GetQuoteByID)

	rg.GET("/og", h.QuoteImage)
}

// ImageURL is the path of the rendered card for an entry.
func ImageURL(id string) string {
	return "/api/og?id=" + url.QueryEscape(id)
}
