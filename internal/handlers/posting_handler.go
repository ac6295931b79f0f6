package handlers

import (
	"net/http"

	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/anonto42/threadboard/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostingHandler handles HTTP requests related to postings
type PostingHandler struct {
	postingService *services.PostingService
	commentService *services.CommentService
}

// NewPostingHandler creates a new PostingHandler
func NewPostingHandler(postingService *services.PostingService, commentService *services.CommentService) *PostingHandler {
	return &PostingHandler{
		postingService: postingService,
		commentService: commentService,
	}
}

// RegisterPostingRoutes registers posting-related routes
func (h *PostingHandler) RegisterPostingRoutes(g *echo.Group) {
	g.POST("/postings", h.CreatePosting)
	g.GET("/postings", h.GetPostings)
	g.GET("/postings/:posting_id", h.GetPosting)
}

// CreatePosting creates a posting and links it to its author
func (h *PostingHandler) CreatePosting(c echo.Context) error {
	var req models.CreatePostingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	posting, err := h.postingService.CreatePosting(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, posting)
}

// GetPostings lists every posting
func (h *PostingHandler) GetPostings(c echo.Context) error {
	postings, err := h.postingService.GetPostings(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, postings)
}

// GetPosting returns one posting together with its comment tree
func (h *PostingHandler) GetPosting(c echo.Context) error {
	postingID, ok := idParam(c, "posting_id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Posting not found")
	}

	posting, err := h.commentService.GetPostingWithComments(c.Request().Context(), postingID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posting)
}
