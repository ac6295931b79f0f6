package handlers

import (
	"net/http"

	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/anonto42/threadboard/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comment trees
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/postings/:posting_id", h.CreateComment)
	g.POST("/postings/:posting_id/:comment_id", h.CreateComment)
	g.GET("/comments", h.GetAllComments)
}

// CreateComment adds a top-level comment to a posting, or a reply when the
// route names a comment_id
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postingID, ok := idParam(c, "posting_id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Posting not found")
	}

	var parentID *string
	if id := c.Param("comment_id"); id != "" {
		parentID = &id
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.AddComment(c.Request().Context(), postingID, parentID, *req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetAllComments returns every comment tree document as stored
func (h *CommentHandler) GetAllComments(c echo.Context) error {
	trees, err := h.commentService.ListCommentTrees(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, trees)
}
