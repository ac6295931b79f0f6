package handlers

import (
	"net/http"

	"github.com/anonto42/threadboard/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MemberHandler handles HTTP requests related to members
type MemberHandler struct {
	postingService *services.PostingService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(postingService *services.PostingService) *MemberHandler {
	return &MemberHandler{postingService: postingService}
}

// RegisterMemberRoutes registers member-related routes
func (h *MemberHandler) RegisterMemberRoutes(g *echo.Group) {
	g.GET("/members", h.GetMembers)
	g.GET("/members/:member_id/postings", h.GetMemberPostings)
	g.PUT("/members/:member_id/postings/:posting_id", h.LinkPosting)
}

func (h *MemberHandler) GetMembers(c echo.Context) error {
	members, err := h.postingService.GetMembers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, members)
}

// GetMemberPostings lists the postings a member is linked to
func (h *MemberHandler) GetMemberPostings(c echo.Context) error {
	memberID, ok := idParam(c, "member_id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Member not found")
	}

	postings, err := h.postingService.GetMemberPostings(c.Request().Context(), memberID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, postings)
}

// LinkPosting records the member as an author of the posting
func (h *MemberHandler) LinkPosting(c echo.Context) error {
	memberID, ok := idParam(c, "member_id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Member not found")
	}
	postingID, ok := idParam(c, "posting_id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Posting not found")
	}

	if err := h.postingService.LinkMember(c.Request().Context(), memberID, postingID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
