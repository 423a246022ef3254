package handlers

import (
	"net/http"

	"matchboxd_backend/internal/services"
	"matchboxd_backend/internal/services/dto"
	"matchboxd_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchHandler serves match views and the per-match engagement writes.
type MatchHandler struct {
	*BaseHandler
	engagementService services.EngagementService
}

func NewMatchHandler(v *validator.Validator, engagementService services.EngagementService) *MatchHandler {
	return &MatchHandler{
		BaseHandler:       NewBaseHandler(v),
		engagementService: engagementService,
	}
}

// RegisterPublicRoutes mounts the read-only match views.
func (h *MatchHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	matches := rg.Group("/matches")
	{
		matches.GET("", h.ListMatches)
		matches.GET("/:id", h.GetMatch)
		matches.GET("/:id/comments", h.GetComments)
	}
}

// RegisterProtectedRoutes mounts the per-match engagement writes and probes.
func (h *MatchHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	matches := rg.Group("/matches")
	{
		matches.POST("/:id/rate-comment", h.RateOrComment)
		matches.PUT("/:id/rate-comment", h.UpdateRateOrComment)
		matches.POST("/:id/watch/toggle", h.ToggleWatched)
		matches.POST("/:id/favorite/toggle", h.ToggleFavorite)
		matches.GET("/:id/watched", h.HasWatched)
		matches.GET("/:id/favorited", h.HasFavorited)
	}
}

func (h *MatchHandler) ListMatches(c *gin.Context) {
	summaries, err := h.engagementService.ListMatches(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	detail, err := h.engagementService.GetMatchDetail(h.GetDB(c), matchID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *MatchHandler) GetComments(c *gin.Context) {
	matchID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	comments, err := h.engagementService.GetMatchComments(h.GetDB(c), matchID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *MatchHandler) RateOrComment(c *gin.Context) {
	userID, matchID, req, ok := h.bindRateComment(c)
	if !ok {
		return
	}

	if err := h.engagementService.RateOrComment(h.GetDB(c), userID, matchID, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review saved"})
}

func (h *MatchHandler) UpdateRateOrComment(c *gin.Context) {
	userID, matchID, req, ok := h.bindRateComment(c)
	if !ok {
		return
	}

	if err := h.engagementService.UpdateRateOrComment(h.GetDB(c), userID, matchID, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated"})
}

func (h *MatchHandler) bindRateComment(c *gin.Context) (uint, uint, *dto.RateCommentRequest, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return 0, 0, nil, false
	}

	matchID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return 0, 0, nil, false
	}

	var req dto.RateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return 0, 0, nil, false
	}
	return userID, matchID, &req, true
}

func (h *MatchHandler) ToggleWatched(c *gin.Context) {
	h.toggle(c, h.engagementService.ToggleWatched)
}

func (h *MatchHandler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, h.engagementService.ToggleFavorite)
}

func (h *MatchHandler) toggle(c *gin.Context, fn func(db *gorm.DB, userID, matchID uint) (*dto.ToggleResult, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	matchID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	result, err := fn(h.GetDB(c), userID, matchID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MatchHandler) HasWatched(c *gin.Context) {
	h.probe(c, h.engagementService.HasWatched)
}

func (h *MatchHandler) HasFavorited(c *gin.Context) {
	h.probe(c, h.engagementService.HasFavorited)
}

func (h *MatchHandler) probe(c *gin.Context, fn func(db *gorm.DB, userID, matchID uint) (bool, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	matchID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	active, err := fn(h.GetDB(c), userID, matchID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}
