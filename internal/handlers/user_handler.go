package handlers

import (
	"net/http"

	"matchboxd_backend/internal/services"
	"matchboxd_backend/internal/services/dto"
	"matchboxd_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user's own engagement views: diary,
// reviews, favorites and watchlist.
type UserHandler struct {
	*BaseHandler
	engagementService services.EngagementService
}

func NewUserHandler(v *validator.Validator, engagementService services.EngagementService) *UserHandler {
	return &UserHandler{
		BaseHandler:       NewBaseHandler(v),
		engagementService: engagementService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/users/me")
	{
		me.GET("/diary", h.GetDiary)
		me.GET("/reviews", h.GetReviews)
		me.GET("/favorites", h.GetFavorites)
		me.POST("/reviews/remove", h.RemoveReview)
	}

	watchlist := rg.Group("/watchlist")
	{
		watchlist.GET("", h.GetWatchlist)
		watchlist.POST("/toggle", h.ToggleWatchlist)
	}
}

func (h *UserHandler) GetDiary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	entries, err := h.engagementService.GetUserDiary(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *UserHandler) GetReviews(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reviews, err := h.engagementService.GetUserReviews(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *UserHandler) GetFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	favorites, err := h.engagementService.GetUserFavorites(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *UserHandler) RemoveReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.MatchRef
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.engagementService.RemoveReview(h.GetDB(c), userID, req.MatchID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review removed"})
}

func (h *UserHandler) GetWatchlist(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	summaries, err := h.engagementService.GetWatchlist(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *UserHandler) ToggleWatchlist(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.MatchRef
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.engagementService.ToggleWatchlist(h.GetDB(c), userID, req.MatchID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
