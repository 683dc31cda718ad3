package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/services"
)

type FeedController struct {
	Feed services.FeedService
}

func NewFeedController(feed services.FeedService) *FeedController {
	return &FeedController{Feed: feed}
}

// GetUserFeed godoc
// @Summary Get user's personalized feed
// @Description Returns the newest-first posts of the caller and everyone they follow, enriched with engagement counts and the caller's vote per post
// @Tags feed
// @Accept json
// @Produce json
// @Param limit query integer false "Page size (default: 20, max: 50)"
// @Param offset query integer false "Offset (default: 0)"
// @Success 200 {object} map[string]interface{}
// @Router /feed [get]
func (fc *FeedController) GetUserFeed(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	p := bindPagination(c)

	posts, total, err := fc.Feed.GetFeedForUser(user.UserID, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       posts,
		Pagination: paginationMeta(p, total),
	})
}
