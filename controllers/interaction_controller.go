package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/models"
	"github.com/mementogram/api-go/services"
)

type InteractionController struct {
	Votes   services.VoteService
	Follows services.FollowService
}

func NewInteractionController(votes services.VoteService, follows services.FollowService) *InteractionController {
	return &InteractionController{Votes: votes, Follows: follows}
}

// LikePost godoc
// @Summary Like a post
// @Description Casts a like; a repeated like removes it, a standing dislike is replaced
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} services.VoteResult
// @Router /posts/{id}/like [post]
func (ic *InteractionController) LikePost(c *gin.Context) {
	ic.castVote(c, models.VoteLike)
}

// DislikePost godoc
// @Summary Dislike a post
// @Description Casts a dislike; a repeated dislike removes it, a standing like is replaced
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} services.VoteResult
// @Router /posts/{id}/dislike [post]
func (ic *InteractionController) DislikePost(c *gin.Context) {
	ic.castVote(c, models.VoteDislike)
}

func (ic *InteractionController) castVote(c *gin.Context, desired int) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := ic.Votes.CastVote(user.UserID, postID, desired)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    result,
	})
}

// FollowUser godoc
// @Summary Follow a user
// @Description Creates a follow edge from the caller to the target user
// @Tags interactions
// @Accept json
// @Produce json
// @Param userId path string true "User ID to follow"
// @Success 201 {object} map[string]interface{}
// @Router /users/{userId}/follow [post]
func (ic *InteractionController) FollowUser(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := ic.Follows.FollowUser(user.UserID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"following": true,
		"message":   "Successfully followed user",
	})
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Description Removes the follow edge from the caller to the target user
// @Tags interactions
// @Accept json
// @Produce json
// @Param userId path string true "User ID to unfollow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/follow [delete]
func (ic *InteractionController) UnfollowUser(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	targetID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := ic.Follows.UnfollowUser(user.UserID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"following": false,
		"message":   "Successfully unfollowed user",
	})
}

// GetUserFollowers godoc
// @Summary Get user's followers
// @Description Returns paginated list of user's followers
// @Tags interactions
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/followers [get]
func (ic *InteractionController) GetUserFollowers(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	p := bindPagination(c)

	followers, total, err := ic.Follows.GetFollowers(userID, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       followers,
		Pagination: paginationMeta(p, total),
	})
}

// GetUserFollowing godoc
// @Summary Get users that a user is following
// @Description Returns paginated list of users that the specified user is following
// @Tags interactions
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{userId}/following [get]
func (ic *InteractionController) GetUserFollowing(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	p := bindPagination(c)

	following, total, err := ic.Follows.GetFollowing(userID, p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       following,
		Pagination: paginationMeta(p, total),
	})
}
