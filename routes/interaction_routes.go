package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	// Post interactions
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/like", interactionController.LikePost)
		posts.POST("/:id/dislike", interactionController.DislikePost)
	}

	// User interactions
	users := protected.Group("/users")
	{
		users.POST("/:userId/follow", interactionController.FollowUser)
		users.DELETE("/:userId/follow", interactionController.UnfollowUser)
	}
}
