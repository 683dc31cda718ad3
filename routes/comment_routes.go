package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/controllers"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController) {
	posts := protected.Group("/posts")
	{
		posts.POST("/:id/comments", commentController.CreateComment)
	}
}
