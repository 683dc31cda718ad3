package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/controllers"
)

func SetupOpenPostRoutes(open *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController) {
	posts := open.Group("/posts")
	{
		posts.GET("", postController.GetAllPosts)
		posts.GET("/:id", postController.GetPostDetail)
		posts.GET("/:id/comments", commentController.GetPostComments)
	}

	users := open.Group("/users")
	{
		users.GET("/:userId/posts", postController.GetUserPosts)
	}
}

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
	}
}
