package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/controllers"
)

func SetupOpenUserRoutes(open *gin.RouterGroup, userController *controllers.UserController, interactionController *controllers.InteractionController) {
	users := open.Group("/users")
	{
		users.GET("/search", userController.SearchUsers)
		users.GET("/:userId/followers", interactionController.GetUserFollowers)
		users.GET("/:userId/following", interactionController.GetUserFollowing)
		users.GET("/username/:username", userController.GetUserProfile)
	}
}
