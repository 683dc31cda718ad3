package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mementogram/api-go/cache"
	"github.com/mementogram/api-go/controllers"
	"github.com/mementogram/api-go/middleware"
	"github.com/mementogram/api-go/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	engagement := cache.NewEngagementCache(rdb)

	// Initialize services
	userService := services.NewUserService(db)
	postService := services.NewPostService(db, engagement)
	voteService := services.NewVoteService(db, engagement)
	commentService := services.NewCommentService(db, engagement)
	followService := services.NewFollowService(db)
	feedService := services.NewFeedService(db, followService)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db, userService)
	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	interactionController := controllers.NewInteractionController(voteService, followService)
	feedController := controllers.NewFeedController(feedService)
	uploadController := controllers.NewUploadController()

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/check-username", authController.CheckUsername)
		public.POST("/check-email", authController.CheckEmail)
	}

	// Read routes: open to anonymous callers, but claims are populated when a
	// valid token is present so vote status can be personalized.
	open := r.Group("/api")
	open.Use(middleware.OptionalAuthMiddleware())
	{
		SetupOpenPostRoutes(open, postController, commentController)
		SetupOpenUserRoutes(open, userController, interactionController)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		// User routes
		protected.GET("/profile", userController.GetProfile)
		protected.PUT("/profile", userController.UpdateProfile)

		// Setup other routes within the protected group
		SetupPostRoutes(protected, postController)
		SetupCommentRoutes(protected, commentController)
		SetupInteractionRoutes(protected, interactionController)
		SetupFeedRoutes(protected, feedController)
		SetupUploadRoutes(protected, uploadController)
	}
}
