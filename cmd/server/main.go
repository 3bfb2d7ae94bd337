package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/d-lino-kee/skill-swap-platform/internal/auth"
	"github.com/d-lino-kee/skill-swap-platform/internal/config"
	"github.com/d-lino-kee/skill-swap-platform/internal/database"
	"github.com/d-lino-kee/skill-swap-platform/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	// Swagger imports
	_ "github.com/d-lino-kee/skill-swap-platform/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Skill Swap API
// @version         1.0
// @description     This is the API for the Skill Swap platform.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User directory routes (protected)
		userRoutes := api.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/search", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/id", handler.GetUserIDByEmail)
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me", handler.UpdateMe)
			userRoutes.GET("/:id", handler.GetUserByID)
		}

		// Match request lifecycle routes (protected)
		matchRoutes := api.Group("/matches")
		matchRoutes.Use(auth.AuthMiddleware())
		{
			matchRoutes.GET("", handler.GetMatches)
			matchRoutes.POST("/request", handler.SendMatchRequest)
			matchRoutes.POST("/accept/:id", handler.AcceptRequest)
			matchRoutes.POST("/reject/:id", handler.RejectRequest)
			matchRoutes.POST("/withdraw/:id", handler.WithdrawRequest)
			matchRoutes.PUT("/progress/:id", handler.UpdateProgress)
		}

		// Invite routes (protected)
		inviteRoutes := api.Group("/invites")
		inviteRoutes.Use(auth.AuthMiddleware())
		{
			inviteRoutes.POST("/send", handler.SendInvite)
			inviteRoutes.GET("/pending/:userId", handler.GetPendingInvites)
			inviteRoutes.POST("/accept/:id", handler.AcceptInvite)
			inviteRoutes.POST("/reject/:id", handler.RejectInvite)
		}

		// Review routes: reads are public, writes require identity
		api.GET("/my-reviews", auth.AuthMiddleware(), handler.GetMyReviews)
		reviewRoutes := api.Group("/reviews")
		{
			reviewRoutes.GET("", handler.GetReviews)
			reviewRoutes.POST("", auth.AuthMiddleware(), handler.CreateReview)
			reviewRoutes.PUT("/:id", auth.AuthMiddleware(), handler.UpdateReview)
			reviewRoutes.DELETE("/:id", auth.AuthMiddleware(), handler.DeleteReview)
		}

		// Discussion board routes
		postRoutes := api.Group("/posts")
		postRoutes.Use(auth.OptionalAuthMiddleware())
		{
			postRoutes.GET("", handler.GetPosts)
			postRoutes.GET("/:id", handler.GetPostByID)
			postRoutes.GET("/:id/comments", handler.GetComments)
		}
		api.POST("/posts", auth.AuthMiddleware(), handler.CreatePost)
		api.POST("/comments", auth.AuthMiddleware(), handler.CreateComment)

		// Notification stream (protected)
		api.GET("/events", auth.AuthMiddleware(), handler.StreamEvents)
	}

	addr := config.AppConfig.ServerAddress
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(http.ListenAndServe(addr, corsHandler.Handler(router)))
}
