package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/challenge-server/controllers"
	"github.com/vnkhanh/challenge-server/middleware"
)

func SetupRoutes(r *gin.Engine, inviteLimiter *middleware.KeyedRateLimiter) {
	r.GET("/ping", controllers.Ping)
	r.GET("/health", controllers.HealthCheck)

	users := r.Group("/users")
	{
		users.POST("/google/login", controllers.GoogleLogin)
		// login: token hợp lệ là đủ, user có thể chưa có trong DB
		users.POST("/login", middleware.VerifyAccessToken(), controllers.Login)
		users.POST("/search", middleware.VerifyAccessToken(), controllers.SearchUsers)

		me := users.Group("/user")
		me.Use(middleware.Authenticated()...)
		{
			me.GET("", controllers.GetCurrentUser)
			me.POST("/image", controllers.UpdateUserImage)
			me.POST("/image/upload", controllers.UploadUserImage)
		}
	}

	challenges := r.Group("/challenges")
	challenges.Use(middleware.Authenticated()...)
	{
		challenges.POST("", controllers.CreateChallenge)
		challenges.GET("", controllers.ListChallenges)
		challenges.GET("/:id", controllers.GetChallengeDetail)
		challenges.GET("/:id/participants", controllers.GetChallengeParticipants)
		challenges.PUT("/:id", middleware.CheckChallengeOwner(), controllers.UpdateChallenge)
	}

	invitations := r.Group("/invitations")
	invitations.Use(middleware.Authenticated()...)
	{
		invitations.GET("", controllers.ListInvitations)
		invitations.POST("/invite", middleware.RateLimit(inviteLimiter), controllers.InviteToChallenge)
		invitations.POST("/accept", controllers.AcceptInvitation)
		invitations.POST("/decline", controllers.DeclineInvitation)
	}

	notifications := r.Group("/notifications")
	notifications.Use(middleware.Authenticated()...)
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.POST("/read", controllers.ReadNotification)
	}
}
