package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/middleware"
	"github.com/vnkhanh/challenge-server/routes"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Kết nối DB + AutoMigrate
	config.ConnectDB(settings)

	r := gin.Default()

	origins := settings.AllowedOrigins
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, o := range origins {
				if o == origin {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	inviteLimiter := middleware.NewKeyedRateLimiter(settings.InviteRatePerMin, settings.InviteBurst, 5*time.Minute)
	go inviteLimiter.RunCleanup(time.Minute, nil)

	routes.SetupRoutes(r, inviteLimiter)

	log.Printf("Server listening on port %s\n", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
