package routes

import (
	"net/http"

	"donation-hub/internal/config"
	"donation-hub/internal/delivery/http/handler"
	"donation-hub/internal/domain/signup"
	"donation-hub/internal/infrastructure/database/postgres"
	"donation-hub/internal/logger"
	"donation-hub/internal/middleware"
	"donation-hub/internal/notification"
	"donation-hub/internal/usecase/contact"
	"donation-hub/internal/usecase/donation"
	"donation-hub/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, signupStore signup.Store, dispatcher notification.Dispatcher) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	donationRepository := postgres.NewDonationRepository(db)
	contactRepository := postgres.NewContactRepository(db)

	userService := user.NewService(userRepository, signupStore, dispatcher, cfg)
	donationService := donation.NewService(donationRepository, userRepository, dispatcher)
	contactService := contact.NewService(contactRepository)

	userHandler := handler.NewUserHandler(userService, cfg)
	donorHandler := handler.NewDonorHandler(donationService, userService)
	adminHandler := handler.NewAdminHandler(donationService, userService, contactService)
	agentHandler := handler.NewAgentHandler(donationService)
	homeHandler := handler.NewHomeHandler(contactService)

	// Public pages
	router.GET("/", homeHandler.Home)
	home := router.Group("/home")
	{
		home.GET("/about-us", homeHandler.AboutUs)
		home.GET("/mission", homeHandler.Mission)
		home.GET("/contact-us", homeHandler.ContactUsForm)
		home.POST("/contact-us/submit", homeHandler.SubmitContact)
	}

	// Auth flows
	auth := router.Group("/auth")
	{
		auth.GET("/signup", userHandler.SignupForm)
		auth.POST("/signup", userHandler.Signup)
		auth.GET("/verify-otp", userHandler.VerifyOTPForm)
		auth.POST("/verify-otp", userHandler.VerifyOTP)
		auth.GET("/login", userHandler.LoginForm)
		auth.POST("/login", userHandler.Login)
		auth.GET("/logout", userHandler.Logout)
		auth.GET("/forgot-password", userHandler.ForgotPasswordForm)
		auth.GET("/reset-password", userHandler.ResetPasswordForm)
	}

	api := router.Group("/api")
	{
		api.POST("/forgot-password", userHandler.ForgotPassword)
		api.POST("/reset-password", userHandler.ResetPassword)
	}

	// Donor routes
	donor := router.Group("/donor")
	donor.Use(middleware.AuthMiddleware(cfg), middleware.DonorOnly())
	{
		donor.GET("/dashboard", donorHandler.Dashboard)
		donor.GET("/donate", donorHandler.DonateForm)
		donor.POST("/donate", donorHandler.Donate)
		donor.GET("/donations/pending", donorHandler.PendingDonations)
		donor.GET("/donations/previous", donorHandler.PreviousDonations)
		donor.GET("/donation/deleteRejected/:id", donorHandler.DeleteRejected)
		donor.GET("/profile", userHandler.GetProfile)
		donor.PUT("/profile", userHandler.UpdateProfile)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/donations", adminHandler.AllDonations)
		admin.GET("/donations/pending", adminHandler.PendingDonations)
		admin.GET("/donations/previous", adminHandler.PreviousDonations)
		admin.GET("/donation/view/:id", adminHandler.ViewDonation)
		admin.GET("/donation/accept/:id", adminHandler.AcceptDonation)
		admin.GET("/donation/reject/:id", adminHandler.RejectDonation)
		admin.GET("/donation/assign/:id", adminHandler.AssignForm)
		admin.POST("/donation/assign/:id", adminHandler.AssignAgent)
		admin.GET("/agents", adminHandler.Agents)
		admin.GET("/contact-messages", adminHandler.ContactMessages)
		admin.GET("/profile", userHandler.GetProfile)
		admin.PUT("/profile", userHandler.UpdateProfile)
	}

	// Agent routes
	agent := router.Group("/agent")
	agent.Use(middleware.AuthMiddleware(cfg), middleware.AgentOnly())
	{
		agent.GET("/dashboard", agentHandler.Dashboard)
		agent.GET("/collections/pending", agentHandler.PendingCollections)
		agent.GET("/collections/previous", agentHandler.PreviousCollections)
		agent.GET("/collection/view/:id", agentHandler.ViewCollection)
		agent.GET("/collection/collect/:id", agentHandler.Collect)
		agent.GET("/profile", userHandler.GetProfile)
		agent.PUT("/profile", userHandler.UpdateProfile)
	}

	logger.Info("All routes initialized")
	return router
}
