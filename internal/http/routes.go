package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/servicehub/account-service/internal/oauth"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// everything under /api/auth is open; the rest requires a principal
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/login", h.RateLimitLogin(), h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/google", h.SocialAuth(oauth.ProviderGoogle))
		auth.POST("/facebook", h.SocialAuth(oauth.ProviderFacebook))
		auth.POST("/instagram", h.SocialAuth(oauth.ProviderInstagram))
	}

	priv := r.Group("/api", h.Authenticated())
	{
		priv.GET("/profile", h.GetProfile)
		priv.PUT("/profile", h.UpdateProfile)
		priv.GET("/admin/users", h.ListUsers)
		priv.POST("/payment/create-intent", h.CreatePaymentIntent)
	}

	return r
}
