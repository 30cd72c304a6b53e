// Package router wires the HTTP routes of the server.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "fynix_backend/internal/feature/auth/transport/handler"
	markethandler "fynix_backend/internal/feature/marketdata/transport/handler"
	jwtmw "fynix_backend/internal/platform/jwt"
)

// NewRouter builds the gin engine with public and authenticated routes.
func NewRouter(authHandler *authhandler.AuthHandler, market *markethandler.MarketHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)

	// Routes below require a valid bearer token.
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.GET("/ohlc", market.GetOHLC)
		auth.GET("/news", market.GetNews)
	}

	return r
}
