package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches the API v1 routes and the health probe to the given
// router.
func RegisterRoutes(router *gin.Engine, portfolioHandler *PortfolioHandler) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/profiles/:identifier", portfolioHandler.GetProfileHandler)
		v1.GET("/profiles/:identifier/portfolio", portfolioHandler.GetPortfolioHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
