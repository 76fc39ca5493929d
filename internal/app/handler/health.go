// Package handler holds the feature-independent HTTP handlers.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness for the load balancer.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
