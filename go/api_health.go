package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthAPI answers liveness probes.
type HealthAPI struct{}

// Get /
func (api *HealthAPI) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Online store API is running"})
}
