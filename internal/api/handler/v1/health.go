package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
)

// HandleHealth answers load balancer probes. It is mounted outside /api/v1.
func HandleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
