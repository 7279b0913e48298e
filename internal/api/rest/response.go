package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roundlabs/quadmatch/internal/api/rest/dto"
	"github.com/roundlabs/quadmatch/internal/logger"
)

// respondOK sends a 200 response with the payload wrapped in the envelope
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    data,
	})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Response{
		Success: false,
		Message: message,
	})
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.Response{
		Success: false,
		Message: message,
	})
}

// respondInternalError sends a 500 Internal Server Error response and logs
// the cause
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error(err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, dto.Response{
		Success: false,
		Message: message,
	})
}
