package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseSessionIDParam reads a session UUID path parameter, answering 400 and
// returning "" when it is malformed.
func ParseSessionIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if _, err := uuid.Parse(idStr); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID must be a UUID",
		})
		return ""
	}
	return idStr
}
