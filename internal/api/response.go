package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"contact_api/internal/domain"     // Domain models
	"contact_api/internal/middleware" // Context keys
	"contact_api/internal/service"    // Service errors
	"contact_api/internal/validation" // Validation errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// writeError maps a service error to its HTTP status and error body.
// Anything outside the known taxonomy is a 500 with no internal detail.
func writeError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrContactNotFound), errors.Is(err, service.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Internal server error"})
	}
}

// writeData wraps a success payload in the data envelope
func writeData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// currentUser returns the user stored by the auth middleware
func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(middleware.UserKey).(*domain.User)
}

// pathID parses a positive integer path parameter. An unparsable id cannot
// name an existing resource, so the caller treats it as not found.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
