package api

import (
	"net/http" // HTTP status codes

	"contact_api/internal/service" // User service

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterHandler creates a new user account
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := users.Register(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// LoginHandler verifies credentials and issues a session token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := users.Login(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// CurrentUserHandler returns the authenticated user's profile
func CurrentUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeData(c, users.Current(currentUser(c)))
	}
}

// UpdateUserHandler patches the authenticated user's name and/or password
func UpdateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := users.Update(c.Request.Context(), currentUser(c), req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// LogoutHandler clears the authenticated user's session token
func LogoutHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := users.Logout(c.Request.Context(), currentUser(c)); err != nil {
			writeError(c, err)
			return
		}
		writeData(c, "OK")
	}
}
