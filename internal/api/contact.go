package api

import (
	"net/http" // HTTP status codes

	"contact_api/internal/service" // Contact service

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateContactHandler stores a new contact for the authenticated user
func CreateContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := contacts.Create(c.Request.Context(), currentUser(c), req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// GetContactHandler returns one of the authenticated user's contacts
func GetContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		resp, err := contacts.Get(c.Request.Context(), currentUser(c), id)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// UpdateContactHandler overwrites one of the authenticated user's contacts
func UpdateContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		var req service.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := contacts.Update(c.Request.Context(), currentUser(c), id, req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// DeleteContactHandler removes a contact and all of its addresses
func DeleteContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		if err := contacts.Remove(c.Request.Context(), currentUser(c), id); err != nil {
			writeError(c, err)
			return
		}
		writeData(c, "OK")
	}
}

// SearchContactHandler returns one page of the authenticated user's
// contacts matching the query filters
func SearchContactHandler(contacts *service.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SearchContactRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid query parameters"})
			return
		}
		result, err := contacts.Search(c.Request.Context(), currentUser(c), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result.Data, "paging": result.Paging})
	}
}
