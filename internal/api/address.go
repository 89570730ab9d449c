package api

import (
	"net/http" // HTTP status codes

	"contact_api/internal/service" // Address service

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateAddressHandler stores a new address under one of the authenticated
// user's contacts
func CreateAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		var req service.AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := addresses.Create(c.Request.Context(), currentUser(c), contactID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// GetAddressHandler returns one address of an owned contact
func GetAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		addressID, ok := pathID(c, "addressId")
		if !ok {
			writeError(c, service.ErrAddressNotFound)
			return
		}
		resp, err := addresses.Get(c.Request.Context(), currentUser(c), contactID, addressID)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// UpdateAddressHandler overwrites one address of an owned contact
func UpdateAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		addressID, ok := pathID(c, "addressId")
		if !ok {
			writeError(c, service.ErrAddressNotFound)
			return
		}
		var req service.AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request body"})
			return
		}
		resp, err := addresses.Update(c.Request.Context(), currentUser(c), contactID, addressID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}

// DeleteAddressHandler removes one address of an owned contact
func DeleteAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		addressID, ok := pathID(c, "addressId")
		if !ok {
			writeError(c, service.ErrAddressNotFound)
			return
		}
		if err := addresses.Remove(c.Request.Context(), currentUser(c), contactID, addressID); err != nil {
			writeError(c, err)
			return
		}
		writeData(c, "OK")
	}
}

// ListAddressHandler returns every address of an owned contact
func ListAddressHandler(addresses *service.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID, ok := pathID(c, "contactId")
		if !ok {
			writeError(c, service.ErrContactNotFound)
			return
		}
		resp, err := addresses.List(c.Request.Context(), currentUser(c), contactID)
		if err != nil {
			writeError(c, err)
			return
		}
		writeData(c, resp)
	}
}
