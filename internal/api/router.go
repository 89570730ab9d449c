package api

import (
	"contact_api/internal/middleware" // Auth middleware
	"contact_api/internal/service"    // Services

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires the services and routes. rdb may be nil, which disables
// the read caches.
func NewRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	users := service.NewUserService(db, rdb)
	contacts := service.NewContactService(db, rdb)
	addresses := service.NewAddressService(db)

	r := gin.Default() // Gin router instance
	r.Use(cors.Default())

	root := r.Group("/api")

	// Public routes
	root.POST("/users", RegisterHandler(users))
	root.POST("/users/login", LoginHandler(users))

	// Everything below requires a valid session token
	auth := root.Group("")
	auth.Use(middleware.AuthMiddleware(users))

	auth.GET("/users/current", CurrentUserHandler(users))
	auth.PATCH("/users/current", UpdateUserHandler(users))
	auth.DELETE("/users/logout", LogoutHandler(users))

	auth.POST("/contacts", CreateContactHandler(contacts))
	auth.GET("/contacts", SearchContactHandler(contacts))
	auth.GET("/contacts/:contactId", GetContactHandler(contacts))
	auth.PUT("/contacts/:contactId", UpdateContactHandler(contacts))
	auth.DELETE("/contacts/:contactId", DeleteContactHandler(contacts))

	auth.POST("/contacts/:contactId/addresses", CreateAddressHandler(addresses))
	auth.GET("/contacts/:contactId/addresses", ListAddressHandler(addresses))
	auth.GET("/contacts/:contactId/addresses/:addressId", GetAddressHandler(addresses))
	auth.PUT("/contacts/:contactId/addresses/:addressId", UpdateAddressHandler(addresses))
	auth.DELETE("/contacts/:contactId/addresses/:addressId", DeleteAddressHandler(addresses))

	return r
}
