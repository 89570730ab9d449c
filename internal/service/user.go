package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"time"    // Cache TTL

	"contact_api/internal/domain"     // Domain models
	"contact_api/internal/utils"      // Cache and token helpers
	"contact_api/internal/validation" // Input validation

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// sessionCacheTTL bounds staleness of cached token lookups; every mutation
// of the cached row also invalidates its key explicitly.
const sessionCacheTTL = 5 * time.Minute

// RegisterUserRequest is the registration payload
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginUserRequest is the login payload
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest is the profile patch payload; both fields are optional
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"omitempty,max=100"`
}

// UserResponse is the public profile; the password hash is never exposed
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TokenResponse carries a freshly issued session token
type TokenResponse struct {
	Token string `json:"token"`
}

// UserService implements registration and the session lifecycle
type UserService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewUserService returns a UserService backed by db, with an optional
// Redis client for session caching
func NewUserService(db *gorm.DB, rdb *redis.Client) *UserService {
	return &UserService{db: db, rdb: rdb}
}

func sessionKey(token string) string {
	return "session:" + token
}

func profile(user *domain.User) *UserResponse {
	return &UserResponse{Username: user.Username, Name: user.Name}
}

// Register stores a new user with a bcrypt-hashed password. The uniqueness
// check and the insert run in one transaction; the unique constraint on
// username remains the final arbiter under concurrent registration.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Username: req.Username,
		Password: string(hash),
		Name:     req.Name,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&domain.User{}).Where("username = ?", req.Username).Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("username", user.Username).Info("User registered")
	return profile(&user), nil
}

// Login verifies the credentials and issues a new session token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}
	oldToken := user.Token
	token := utils.NewSessionToken()
	if err := s.db.WithContext(ctx).Model(&user).Update("token", token).Error; err != nil {
		return nil, err
	}
	// A previous session may still be cached under the replaced token
	if oldToken != nil {
		_ = utils.DeleteCache(ctx, s.rdb, sessionKey(*oldToken))
	}
	logrus.WithField("username", user.Username).Info("User logged in")
	return &TokenResponse{Token: token}, nil
}

// Authenticate resolves a bearer token to its user. Every ownership-scoped
// operation runs through this first.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	var user domain.User
	if ok, _ := utils.GetCache(ctx, s.rdb, sessionKey(token), &user); ok {
		return &user, nil
	}
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	_ = utils.SetCache(ctx, s.rdb, sessionKey(token), user, sessionCacheTTL)
	return &user, nil
}

// Current returns the authenticated user's public profile
func (s *UserService) Current(user *domain.User) *UserResponse {
	return profile(user)
}

// Update patches name and/or password; a password change is re-hashed
// before storing. An empty patch returns the profile unchanged.
func (s *UserService) Update(ctx context.Context, user *domain.User, req UpdateUserRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
		user.Name = req.Name
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
		user.Password = string(hash)
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", user.Username).Updates(updates).Error; err != nil {
			return nil, err
		}
		if user.Token != nil {
			_ = utils.DeleteCache(ctx, s.rdb, sessionKey(*user.Token))
		}
	}
	return profile(user), nil
}

// Logout clears the stored session token; calling it twice is harmless
func (s *UserService) Logout(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", user.Username).Update("token", nil).Error; err != nil {
		return err
	}
	if user.Token != nil {
		_ = utils.DeleteCache(ctx, s.rdb, sessionKey(*user.Token))
	}
	logrus.WithField("username", user.Username).Info("User logged out")
	return nil
}
