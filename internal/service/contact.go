package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"strconv" // Cache key building
	"strings" // Case folding for filters
	"time"    // Cache TTL

	"contact_api/internal/domain"     // Domain models
	"contact_api/internal/utils"      // Cache helpers
	"contact_api/internal/validation" // Input validation

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const contactCacheTTL = 5 * time.Minute

// Search defaults and bounds
const (
	defaultPage = 1
	defaultSize = 10
)

// ContactRequest is the create/update payload for a contact
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=200"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// SearchContactRequest carries the search filters and pagination window
type SearchContactRequest struct {
	Name  string `form:"name" json:"name" validate:"omitempty,max=100"`
	Email string `form:"email" json:"email" validate:"omitempty,max=200"`
	Phone string `form:"phone" json:"phone" validate:"omitempty,max=20"`
	Page  int    `form:"page" json:"page" validate:"omitempty,min=1"`
	Size  int    `form:"size" json:"size" validate:"omitempty,min=1,max=100"`
}

// ContactResponse is the serialized contact record
type ContactResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Paging describes the window of a search result
type Paging struct {
	Page      int   `json:"page"`
	TotalPage int   `json:"total_page"`
	TotalItem int64 `json:"total_item"`
}

// SearchContactResult bundles one page of contacts with its paging metadata
type SearchContactResult struct {
	Data   []ContactResponse
	Paging Paging
}

// ContactService implements owner-scoped contact CRUD and search
type ContactService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewContactService returns a ContactService backed by db, with an optional
// Redis client for single-record read caching
func NewContactService(db *gorm.DB, rdb *redis.Client) *ContactService {
	return &ContactService{db: db, rdb: rdb}
}

func contactKey(username string, id uint) string {
	return "contact:" + username + ":" + strconv.FormatUint(uint64(id), 10)
}

func contactResponse(c *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// Create stores a new contact owned by user
func (s *ContactService) Create(ctx context.Context, user *domain.User, req ContactRequest) (*ContactResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contact := domain.Contact{
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return contactResponse(&contact), nil
}

// Get returns the contact with the given id if user owns it. The ownership
// predicate is part of the query, so a foreign id looks identical to a
// missing one.
func (s *ContactService) Get(ctx context.Context, user *domain.User, id uint) (*ContactResponse, error) {
	var cached ContactResponse
	if ok, _ := utils.GetCache(ctx, s.rdb, contactKey(user.Username, id), &cached); ok {
		return &cached, nil
	}
	var contact domain.Contact
	err := s.db.WithContext(ctx).Where("id = ? AND username = ?", id, user.Username).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	resp := contactResponse(&contact)
	_ = utils.SetCache(ctx, s.rdb, contactKey(user.Username, id), resp, contactCacheTTL)
	return resp, nil
}

// Update overwrites the mutable fields of an owned contact. The ownership
// check and the write share one transaction.
func (s *ContactService) Update(ctx context.Context, user *domain.User, id uint, req ContactRequest) (*ContactResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := contactMustExist(tx, user, id); err != nil {
			return err
		}
		return tx.Model(&domain.Contact{}).Where("id = ? AND username = ?", id, user.Username).Updates(map[string]any{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"email":      req.Email,
			"phone":      req.Phone,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	_ = utils.DeleteCache(ctx, s.rdb, contactKey(user.Username, id))
	return &ContactResponse{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}, nil
}

// Remove deletes an owned contact and all its addresses in one transaction,
// so a failure midway never leaves orphaned addresses
func (s *ContactService) Remove(ctx context.Context, user *domain.User, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := contactMustExist(tx, user, id); err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&domain.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Contact{}, id).Error
	})
	if err != nil {
		return err
	}
	_ = utils.DeleteCache(ctx, s.rdb, contactKey(user.Username, id))
	logrus.WithFields(logrus.Fields{
		"username":   user.Username,
		"contact_id": id,
	}).Info("Contact deleted")
	return nil
}

// nameMatchExpr matches against "first_name last_name" as one string, so a
// filter can span the word boundary. Concatenation is spelled differently
// across the two supported dialects.
func (s *ContactService) nameMatchExpr() string {
	if s.db.Dialector.Name() == "mysql" {
		return "lower(concat(first_name, ' ', last_name)) LIKE ?"
	}
	return "lower(first_name || ' ' || last_name) LIKE ?"
}

// Search returns one page of the user's contacts matching all provided
// filters, ordered by id for deterministic paging
func (s *ContactService) Search(ctx context.Context, user *domain.User, req SearchContactRequest) (*SearchContactResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	page := req.Page
	if page == 0 {
		page = defaultPage
	}
	size := req.Size
	if size == 0 {
		size = defaultSize
	}

	query := s.db.WithContext(ctx).Model(&domain.Contact{}).Where("username = ?", user.Username)
	if req.Name != "" {
		query = query.Where(s.nameMatchExpr(), "%"+strings.ToLower(req.Name)+"%")
	}
	if req.Email != "" {
		query = query.Where("lower(email) LIKE ?", "%"+strings.ToLower(req.Email)+"%")
	}
	if req.Phone != "" {
		query = query.Where("lower(phone) LIKE ?", "%"+strings.ToLower(req.Phone)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var contacts []domain.Contact
	if err := query.Order("id").Offset((page - 1) * size).Limit(size).Find(&contacts).Error; err != nil {
		return nil, err
	}

	data := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		data = append(data, *contactResponse(&contacts[i]))
	}
	return &SearchContactResult{
		Data: data,
		Paging: Paging{
			Page:      page,
			TotalPage: (int(total) + size - 1) / size,
			TotalItem: total,
		},
	}, nil
}

// contactMustExist is the shared ownership precondition: exactly one
// contact row with this id belongs to user
func contactMustExist(tx *gorm.DB, user *domain.User, id uint) error {
	var total int64
	if err := tx.Model(&domain.Contact{}).Where("id = ? AND username = ?", id, user.Username).Count(&total).Error; err != nil {
		return err
	}
	if total != 1 {
		return ErrContactNotFound
	}
	return nil
}
