package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection

	"contact_api/internal/domain"     // Domain models
	"contact_api/internal/validation" // Input validation

	"gorm.io/gorm" // GORM ORM library
)

// AddressRequest is the create/update payload for an address; every field
// is optional but length-bounded
type AddressRequest struct {
	Street     string `json:"street" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=10"`
}

// AddressResponse is the serialized address record
type AddressResponse struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// AddressService implements address CRUD scoped through the owning contact
type AddressService struct {
	db *gorm.DB
}

// NewAddressService returns an AddressService backed by db
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func addressResponse(a *domain.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// addressMustExist verifies that exactly one address row with this id
// belongs to the already-verified contact
func addressMustExist(tx *gorm.DB, contactID, addressID uint) error {
	var total int64
	if err := tx.Model(&domain.Address{}).Where("id = ? AND contact_id = ?", addressID, contactID).Count(&total).Error; err != nil {
		return err
	}
	if total != 1 {
		return ErrAddressNotFound
	}
	return nil
}

// Create stores a new address under one of the user's contacts. The contact
// ownership check and the insert share one transaction.
func (s *AddressService) Create(ctx context.Context, user *domain.User, contactID uint, req AddressRequest) (*AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	address := domain.Address{
		ContactID:  contactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := contactMustExist(tx, user, contactID); err != nil {
			return err
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, err
	}
	return addressResponse(&address), nil
}

// Get returns one address after verifying the full ownership chain
func (s *AddressService) Get(ctx context.Context, user *domain.User, contactID, addressID uint) (*AddressResponse, error) {
	db := s.db.WithContext(ctx)
	if err := contactMustExist(db, user, contactID); err != nil {
		return nil, err
	}
	var address domain.Address
	err := db.Where("id = ? AND contact_id = ?", addressID, contactID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return addressResponse(&address), nil
}

// Update overwrites the fields of an address after verifying the chain,
// all inside one transaction
func (s *AddressService) Update(ctx context.Context, user *domain.User, contactID, addressID uint, req AddressRequest) (*AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := contactMustExist(tx, user, contactID); err != nil {
			return err
		}
		if err := addressMustExist(tx, contactID, addressID); err != nil {
			return err
		}
		return tx.Model(&domain.Address{}).Where("id = ? AND contact_id = ?", addressID, contactID).Updates(map[string]any{
			"street":      req.Street,
			"city":        req.City,
			"province":    req.Province,
			"country":     req.Country,
			"postal_code": req.PostalCode,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &AddressResponse{
		ID:         addressID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}, nil
}

// Remove deletes an address after verifying the chain, in one transaction
func (s *AddressService) Remove(ctx context.Context, user *domain.User, contactID, addressID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := contactMustExist(tx, user, contactID); err != nil {
			return err
		}
		if err := addressMustExist(tx, contactID, addressID); err != nil {
			return err
		}
		return tx.Delete(&domain.Address{}, addressID).Error
	})
}

// List returns every address of one of the user's contacts, ordered by id
func (s *AddressService) List(ctx context.Context, user *domain.User, contactID uint) ([]AddressResponse, error) {
	db := s.db.WithContext(ctx)
	if err := contactMustExist(db, user, contactID); err != nil {
		return nil, err
	}
	var addresses []domain.Address
	if err := db.Where("contact_id = ?", contactID).Order("id").Find(&addresses).Error; err != nil {
		return nil, err
	}
	result := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		result = append(result, *addressResponse(&addresses[i]))
	}
	return result, nil
}
