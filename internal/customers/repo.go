package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

// Repository exposes profile and address persistence.
type Repository interface {
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	GetProfileByCustomerCode(ctx context.Context, code string) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	SetCustomerCode(ctx context.Context, profileID uuid.UUID, code string) error
	CustomerCodeExists(ctx context.Context, code string) (bool, error)
	GetAddressByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error)
	GetAddressByProfileID(ctx context.Context, profileID uuid.UUID) (*models.CustomerAddress, error)
	SaveAddress(ctx context.Context, addr *models.CustomerAddress) error
}

type gormRepo struct {
	client *dbclient.Client
}

// NewRepository builds the GORM-backed customers repository.
func NewRepository(client *dbclient.Client) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &gormRepo{client: client}, nil
}

func (r *gormRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.client.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepo) GetProfileByCustomerCode(ctx context.Context, code string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.client.DB().WithContext(ctx).
		Where("customer_code = ?", code).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepo) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.client.DB().WithContext(ctx).Create(profile).Error
}

func (r *gormRepo) SetCustomerCode(ctx context.Context, profileID uuid.UUID, code string) error {
	return r.client.DB().WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ?", profileID).
		Update("customer_code", code).Error
}

func (r *gormRepo) CustomerCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("customer_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepo) GetAddressByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
	var addr models.CustomerAddress
	err := r.client.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *gormRepo) GetAddressByProfileID(ctx context.Context, profileID uuid.UUID) (*models.CustomerAddress, error) {
	var addr models.CustomerAddress
	err := r.client.DB().WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *gormRepo) SaveAddress(ctx context.Context, addr *models.CustomerAddress) error {
	return r.client.DB().WithContext(ctx).Save(addr).Error
}
