package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

// Repository exposes identity persistence: users, reset tokens, and OTPs.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUserWithProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	DeleteUserCascade(ctx context.Context, userID uuid.UUID) error
	GetProfileByPhone(ctx context.Context, phone string) (*models.UserProfile, error)

	CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error

	CreateOTP(ctx context.Context, otp *models.OneTimePassword) error
	LatestOTPForMobile(ctx context.Context, mobile string) (*models.OneTimePassword, error)
	MarkOTPVerified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type gormRepo struct {
	client *dbclient.Client
}

// NewRepository builds the GORM-backed auth repository.
func NewRepository(client *dbclient.Client) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &gormRepo{client: client}, nil
}

func (r *gormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.client.DB().WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.client.DB().WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.client.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserWithProfile inserts both rows in one transaction so a failed
// profile insert never leaves an orphaned user.
func (r *gormRepo) CreateUserWithProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *gormRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.client.DB().WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *gormRepo) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.client.DB().WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (r *gormRepo) DeleteUserCascade(ctx context.Context, userID uuid.UUID) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var profile models.UserProfile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).
				Delete(&models.CustomerAddress{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
}

func (r *gormRepo) GetProfileByPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.client.DB().WithContext(ctx).
		Where("phone = ?", phone).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepo) CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error {
	return r.client.DB().WithContext(ctx).Create(token).Error
}

func (r *gormRepo) GetResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var row models.PasswordResetToken
	err := r.client.DB().WithContext(ctx).
		Where("token = ?", token).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormRepo) DeleteResetToken(ctx context.Context, token string) error {
	return r.client.DB().WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.PasswordResetToken{}).Error
}

func (r *gormRepo) CreateOTP(ctx context.Context, otp *models.OneTimePassword) error {
	// assign the id here so the caller can hand it out as a reference
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	return r.client.DB().WithContext(ctx).Create(otp).Error
}

// LatestOTPForMobile returns the newest code issued to the number; older
// rows stay in place for audit but are never matched against.
func (r *gormRepo) LatestOTPForMobile(ctx context.Context, mobile string) (*models.OneTimePassword, error) {
	var otp models.OneTimePassword
	err := r.client.DB().WithContext(ctx).
		Where("mobile_number = ?", mobile).
		Order("created_at DESC").
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *gormRepo) MarkOTPVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.client.DB().WithContext(ctx).
		Model(&models.OneTimePassword{}).
		Where("id = ?", id).
		Update("verified_at", at).Error
}
