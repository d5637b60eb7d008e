package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/pharmacart/pharmacart-backend/pkg/auth"
	"github.com/pharmacart/pharmacart-backend/pkg/auth/session"
	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/security"

	"github.com/pharmacart/pharmacart-backend/internal/notify"
)

const (
	tempPasswordLength = 12
	resetTokenLength   = 64
	otpDigits          = 6
)

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) notify.Result
	SendSMS(ctx context.Context, phone, message string) notify.Result
}

// resendGate throttles OTP issuance per mobile number.
type resendGate interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	OTPResendKey(mobile string) string
}

// Service covers registration, login, password recovery, and OTP flows.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	AdminLogin(ctx context.Context, input LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error

	ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error)
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	IdentifyCustomer(ctx context.Context, mobile string) (*CustomerLookup, error)
	SendOTP(ctx context.Context, input SendOTPInput) (*SendOTPResult, error)
	VerifyOTP(ctx context.Context, mobile, code string) error

	DeleteAccount(ctx context.Context, userID uuid.UUID, password *string) error
}

type service struct {
	repo     Repository
	sessions sessionManager
	notify   notifier
	gate     resendGate
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	otpCfg   config.OTPConfig
}

// NewService builds the auth service.
func NewService(
	repo Repository,
	sessions sessionManager,
	sender notifier,
	gate resendGate,
	jwtCfg config.JWTConfig,
	pwCfg config.PasswordConfig,
	otpCfg config.OTPConfig,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auth repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if sender == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if gate == nil {
		return nil, fmt.Errorf("resend gate required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		notify:   sender,
		gate:     gate,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		otpCfg:   otpCfg,
	}, nil
}

// RegisterInput carries a normalized registration request. Mobile must
// already be through NormalizeMobile.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Mobile   string
}

// RegisterResult reports the created identity and the delivery outcome of
// the credentials message on each channel.
type RegisterResult struct {
	UserID       uuid.UUID
	Username     string
	CustomerCode *string
	EmailSent    bool
	EmailError   string
	SMSSent      bool
	SMSError     string
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
}

// ForgotPasswordResult reports the delivery outcome of the reset email.
type ForgotPasswordResult struct {
	EmailSent  bool
	EmailError string
}

// CustomerLookup answers whether a mobile number belongs to a known
// customer.
type CustomerLookup struct {
	Status       enums.CustomerLookupStatus
	CustomerCode *string
}

// SendOTPInput carries a normalized OTP request.
type SendOTPInput struct {
	Mobile  string
	Purpose string
}

// SendOTPResult carries the issued reference and SMS delivery outcome.
type SendOTPResult struct {
	ReferenceID string
	ExpiresAt   time.Time
	SMSSent     bool
	SMSError    string
}

// Register creates a user plus profile and mails/texts the generated
// password. Delivery failures never fail the registration; they are
// reported back on the result.
func (s *service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	mobile, err := NormalizeMobile(input.Mobile)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}
	existing, err = s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking username")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	}

	password, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
	}
	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	profile := &models.UserProfile{
		Name:  name,
		Phone: &mobile,
	}
	if err := s.repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	emailRes := s.notify.SendEmail(ctx, email,
		"Your PharmaCart account",
		fmt.Sprintf("Welcome %s!\n\nUsername: %s\nPassword: %s\n\nPlease change your password after logging in.", name, username, password))
	smsRes := s.notify.SendSMS(ctx, mobile,
		fmt.Sprintf("PharmaCart login - username: %s password: %s", username, password))

	return &RegisterResult{
		UserID:       user.ID,
		Username:     user.Username,
		CustomerCode: profile.CustomerCode,
		EmailSent:    emailRes.Sent,
		EmailError:   emailRes.Error,
		SMSSent:      smsRes.Sent,
		SMSError:     smsRes.Error,
	}, nil
}

// LoginInput is the credentials payload shared by customer and admin login.
type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// AdminLogin is Login restricted to staff accounts.
func (s *service) AdminLogin(ctx context.Context, input LoginInput) (*TokenPair, error) {
	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff access required")
	}
	return s.issueTokens(ctx, user)
}

func (s *service) authenticate(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if user == nil || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessID := session.NewAccessID()
	now := time.Now()

	// the customer code is provisioned lazily at checkout, so the claim may
	// be empty on fresh accounts
	access, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:       user.ID,
		Username:     user.Username,
		CustomerCode: nil,
		IsStaff:      user.IsStaff,
		JTI:          accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating session")
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording login")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

// Refresh rotates the session keyed by the old token's jti and mints a new
// pair carrying the same identity claims.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotating session")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:       claims.UserID,
		Username:     claims.Username,
		CustomerCode: claims.CustomerCode,
		IsStaff:      claims.IsStaff,
		JTI:          newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
	}, nil
}

// Logout revokes the refresh session tied to the access token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoking session")
	}
	return nil
}

// ForgotPassword issues a single-use reset token and emails it.
func (s *service) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "email not registered")
	}

	token, err := codes.RandomToken(resetTokenLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating reset token")
	}

	row := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.otpCfg.ResetTTL),
	}
	if err := s.repo.CreateResetToken(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing reset token")
	}

	res := s.notify.SendEmail(ctx, email,
		"PharmaCart password reset",
		fmt.Sprintf("Use this token to reset your password within the next hour:\n\n%s", token))

	return &ForgotPasswordResult{EmailSent: res.Sent, EmailError: res.Error}, nil
}

// VerifyResetToken checks validity without consuming the token. An expired
// token is deleted on sight.
func (s *service) VerifyResetToken(ctx context.Context, token string) error {
	_, err := s.loadValidResetToken(ctx, token)
	return err
}

func (s *service) loadValidResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	row, err := s.repo.GetResetToken(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading reset token")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid reset token")
	}
	if !row.IsValid(time.Now()) {
		if err := s.repo.DeleteResetToken(ctx, token); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting expired token")
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reset token expired")
	}
	return row, nil
}

// ResetPassword sets the new password and consumes the token.
func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	row, err := s.loadValidResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	if err := s.repo.UpdatePassword(ctx, row.UserID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating password")
	}
	if err := s.repo.DeleteResetToken(ctx, row.Token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consuming reset token")
	}
	return nil
}

// IdentifyCustomer reports whether the mobile number belongs to a known
// profile.
func (s *service) IdentifyCustomer(ctx context.Context, mobile string) (*CustomerLookup, error) {
	normalized, err := NormalizeMobile(mobile)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfileByPhone(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up customer")
	}
	if profile == nil {
		return &CustomerLookup{Status: enums.CustomerLookupNew}, nil
	}
	return &CustomerLookup{
		Status:       enums.CustomerLookupExisting,
		CustomerCode: profile.CustomerCode,
	}, nil
}

// SendOTP issues a fresh 6-digit code and texts it. Re-issuing within the
// resend window is rejected.
func (s *service) SendOTP(ctx context.Context, input SendOTPInput) (*SendOTPResult, error) {
	mobile, err := NormalizeMobile(input.Mobile)
	if err != nil {
		return nil, err
	}

	purpose := enums.OTPPurposeRegister
	if raw := strings.TrimSpace(input.Purpose); raw != "" {
		purpose, err = enums.ParseOTPPurpose(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid otp purpose")
		}
	}

	allowed, err := s.gate.SetNX(ctx, s.gate.OTPResendKey(mobile), 1, s.otpCfg.ResendWindow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking resend window")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "otp recently sent, try again shortly")
	}

	code, err := codes.RandomDigits(otpDigits)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating otp")
	}

	profile, err := s.repo.GetProfileByPhone(ctx, mobile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up customer")
	}
	var customerCode *string
	if profile != nil {
		customerCode = profile.CustomerCode
	}

	otp := &models.OneTimePassword{
		MobileNumber: mobile,
		Code:         code,
		Purpose:      purpose,
		ExpiresAt:    time.Now().Add(s.otpCfg.TTL),
		CustomerCode: customerCode,
	}
	if err := s.repo.CreateOTP(ctx, otp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing otp")
	}

	res := s.notify.SendSMS(ctx, mobile,
		fmt.Sprintf("Your PharmaCart verification code is %s. It expires in %d minutes.", code, int(s.otpCfg.TTL.Minutes())))

	return &SendOTPResult{
		ReferenceID: strings.ReplaceAll(otp.ID.String(), "-", ""),
		ExpiresAt:   otp.ExpiresAt,
		SMSSent:     res.Sent,
		SMSError:    res.Error,
	}, nil
}

// VerifyOTP checks the supplied code against the latest one issued to the
// number and spends it on success.
func (s *service) VerifyOTP(ctx context.Context, mobile, code string) error {
	normalized, err := NormalizeMobile(mobile)
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "otp is required")
	}

	otp, err := s.repo.LatestOTPForMobile(ctx, normalized)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading otp")
	}
	if otp == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "otp not found")
	}

	now := time.Now()
	if otp.VerifiedAt != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "otp already used")
	}
	if !now.Before(otp.ExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "otp expired")
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid otp")
	}

	if err := s.repo.MarkOTPVerified(ctx, otp.ID, now); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking otp verified")
	}
	return nil
}

// DeleteAccount removes the user and dependent customer records. When a
// password is supplied it must match.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID, password *string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if user == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	if password != nil {
		ok, err := security.VerifyPassword(*password, user.PasswordHash)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
	}

	if err := s.repo.DeleteUserCascade(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting account")
	}
	return nil
}
