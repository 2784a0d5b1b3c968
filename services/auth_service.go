package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pos-backend/entity"
	"pos-backend/repository"
	"pos-backend/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

// same rules gin applies to `binding` tags, for callers that skip the HTTP layer
var validate = validator.New()

// AuthService owns registration, login and session checks.
type AuthService struct {
	userRepo  *repository.UserRepository
	revoker   SessionRevoker
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, revoker SessionRevoker, secret string, ttl time.Duration) *AuthService {
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	return &AuthService{
		userRepo:  repo,
		revoker:   revoker,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

func (s *AuthService) TTL() time.Duration { return s.jwtTTL }

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a CASHIER; duplicate email or username is a validation error.
func (s *AuthService) Register(req *RegisterReq) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email, username and password are required", ErrValidation)
	}
	// bare address only, no display names
	if err := validate.Var(email, "email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}
	count, err = s.userRepo.CountByUsername(username, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username already registered", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
		Role:         entity.RoleCashier,
	}
	if err := s.userRepo.Create(user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email or username already registered", ErrValidation)
		}
		return nil, err
	}
	return user, nil
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login checks the password and issues a signed session token.
func (s *AuthService) Login(username, password string) (*Session, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, claims, err := utils.GenerateToken(user.ID, string(user.Role), s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, fmt.Errorf("cannot generate token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Authenticate turns a token into an Identity. The role comes from the stored user,
// not from the token, so a demoted admin loses access immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (Identity, *utils.Claims, error) {
	claims, err := utils.ParseToken(token, s.jwtSecret)
	if err != nil {
		return Identity{}, nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Identity{}, nil, err
	}
	if revoked {
		return Identity{}, nil, fmt.Errorf("%w: session ended", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	if err != nil {
		return Identity{}, nil, err
	}
	return Identity{UserID: user.ID, Username: user.Username, Role: user.Role, TokenID: claims.ID}, claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (s *AuthService) ChangePassword(actor Identity, req *ChangePasswordReq) error {
	if len(req.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	user, err := s.userRepo.FindByID(actor.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.Update(user.ID, map[string]any{"password_hash": string(hashed)})
}
