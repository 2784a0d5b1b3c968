package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pos-backend/entity"
	"pos-backend/repository"
	"pos-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinFontSize   = 10
	MaxFontSize   = 32
	MaxAvatarSize = 5 << 20
)

// AvatarStore puts an encoded image somewhere reachable and returns its URL.
type AvatarStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type UserService struct {
	Repo    *repository.UserRepository
	Avatars AvatarStore
}

func NewUserService(repo *repository.UserRepository, avatars AvatarStore) *UserService {
	return &UserService{Repo: repo, Avatars: avatars}
}

func (s *UserService) Get(id uint) (*entity.User, error) {
	u, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return u, err
}

type UpdateProfileReq struct {
	Username     *string      `json:"username"`
	ProfileImage *string      `json:"profileImage"`
	Theme        *string      `json:"theme"`
	FontSize     *int         `json:"fontSize"`
	Role         *entity.Role `json:"role"`
}

// UpdateProfile changes the caller's own settings. A role in the request only
// takes effect when the caller is stored as ADMIN.
func (s *UserService) UpdateProfile(actor Identity, req *UpdateProfileReq) (*entity.User, error) {
	current, err := s.Get(actor.UserID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			return nil, fmt.Errorf("%w: username must not be empty", ErrValidation)
		}
		if name != current.Username {
			n, err := s.Repo.CountByUsername(name, current.ID)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				return nil, fmt.Errorf("%w: username already taken", ErrValidation)
			}
			updates["username"] = name
		}
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = strings.TrimSpace(*req.ProfileImage)
	}
	if req.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*req.Theme))
		if theme != "light" && theme != "dark" {
			return nil, fmt.Errorf("%w: theme must be light or dark", ErrValidation)
		}
		updates["theme"] = theme
	}
	if req.FontSize != nil {
		if *req.FontSize < MinFontSize || *req.FontSize > MaxFontSize {
			return nil, fmt.Errorf("%w: fontSize must be between %d and %d", ErrValidation, MinFontSize, MaxFontSize)
		}
		updates["font_size"] = *req.FontSize
	}
	if req.Role != nil && current.Role == entity.RoleAdmin {
		role := entity.Role(strings.ToUpper(string(*req.Role)))
		if !role.Valid() {
			return nil, fmt.Errorf("%w: role must be ADMIN or CASHIER", ErrValidation)
		}
		updates["role"] = role
	}

	if len(updates) > 0 {
		if err := s.Repo.Update(current.ID, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: username already taken", ErrValidation)
			}
			return nil, err
		}
	}
	return s.Get(current.ID)
}

// UploadAvatar resizes the image, stores it and points profileImage at it.
func (s *UserService) UploadAvatar(ctx context.Context, actor Identity, src io.Reader) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, errors.New("avatar storage not configured")
	}
	data, err := utils.ResizeAvatar(io.LimitReader(src, MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	key := fmt.Sprintf("user-%d/%s.jpg", actor.UserID, uuid.NewString())
	url, err := s.Avatars.Put(ctx, key, data, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	if err := s.Repo.Update(actor.UserID, map[string]any{"profile_image": url}); err != nil {
		return nil, err
	}
	return s.Get(actor.UserID)
}

// ----- Admin -----

func (s *UserService) List(actor Identity) ([]entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.Repo.List()
}

func (s *UserService) UpdateRole(actor Identity, userID uint, role entity.Role) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	role = entity.Role(strings.ToUpper(strings.TrimSpace(string(role))))
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be ADMIN or CASHIER", ErrValidation)
	}
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(userID, map[string]any{"role": role}); err != nil {
		return nil, err
	}
	return s.Get(userID)
}
