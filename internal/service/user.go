package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/tokoku/internal/events"
	"github.com/Skotchmaster/tokoku/internal/models"
	"github.com/Skotchmaster/tokoku/internal/repo"
	"github.com/Skotchmaster/tokoku/internal/transport"
	pkg_hash "github.com/Skotchmaster/tokoku/pkg/hash"
	"github.com/Skotchmaster/tokoku/pkg/logging"
	"github.com/Skotchmaster/tokoku/pkg/tokens"
)

type UserService struct {
	Repo      *repo.GormRepo
	Events    events.Publisher
	JWTSecret []byte
}

type LoginResult struct {
	User        *models.User
	AccessToken string
	AccessExp   time.Time
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	name, email := strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: pwHash}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, err
	}

	publish(ctx, l, s.Events, events.TopicUser, strconv.FormatUint(uint64(user.ID), 10), "user_registered", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Login reports ErrInvalidCredentials for an unknown email and for a wrong
// password alike. A token is issued only when a JWT secret is configured.
func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.UserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	res := &LoginResult{User: user}
	if len(s.JWTSecret) > 0 {
		res.AccessExp = time.Now().Add(tokens.AccessTTL)
		res.AccessToken, err = tokens.SignAccessToken(user.ID, user.Name, res.AccessExp, s.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("sign access token: %w", err)
		}
	}
	return res, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	user, err := s.Repo.UserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, err
}

func (s *UserService) UpdateProfilePicture(ctx context.Context, id uint, url string) error {
	url = strings.TrimSpace(url)
	if id == 0 || url == "" {
		return fmt.Errorf("%w: user id and profile picture url are required", ErrValidation)
	}
	err := s.Repo.UpdateProfilePicture(ctx, id, url)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return err
}

func (s *UserService) UpdateAddress(ctx context.Context, id uint, address string) error {
	address = strings.TrimSpace(address)
	if id == 0 || address == "" {
		return fmt.Errorf("%w: user id and address are required", ErrValidation)
	}
	err := s.Repo.UpdateAddress(ctx, id, address)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return err
}
