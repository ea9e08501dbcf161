package service

import (
	"context"
	"errors"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/util"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthService struct {
	Users repository.UserStore
	Cfg   *config.Config
}

func NewAuthService(store *repository.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: store.Users,
		Cfg:   cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, "", util.Validationf("username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", util.Validationf("invalid email %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, "", util.Validationf("password must be at least %d characters", minPasswordLength)
	}

	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.Users.FindByID(ctx, userID)
}

func (s *AuthService) issue(user *model.User) (string, error) {
	return util.GenerateJWT(user.ID, user.Username, user.Email, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}
