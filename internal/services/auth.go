package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"
	"theinsight/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo     repository.UserRepo
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepo, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// LoginUser проверяет email/пароль и выдаёт access-токен.
func (s *AuthService) LoginUser(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	log := logger.WithCtx(ctx)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Вход: пользователь не найден", zap.String("email", req.Email))
			return nil, ErrInvalidCredentials
		}
		log.Error("Вход: ошибка получения пользователя", zap.Error(err))
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Warn("Вход: неверный пароль", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := utils.GenerateToken(s.secret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		log.Error("Вход: ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	log.Info("Пользователь вошёл", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	return u, mapRepoErr(err, "User")
}

// EnsureUser создаёт или обновляет служебную учётную запись (сидер).
func (s *AuthService) EnsureUser(ctx context.Context, email, name, password, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, invalid("role", "role must be one of: admin, editor")
	}
	if len(password) < 8 {
		return nil, invalid("password", "password must be at least 8 characters")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.repo.UpsertUser(ctx, u); err != nil {
		logger.WithCtx(ctx).Error("Ошибка сохранения пользователя", zap.String("email", u.Email), zap.Error(err))
		return nil, err
	}
	return u, nil
}
