package services

import (
	"context"
	"testing"
	"time"

	"theinsight/internal/mocks"
	"theinsight/internal/models"
	"theinsight/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_HashesPassword(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	service := NewAuthService(repo, "secret", time.Hour)

	user, err := service.EnsureUser(context.Background(), "Admin@Example.com", "Admin", "supersecret", models.RoleAdmin)
	require.NoError(t, err, "ошибка создания пользователя")

	stored := repo.Users["admin@example.com"]
	require.NotNil(t, stored, "пользователь не сохранён")
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("supersecret", stored.PasswordHash))
	assert.Equal(t, stored.ID, user.ID)

	_, err = service.EnsureUser(context.Background(), "admin@example.com", "Admin", "another-pass", models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, repo.Users, 1, "повторный сид не должен создавать дубликат")
}

func TestEnsureUser_RejectsUnknownRole(t *testing.T) {
	service := NewAuthService(mocks.NewMockUserRepository(), "secret", time.Hour)
	_, err := service.EnsureUser(context.Background(), "x@example.com", "X", "password1", "user")
	assert.True(t, IsValidation(err))
}

func TestLoginUser_Success(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	service := NewAuthService(repo, "mysecret", 15*time.Minute)
	_, err := service.EnsureUser(context.Background(), "editor@example.com", "Ed", "secret-pass", models.RoleEditor)
	require.NoError(t, err)

	resp, err := service.LoginUser(context.Background(), models.LoginRequest{Email: " Editor@example.com ", Password: "secret-pass"})
	require.NoError(t, err, "ошибка логина")
	require.NotEmpty(t, resp.Token, "токен не сгенерирован")

	id, role, err := utils.ParseToken("mysecret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)
	assert.Equal(t, models.RoleEditor, role)
}

func TestLoginUser_Fail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	service := NewAuthService(repo, "secret", time.Minute)
	_, err := service.EnsureUser(context.Background(), "a@example.com", "A", "right-pass", models.RoleAdmin)
	require.NoError(t, err)

	_, err = service.LoginUser(context.Background(), models.LoginRequest{Email: "unknown@example.com", Password: "pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.LoginUser(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.LoginUser(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, IsValidation(err))
}
