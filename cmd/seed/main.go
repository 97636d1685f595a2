// Команда seed создаёт или обновляет учётные записи администратора и редактора.
package main

import (
	"context"
	"os"
	"time"

	"theinsight/internal/config"
	"theinsight/internal/db"
	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"
	"theinsight/internal/services"

	"go.uber.org/zap"
)

type account struct {
	email, name, password, role string
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}
	logger.Init(cfg)
	defer func() { _ = logger.Log.Sync() }()

	if _, err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Некорректная конфигурация", zap.Error(err))
	}
	if err := db.RunMigrations(cfg); err != nil {
		logger.Log.Fatal("Ошибка миграций", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer conn.Close()

	auth := services.NewAuthService(repository.NewUserRepository(conn), cfg.JWTSecret, cfg.TokenTTL())

	accounts := []account{
		{os.Getenv("ADMIN_EMAIL"), "Administrator", os.Getenv("ADMIN_PASSWORD"), models.RoleAdmin},
		{os.Getenv("EDITOR_EMAIL"), "Editor", os.Getenv("EDITOR_PASSWORD"), models.RoleEditor},
	}
	for _, a := range accounts {
		if a.email == "" {
			logger.Log.Info("Пропуск учётной записи без email", zap.String("role", a.role))
			continue
		}
		u, err := auth.EnsureUser(ctx, a.email, a.name, a.password, a.role)
		if err != nil {
			logger.Log.Fatal("Ошибка создания учётной записи", zap.String("email", a.email), zap.Error(err))
		}
		logger.Log.Info("Учётная запись готова", zap.Int64("id", u.ID), zap.String("email", u.Email), zap.String("role", u.Role))
	}
}
