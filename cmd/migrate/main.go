// Команда migrate применяет или откатывает миграции схемы: migrate [up|down].
package main

import (
	"os"

	"theinsight/internal/config"
	"theinsight/internal/db"
	"theinsight/internal/logger"

	"go.uber.org/zap"
)

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

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = db.RunMigrations(cfg)
	case "down":
		err = db.MigrateDown(cfg)
	default:
		logger.Log.Fatal("Неизвестная команда, ожидается up или down", zap.String("arg", direction))
	}
	if err != nil {
		logger.Log.Fatal("Ошибка миграций", zap.String("direction", direction), zap.Error(err))
	}
	logger.Log.Info("Миграции выполнены", zap.String("direction", direction))
}
