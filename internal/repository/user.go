package repository

import (
	"context"

	"theinsight/internal/logger"
	"theinsight/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userColumns = `id, email, name, password_hash, role, is_active, created_at, updated_at`

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpsertUser(ctx context.Context, user *models.User) error
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type UserRepository struct {
	db     *pgxpool.Pool
	lister Lister[models.User]
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db, lister: NewLister[models.User]("users", userColumns)}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("email", user.Email), zap.String("role", user.Role))
	query := `
	INSERT INTO users (email, name, password_hash, role, is_active)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// UpsertUser создаёт пользователя или обновляет пароль/роль существующего (используется сидером).
func (r *UserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Upsert пользователя (repo)", zap.String("email", user.Email), zap.String("role", user.Role))
	query := `
	INSERT INTO users (email, name, password_hash, role, is_active)
	VALUES ($1, $2, $3, $4, TRUE)
	ON CONFLICT (email) DO UPDATE
	SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, role = EXCLUDED.role,
	    is_active = TRUE, updated_at = NOW()
	RETURNING id, is_active, created_at, updated_at`
	return r.db.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.lister.One(ctx, r.db, NewFilter().Eq("email", email), "id")
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.lister.ByID(ctx, r.db, id)
}
