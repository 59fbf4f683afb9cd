package repository

import (
	"context"
	"database/sql"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/user/entity"

	"github.com/jmoiron/sqlx"
)

// UserRepository handles user table operations
type UserRepository struct {
	DB database.Database
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, excludeID int64, limit, offset int) ([]entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error)
}

const userColumns = `id, username, email, password_hash, full_name, phone, is_admin, is_active,
	COALESCE(collaborator_ids, '{}') AS collaborator_ids, created_at`

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, full_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Phone)
	if err != nil {
		logger.Error("UserRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByUsername", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByEmail", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error {
	query := `
		UPDATE users
		SET full_name = COALESCE($2, full_name), phone = COALESCE($3, phone)
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, fullName, phone); err != nil {
		logger.Error("UserRepository:UpdateProfile", err)
		return err
	}
	return nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_active = FALSE WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("UserRepository:Deactivate", err)
		return err
	}
	return nil
}

// Delete removes the user row. Tasks, events, sessions, event collaborator
// rows and OAuth accounts go with it through the foreign key cascades;
// events linked to the user's tasks keep their rows with task_id nulled.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("UserRepository:Delete", err)
		return err
	}
	return nil
}

func (r *UserRepository) Search(ctx context.Context, query string, excludeID int64, limit, offset int) ([]entity.User, error) {
	sqlQuery := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active = TRUE
		  AND id != $2
		  AND (username ILIKE $1 OR email ILIKE $1)
		ORDER BY username
		LIMIT $3 OFFSET $4
	`

	var users []entity.User
	err := r.DB.SelectContext(ctx, &users, sqlQuery, "%"+query+"%", excludeID, limit, offset)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.User{}, nil
		}
		logger.Error("UserRepository:Search", err)
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?) ORDER BY username`, ids)
	if err != nil {
		logger.Error("UserRepository:GetByIDs:In", err)
		return nil, err
	}

	var users []entity.User
	err = r.DB.SelectContext(ctx, &users, r.DB.SQLx().Rebind(query), args...)
	if err != nil {
		logger.Error("UserRepository:GetByIDs", err)
		return nil, err
	}

	return users, nil
}
