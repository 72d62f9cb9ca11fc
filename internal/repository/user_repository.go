package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/daehyunk/picmarket/internal/models"
)

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, user_account, user_password, user_privatekey, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_num
	`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		user.UserID, user.UserAccount, user.UserPassword, user.UserPrivateKey,
		user.CreatedAt, user.UpdatedAt).Scan(&user.UserNum)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *PostgresRepository) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT * FROM users WHERE user_id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByNum(ctx context.Context, userNum int64) (*models.User, error) {
	query := `SELECT * FROM users WHERE user_num = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userNum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) SearchUsersByName(ctx context.Context, name string) ([]models.User, error) {
	query := `SELECT * FROM users WHERE user_id LIKE $1 ORDER BY user_num ASC`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, "%"+name+"%")
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, userNum int64, userID string) (*models.User, error) {
	query := `
		UPDATE users SET user_id = $1, updated_at = $2
		WHERE user_num = $3
		RETURNING *
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID, time.Now().UTC(), userNum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &user, nil
}
