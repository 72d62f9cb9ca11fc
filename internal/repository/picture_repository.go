package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daehyunk/picmarket/internal/models"
)

// Picture repository methods
func (r *PostgresRepository) CreatePicture(ctx context.Context, picture *models.Picture) error {
	query := `
		INSERT INTO pictures (token_id, picture_url, picture_title, picture_info, picture_category,
			picture_price, picture_count, picture_state, user_num, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now().UTC()
	picture.CreatedAt = now
	picture.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		picture.TokenID, picture.PictureURL, picture.PictureTitle, picture.PictureInfo,
		picture.PictureCategory, picture.PicturePrice, picture.PictureCount,
		picture.PictureState, picture.UserNum, picture.CreatedAt, picture.UpdatedAt)

	return err
}

// UpdatePicture applies only the fields present in the request and returns the
// updated row, or nil when the token does not exist.
func (r *PostgresRepository) UpdatePicture(ctx context.Context, req *models.PictureUpdateRequest) (*models.Picture, error) {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if req.PictureURL != nil {
		add("picture_url", *req.PictureURL)
	}
	if req.PictureTitle != nil {
		add("picture_title", *req.PictureTitle)
	}
	if req.PictureInfo != nil {
		add("picture_info", *req.PictureInfo)
	}
	if req.PictureCategory != nil {
		add("picture_category", *req.PictureCategory)
	}
	if req.PicturePrice != nil {
		add("picture_price", *req.PicturePrice)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, req.TokenID)
	query := fmt.Sprintf(
		"UPDATE pictures SET %s WHERE token_id = $%d RETURNING *",
		strings.Join(set, ", "), len(args),
	)

	var picture models.Picture
	err := r.db.GetContext(ctx, &picture, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Picture not found
		}
		return nil, err
	}

	return &picture, nil
}

// SavePictureVector writes only the embedding columns for a token.
func (r *PostgresRepository) SavePictureVector(ctx context.Context, tokenID string, vector string, norm float64) (bool, error) {
	query := `
		UPDATE pictures SET picture_vector = $1, picture_norm = $2, updated_at = $3
		WHERE token_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, vector, norm, time.Now().UTC(), tokenID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *PostgresRepository) RegisterSale(ctx context.Context, tokenID string, price int64) (bool, error) {
	query := `
		UPDATE pictures SET picture_state = $1, picture_price = $2, updated_at = $3
		WHERE token_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, models.ForSale, price, time.Now().UTC(), tokenID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

// CancelSale flips the token back to held. The price is left as it was.
func (r *PostgresRepository) CancelSale(ctx context.Context, tokenID string) (bool, error) {
	query := `
		UPDATE pictures SET picture_state = $1, updated_at = $2
		WHERE token_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, models.Held, time.Now().UTC(), tokenID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *PostgresRepository) SearchPictures(ctx context.Context, keyword string, first, last int) ([]models.Picture, int64, error) {
	where := `
		WHERE (picture_title LIKE $1 OR picture_info LIKE $1 OR picture_category LIKE $1)
		AND picture_state = 'Y'
	`
	pattern := "%" + keyword + "%"

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM pictures "+where, pattern); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM pictures " + where + " ORDER BY created_at DESC OFFSET $2 LIMIT $3"

	var pictures []models.Picture
	if err := r.db.SelectContext(ctx, &pictures, query, pattern, first, last); err != nil {
		return nil, 0, err
	}

	return pictures, total, nil
}

func (r *PostgresRepository) GetUserPictures(ctx context.Context, userNum int64, state models.PictureState, first, last int) ([]models.Picture, int64, error) {
	where := `WHERE user_num = $1 AND picture_state = $2`

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM pictures "+where, userNum, state); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM pictures " + where + " ORDER BY created_at DESC OFFSET $3 LIMIT $4"

	var pictures []models.Picture
	if err := r.db.SelectContext(ctx, &pictures, query, userNum, state, first, last); err != nil {
		return nil, 0, err
	}

	return pictures, total, nil
}

func (r *PostgresRepository) ListPicturesByPrice(ctx context.Context, ascending bool, first, last int) ([]models.Picture, int64, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := `
		SELECT * FROM pictures WHERE picture_state = 'Y'
		ORDER BY picture_price ` + order + ` OFFSET $1 LIMIT $2
	`

	return r.listForSale(ctx, query, first, last)
}

func (r *PostgresRepository) ListPicturesByCategory(ctx context.Context, category string, first, last int) ([]models.Picture, int64, error) {
	where := `WHERE picture_category = $1 AND picture_state = 'Y'`

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM pictures "+where, category); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM pictures " + where + " ORDER BY created_at DESC OFFSET $2 LIMIT $3"

	var pictures []models.Picture
	if err := r.db.SelectContext(ctx, &pictures, query, category, first, last); err != nil {
		return nil, 0, err
	}

	return pictures, total, nil
}

func (r *PostgresRepository) ListPicturesByPopularity(ctx context.Context, first, last int) ([]models.Picture, int64, error) {
	query := `
		SELECT * FROM pictures WHERE picture_state = 'Y'
		ORDER BY picture_count DESC OFFSET $1 LIMIT $2
	`

	return r.listForSale(ctx, query, first, last)
}

// listForSale runs a paginated for-sale listing query alongside the shared
// for-sale total count.
func (r *PostgresRepository) listForSale(ctx context.Context, query string, first, last int) ([]models.Picture, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM pictures WHERE picture_state = 'Y'"); err != nil {
		return nil, 0, err
	}

	var pictures []models.Picture
	if err := r.db.SelectContext(ctx, &pictures, query, first, last); err != nil {
		return nil, 0, err
	}

	return pictures, total, nil
}

func (r *PostgresRepository) GetPicture(ctx context.Context, tokenID string) (*models.Picture, error) {
	query := `SELECT * FROM pictures WHERE token_id = $1`

	var picture models.Picture
	err := r.db.GetContext(ctx, &picture, query, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Picture not found
		}
		return nil, err
	}

	return &picture, nil
}

// IncrementViewCount bumps the view counter with a database-side expression,
// so concurrent views never lose updates.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, tokenID string) (bool, error) {
	query := `UPDATE pictures SET picture_count = picture_count + 1 WHERE token_id = $1`

	result, err := r.db.ExecContext(ctx, query, tokenID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *PostgresRepository) GetPictureOwner(ctx context.Context, tokenID string) (*models.PictureOwner, error) {
	query := `
		SELECT p.token_id, u.user_account FROM pictures p
		JOIN users u ON u.user_num = p.user_num
		WHERE p.token_id = $1
	`

	var owner models.PictureOwner
	err := r.db.GetContext(ctx, &owner, query, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Picture not found
		}
		return nil, err
	}

	return &owner, nil
}
