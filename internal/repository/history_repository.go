package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/daehyunk/picmarket/internal/models"
)

// History repository methods
func (r *PostgresRepository) GetUserHistories(ctx context.Context, userNum int64, first, last int) ([]models.History, int64, error) {
	where := `WHERE user_num1 = $1 OR user_num2 = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM histories "+where, userNum); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM histories " + where + " ORDER BY created_at DESC, history_num DESC OFFSET $2 LIMIT $3"

	var histories []models.History
	if err := r.db.SelectContext(ctx, &histories, query, userNum, first, last); err != nil {
		return nil, 0, err
	}

	return histories, total, nil
}

// ExecuteTrade transfers a for-sale token to the buyer and records the trade
// in a single transaction. The picture row is locked for the duration so two
// buyers cannot both purchase the same token.
func (r *PostgresRepository) ExecuteTrade(ctx context.Context, tokenID string, buyerNum int64) (*models.History, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	var picture models.Picture
	err = tx.GetContext(ctx, &picture, `SELECT * FROM pictures WHERE token_id = $1 FOR UPDATE`, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return nil, err
	}

	if picture.PictureState != models.ForSale {
		err = ErrNotForSale
		return nil, err
	}
	if picture.UserNum == buyerNum {
		err = ErrSelfTrade
		return nil, err
	}

	history := &models.History{
		CreatedAt:    time.Now().UTC(),
		UserNum1:     picture.UserNum,
		UserNum2:     buyerNum,
		PictureURL:   picture.PictureURL,
		PictureTitle: picture.PictureTitle,
		PicturePrice: picture.PicturePrice,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO histories (created_at, user_num1, user_num2, picture_url, picture_title, picture_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING history_num
	`, history.CreatedAt, history.UserNum1, history.UserNum2,
		history.PictureURL, history.PictureTitle, history.PicturePrice).Scan(&history.HistoryNum)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pictures SET user_num = $1, picture_state = $2, updated_at = $3
		WHERE token_id = $4
	`, buyerNum, models.Held, time.Now().UTC(), tokenID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return history, nil
}
