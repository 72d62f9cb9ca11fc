package repository

import (
	"context"
	"errors"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Sentinel errors surfaced by the Postgres implementation. The service layer
// translates them into its own error taxonomy.
var (
	ErrDuplicate  = errors.New("duplicate key")
	ErrNotFound   = errors.New("row not found")
	ErrNotForSale = errors.New("picture not listed for sale")
	ErrSelfTrade  = errors.New("buyer already owns the picture")
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUserID(ctx context.Context, userID string) (*models.User, error)
	GetUserByNum(ctx context.Context, userNum int64) (*models.User, error)
	SearchUsersByName(ctx context.Context, name string) ([]models.User, error)
	UpdateUser(ctx context.Context, userNum int64, userID string) (*models.User, error)

	// Picture operations
	CreatePicture(ctx context.Context, picture *models.Picture) error
	UpdatePicture(ctx context.Context, req *models.PictureUpdateRequest) (*models.Picture, error)
	SavePictureVector(ctx context.Context, tokenID string, vector string, norm float64) (bool, error)
	RegisterSale(ctx context.Context, tokenID string, price int64) (bool, error)
	CancelSale(ctx context.Context, tokenID string) (bool, error)
	SearchPictures(ctx context.Context, keyword string, first, last int) ([]models.Picture, int64, error)
	GetUserPictures(ctx context.Context, userNum int64, state models.PictureState, first, last int) ([]models.Picture, int64, error)
	ListPicturesByPrice(ctx context.Context, ascending bool, first, last int) ([]models.Picture, int64, error)
	ListPicturesByCategory(ctx context.Context, category string, first, last int) ([]models.Picture, int64, error)
	ListPicturesByPopularity(ctx context.Context, first, last int) ([]models.Picture, int64, error)
	GetPicture(ctx context.Context, tokenID string) (*models.Picture, error)
	IncrementViewCount(ctx context.Context, tokenID string) (bool, error)
	GetPictureOwner(ctx context.Context, tokenID string) (*models.PictureOwner, error)

	// History operations
	GetUserHistories(ctx context.Context, userNum int64, first, last int) ([]models.History, int64, error)
	ExecuteTrade(ctx context.Context, tokenID string, buyerNum int64) (*models.History, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
