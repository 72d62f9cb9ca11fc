package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/repository"
	"github.com/daehyunk/picmarket/internal/storage"
	"github.com/golang-jwt/jwt/v5"
)

// Errors returned by the service layer. Handlers map these onto HTTP codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("caller does not own this token")
	ErrUserExists         = errors.New("user with this handle already exists")
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrNotForSale         = errors.New("token is not listed for sale")
	ErrSelfTrade          = errors.New("cannot buy your own token")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// defaultPageSize is applied when a query omits "last".
const defaultPageSize = 10

// Service defines all the business logic operations
type Service interface {
	// Users
	RegisterUser(ctx context.Context, req models.UserInsertRequest) (*models.User, error)
	Login(ctx context.Context, req models.UserLoginRequest) (*models.LoginResponse, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	SearchUsers(ctx context.Context, name string) ([]models.User, error)
	UpdateUser(ctx context.Context, userNum int64, req models.UserUpdateRequest) (*models.User, error)
	GetUserPictures(ctx context.Context, userNum int64, query models.MyListQuery) ([]models.Picture, int64, error)
	GetUserHistory(ctx context.Context, userNum int64, query models.PageQuery) ([]models.History, int64, error)

	// Pictures
	MintPicture(ctx context.Context, ownerNum int64, req models.PictureInsertRequest) (*models.Picture, error)
	UploadPictureImage(ctx context.Context, userNum int64, filename, contentType string, body io.Reader) (*models.UploadResponse, error)
	UpdatePicture(ctx context.Context, callerNum int64, req models.PictureUpdateRequest) (*models.Picture, error)
	SavePictureVector(ctx context.Context, tokenID string, req models.PictureVectorRequest) error
	RegisterSale(ctx context.Context, callerNum int64, req models.PictureSaleRequest) error
	CancelSale(ctx context.Context, callerNum int64, tokenID string) error
	SearchPictures(ctx context.Context, keyword string, query models.PageQuery) ([]models.Picture, int64, error)
	ListByPrice(ctx context.Context, query models.PriceQuery) ([]models.Picture, int64, error)
	ListByCategory(ctx context.Context, query models.CategoryQuery) ([]models.Picture, int64, error)
	ListByPopularity(ctx context.Context, query models.PageQuery) ([]models.Picture, int64, error)
	ViewPicture(ctx context.Context, tokenID string) (*models.Picture, error)
	GetPictureOwner(ctx context.Context, tokenID string) (*models.PictureOwner, error)
	ExecuteTrade(ctx context.Context, buyerNum int64, tokenID string) (*models.History, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	store         storage.ObjectStore
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService. store may be nil when no
// object storage is configured; uploads then fail with ErrStorageUnavailable.
func NewDefaultService(repo repository.Repository, store storage.ObjectStore, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		store:         store,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// pageSize normalizes the "last" query value.
func pageSize(last int) int {
	if last <= 0 {
		return defaultPageSize
	}
	return last
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":     strconv.FormatInt(user.UserNum, 10), // subject
		"user_id": user.UserID,
		"exp":     expirationTime.Unix(),
		"iat":     time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
