package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/repository"
)

// MemoryRepository is an in-memory Repository used by the API tests. It
// mirrors the Postgres implementation's semantics (nil for missing rows,
// sentinel errors, pagination) without needing a database.
type MemoryRepository struct {
	mu             sync.Mutex
	users          map[int64]*models.User
	userNumsByID   map[string]int64
	pictures       map[string]*models.Picture
	histories      []*models.History
	nextUserNum    int64
	nextHistoryNum int64
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[int64]*models.User),
		userNumsByID: make(map[string]int64),
		pictures:     make(map[string]*models.Picture),
	}
}

// User operations
func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.userNumsByID[user.UserID]; exists {
		return repository.ErrDuplicate
	}

	r.nextUserNum++
	user.UserNum = r.nextUserNum
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.UserNum] = &clone
	r.userNumsByID[user.UserID] = user.UserNum
	return nil
}

func (r *MemoryRepository) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	num, ok := r.userNumsByID[userID]
	if !ok {
		return nil, nil
	}
	clone := *r.users[num]
	return &clone, nil
}

func (r *MemoryRepository) GetUserByNum(ctx context.Context, userNum int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userNum]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryRepository) SearchUsersByName(ctx context.Context, name string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	for _, user := range r.users {
		if strings.Contains(user.UserID, name) {
			users = append(users, *user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserNum < users[j].UserNum })
	return users, nil
}

func (r *MemoryRepository) UpdateUser(ctx context.Context, userNum int64, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userNum]
	if !ok {
		return nil, nil
	}

	if other, exists := r.userNumsByID[userID]; exists && other != userNum {
		return nil, repository.ErrDuplicate
	}

	delete(r.userNumsByID, user.UserID)
	user.UserID = userID
	user.UpdatedAt = time.Now().UTC()
	r.userNumsByID[userID] = userNum

	clone := *user
	return &clone, nil
}

// Picture operations
func (r *MemoryRepository) CreatePicture(ctx context.Context, picture *models.Picture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	picture.CreatedAt = now
	picture.UpdatedAt = now

	clone := *picture
	r.pictures[picture.TokenID] = &clone
	return nil
}

func (r *MemoryRepository) UpdatePicture(ctx context.Context, req *models.PictureUpdateRequest) (*models.Picture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[req.TokenID]
	if !ok {
		return nil, nil
	}

	if req.PictureURL != nil {
		picture.PictureURL = *req.PictureURL
	}
	if req.PictureTitle != nil {
		picture.PictureTitle = *req.PictureTitle
	}
	if req.PictureInfo != nil {
		picture.PictureInfo = *req.PictureInfo
	}
	if req.PictureCategory != nil {
		picture.PictureCategory = *req.PictureCategory
	}
	if req.PicturePrice != nil {
		picture.PicturePrice = *req.PicturePrice
	}
	picture.UpdatedAt = time.Now().UTC()

	clone := *picture
	return &clone, nil
}

func (r *MemoryRepository) SavePictureVector(ctx context.Context, tokenID string, vector string, norm float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return false, nil
	}
	picture.PictureVector = &vector
	picture.PictureNorm = &norm
	picture.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryRepository) RegisterSale(ctx context.Context, tokenID string, price int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return false, nil
	}
	picture.PictureState = models.ForSale
	picture.PicturePrice = price
	picture.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryRepository) CancelSale(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return false, nil
	}
	picture.PictureState = models.Held
	picture.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryRepository) SearchPictures(ctx context.Context, keyword string, first, last int) ([]models.Picture, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Picture
	for _, picture := range r.pictures {
		if picture.PictureState != models.ForSale {
			continue
		}
		if strings.Contains(picture.PictureTitle, keyword) ||
			strings.Contains(picture.PictureInfo, keyword) ||
			strings.Contains(picture.PictureCategory, keyword) {
			matched = append(matched, *picture)
		}
	}
	sortNewestFirst(matched)
	return paginate(matched, first, last), int64(len(matched)), nil
}

func (r *MemoryRepository) GetUserPictures(ctx context.Context, userNum int64, state models.PictureState, first, last int) ([]models.Picture, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Picture
	for _, picture := range r.pictures {
		if picture.UserNum == userNum && picture.PictureState == state {
			matched = append(matched, *picture)
		}
	}
	sortNewestFirst(matched)
	return paginate(matched, first, last), int64(len(matched)), nil
}

func (r *MemoryRepository) ListPicturesByPrice(ctx context.Context, ascending bool, first, last int) ([]models.Picture, int64, error) {
	matched := r.forSale()
	sort.Slice(matched, func(i, j int) bool {
		if ascending {
			return matched[i].PicturePrice < matched[j].PicturePrice
		}
		return matched[i].PicturePrice > matched[j].PicturePrice
	})
	return paginate(matched, first, last), int64(len(matched)), nil
}

func (r *MemoryRepository) ListPicturesByCategory(ctx context.Context, category string, first, last int) ([]models.Picture, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Picture
	for _, picture := range r.pictures {
		if picture.PictureState == models.ForSale && picture.PictureCategory == category {
			matched = append(matched, *picture)
		}
	}
	sortNewestFirst(matched)
	return paginate(matched, first, last), int64(len(matched)), nil
}

func (r *MemoryRepository) ListPicturesByPopularity(ctx context.Context, first, last int) ([]models.Picture, int64, error) {
	matched := r.forSale()
	sort.Slice(matched, func(i, j int) bool { return matched[i].PictureCount > matched[j].PictureCount })
	return paginate(matched, first, last), int64(len(matched)), nil
}

func (r *MemoryRepository) GetPicture(ctx context.Context, tokenID string) (*models.Picture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return nil, nil
	}
	clone := *picture
	return &clone, nil
}

func (r *MemoryRepository) IncrementViewCount(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return false, nil
	}
	picture.PictureCount++
	return true, nil
}

func (r *MemoryRepository) GetPictureOwner(ctx context.Context, tokenID string) (*models.PictureOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return nil, nil
	}
	owner, ok := r.users[picture.UserNum]
	if !ok {
		return nil, nil
	}
	return &models.PictureOwner{TokenID: tokenID, UserAccount: owner.UserAccount}, nil
}

// History operations
func (r *MemoryRepository) GetUserHistories(ctx context.Context, userNum int64, first, last int) ([]models.History, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.History
	for _, history := range r.histories {
		if history.UserNum1 == userNum || history.UserNum2 == userNum {
			matched = append(matched, *history)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].HistoryNum > matched[j].HistoryNum })

	total := int64(len(matched))
	if first >= len(matched) {
		return nil, total, nil
	}
	end := first + last
	if end > len(matched) {
		end = len(matched)
	}
	return matched[first:end], total, nil
}

func (r *MemoryRepository) ExecuteTrade(ctx context.Context, tokenID string, buyerNum int64) (*models.History, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	picture, ok := r.pictures[tokenID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if picture.PictureState != models.ForSale {
		return nil, repository.ErrNotForSale
	}
	if picture.UserNum == buyerNum {
		return nil, repository.ErrSelfTrade
	}

	r.nextHistoryNum++
	history := &models.History{
		HistoryNum:   r.nextHistoryNum,
		CreatedAt:    time.Now().UTC(),
		UserNum1:     picture.UserNum,
		UserNum2:     buyerNum,
		PictureURL:   picture.PictureURL,
		PictureTitle: picture.PictureTitle,
		PicturePrice: picture.PicturePrice,
	}
	r.histories = append(r.histories, history)

	picture.UserNum = buyerNum
	picture.PictureState = models.Held
	picture.UpdatedAt = time.Now().UTC()

	clone := *history
	return &clone, nil
}

func (r *MemoryRepository) forSale() []models.Picture {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Picture
	for _, picture := range r.pictures {
		if picture.PictureState == models.ForSale {
			matched = append(matched, *picture)
		}
	}
	return matched
}

func sortNewestFirst(pictures []models.Picture) {
	sort.Slice(pictures, func(i, j int) bool {
		if pictures[i].CreatedAt.Equal(pictures[j].CreatedAt) {
			return pictures[i].TokenID < pictures[j].TokenID
		}
		return pictures[i].CreatedAt.After(pictures[j].CreatedAt)
	})
}

func paginate(pictures []models.Picture, first, last int) []models.Picture {
	if first >= len(pictures) {
		return nil
	}
	end := first + last
	if end > len(pictures) {
		end = len(pictures)
	}
	return pictures[first:end]
}
