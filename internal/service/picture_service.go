package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/repository"
	"github.com/google/uuid"
)

// MintPicture creates a new picture token owned by ownerNum. New tokens start
// held, with a zero view count.
func (s *DefaultService) MintPicture(ctx context.Context, ownerNum int64, req models.PictureInsertRequest) (*models.Picture, error) {
	picture := &models.Picture{
		TokenID:         uuid.New().String(),
		PictureURL:      req.PictureURL,
		PictureTitle:    req.PictureTitle,
		PictureInfo:     req.PictureInfo,
		PictureCategory: req.PictureCategory,
		PicturePrice:    req.PicturePrice,
		PictureState:    models.Held,
		UserNum:         ownerNum,
	}

	if err := s.repo.CreatePicture(ctx, picture); err != nil {
		return nil, fmt.Errorf("error creating picture: %w", err)
	}

	return picture, nil
}

// UploadPictureImage streams an image to the object store and returns the
// public URL to use as picture_url.
func (s *DefaultService) UploadPictureImage(ctx context.Context, userNum int64, filename, contentType string, body io.Reader) (*models.UploadResponse, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	key := fmt.Sprintf("pictures/%d/%s_%s", userNum, uuid.New().String(), filename)

	url, err := s.store.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("error uploading image: %w", err)
	}

	return &models.UploadResponse{URL: url, Key: key}, nil
}

func (s *DefaultService) UpdatePicture(ctx context.Context, callerNum int64, req models.PictureUpdateRequest) (*models.Picture, error) {
	if err := s.checkOwnership(ctx, req.TokenID, callerNum); err != nil {
		return nil, err
	}

	picture, err := s.repo.UpdatePicture(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("error updating picture: %w", err)
	}

	if picture == nil {
		return nil, ErrNotFound
	}

	return picture, nil
}

func (s *DefaultService) SavePictureVector(ctx context.Context, tokenID string, req models.PictureVectorRequest) error {
	updated, err := s.repo.SavePictureVector(ctx, tokenID, req.PictureVector, req.PictureNorm)
	if err != nil {
		return fmt.Errorf("error saving picture vector: %w", err)
	}

	if !updated {
		return ErrNotFound
	}

	return nil
}

func (s *DefaultService) RegisterSale(ctx context.Context, callerNum int64, req models.PictureSaleRequest) error {
	if err := s.checkOwnership(ctx, req.TokenID, callerNum); err != nil {
		return err
	}

	updated, err := s.repo.RegisterSale(ctx, req.TokenID, req.PicturePrice)
	if err != nil {
		return fmt.Errorf("error registering sale: %w", err)
	}

	if !updated {
		return ErrNotFound
	}

	return nil
}

func (s *DefaultService) CancelSale(ctx context.Context, callerNum int64, tokenID string) error {
	if err := s.checkOwnership(ctx, tokenID, callerNum); err != nil {
		return err
	}

	updated, err := s.repo.CancelSale(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("error cancelling sale: %w", err)
	}

	if !updated {
		return ErrNotFound
	}

	return nil
}

func (s *DefaultService) SearchPictures(ctx context.Context, keyword string, query models.PageQuery) ([]models.Picture, int64, error) {
	pictures, total, err := s.repo.SearchPictures(ctx, keyword, query.First, pageSize(query.Last))
	if err != nil {
		return nil, 0, fmt.Errorf("error searching pictures: %w", err)
	}

	return pictures, total, nil
}

func (s *DefaultService) ListByPrice(ctx context.Context, query models.PriceQuery) ([]models.Picture, int64, error) {
	pictures, total, err := s.repo.ListPicturesByPrice(ctx, query.Order == "asc", query.First, pageSize(query.Last))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pictures by price: %w", err)
	}

	return pictures, total, nil
}

func (s *DefaultService) ListByCategory(ctx context.Context, query models.CategoryQuery) ([]models.Picture, int64, error) {
	pictures, total, err := s.repo.ListPicturesByCategory(ctx, query.Category, query.First, pageSize(query.Last))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pictures by category: %w", err)
	}

	return pictures, total, nil
}

func (s *DefaultService) ListByPopularity(ctx context.Context, query models.PageQuery) ([]models.Picture, int64, error) {
	pictures, total, err := s.repo.ListPicturesByPopularity(ctx, query.First, pageSize(query.Last))
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pictures by popularity: %w", err)
	}

	return pictures, total, nil
}

// ViewPicture returns the detail row after bumping its view counter.
func (s *DefaultService) ViewPicture(ctx context.Context, tokenID string) (*models.Picture, error) {
	viewed, err := s.repo.IncrementViewCount(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("error counting view: %w", err)
	}

	if !viewed {
		return nil, ErrNotFound
	}

	picture, err := s.repo.GetPicture(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("error getting picture: %w", err)
	}

	if picture == nil {
		return nil, ErrNotFound
	}

	return picture, nil
}

func (s *DefaultService) GetPictureOwner(ctx context.Context, tokenID string) (*models.PictureOwner, error) {
	owner, err := s.repo.GetPictureOwner(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("error getting picture owner: %w", err)
	}

	if owner == nil {
		return nil, ErrNotFound
	}

	return owner, nil
}

func (s *DefaultService) ExecuteTrade(ctx context.Context, buyerNum int64, tokenID string) (*models.History, error) {
	history, err := s.repo.ExecuteTrade(ctx, tokenID, buyerNum)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNotForSale):
			return nil, ErrNotForSale
		case errors.Is(err, repository.ErrSelfTrade):
			return nil, ErrSelfTrade
		}
		return nil, fmt.Errorf("error executing trade: %w", err)
	}

	return history, nil
}

// checkOwnership verifies that callerNum owns the token.
func (s *DefaultService) checkOwnership(ctx context.Context, tokenID string, callerNum int64) error {
	picture, err := s.repo.GetPicture(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("error getting picture: %w", err)
	}

	if picture == nil {
		return ErrNotFound
	}

	if picture.UserNum != callerNum {
		return ErrForbidden
	}

	return nil
}
