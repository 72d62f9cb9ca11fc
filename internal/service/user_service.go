package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/daehyunk/picmarket/internal/models"
	"github.com/daehyunk/picmarket/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates an account. The password field is the client-side
// SHA-256 hex digest; it is wrapped with bcrypt before storage and the raw
// password never reaches the server.
func (s *DefaultService) RegisterUser(ctx context.Context, req models.UserInsertRequest) (*models.User, error) {
	existingUser, err := s.repo.GetUserByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		UserID:         req.UserID,
		UserAccount:    req.UserAccount,
		UserPassword:   string(hashedPassword),
		UserPrivateKey: req.UserPrivateKey,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.UserLoginRequest) (*models.LoginResponse, error) {
	user, err := s.repo.GetUserByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	// Verify password (stored bcrypt over the submitted SHA-256 hex)
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.UserPassword)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
		UserNum:   user.UserNum,
		UserID:    user.UserID,
	}, nil
}

func (s *DefaultService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

func (s *DefaultService) SearchUsers(ctx context.Context, name string) ([]models.User, error) {
	users, err := s.repo.SearchUsersByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}

	return users, nil
}

// UpdateUser applies the profile update to userNum, which the handler has
// already pinned to the authenticated caller. Only the handle is mutable.
func (s *DefaultService) UpdateUser(ctx context.Context, userNum int64, req models.UserUpdateRequest) (*models.User, error) {
	if req.UserID == "" {
		// Nothing to change; return the current row.
		user, err := s.repo.GetUserByNum(ctx, userNum)
		if err != nil {
			return nil, fmt.Errorf("error getting user: %w", err)
		}
		if user == nil {
			return nil, ErrNotFound
		}
		return user, nil
	}

	user, err := s.repo.UpdateUser(ctx, userNum, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

func (s *DefaultService) GetUserPictures(ctx context.Context, userNum int64, query models.MyListQuery) ([]models.Picture, int64, error) {
	pictures, total, err := s.repo.GetUserPictures(ctx, userNum, query.State, query.First, pageSize(query.Last))
	if err != nil {
		return nil, 0, fmt.Errorf("error getting user pictures: %w", err)
	}

	return pictures, total, nil
}

func (s *DefaultService) GetUserHistory(ctx context.Context, userNum int64, query models.PageQuery) ([]models.History, int64, error) {
	histories, total, err := s.repo.GetUserHistories(ctx, userNum, query.First, pageSize(query.Last))
	if err != nil {
		return nil, 0, fmt.Errorf("error getting user history: %w", err)
	}

	return histories, total, nil
}
