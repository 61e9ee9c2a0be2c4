package user

import (
	"context"
	"fmt"

	"wonderscape/internal/common"
	"wonderscape/internal/dbmysql"
)

//go:generate mockgen -source=user_service.go -destination=mock_user_service.go -package=user

type UserService interface {
	RegisterUser(ctx context.Context, email, password string) (*dbmysql.User, string, error)
	LoginUser(ctx context.Context, email, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID uint64) (*dbmysql.User, error)
	// DisplayNames maps each id to the owner's email, or AnonymousName
	DisplayNames(ctx context.Context, userIDs []uint64) (map[uint64]string, error)
}

type userService struct {
	userRepo UserRepository
	tokens   *common.JWTManager
}

func NewUserService(userRepo UserRepository, tokens *common.JWTManager) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

func (s *userService) RegisterUser(ctx context.Context, email, password string) (*dbmysql.User, string, error) {
	email = common.NormalizeEmail(email)
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := common.ValidatePassword(password); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	//duplicates check
	exists, err := s.userRepo.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &dbmysql.User{
		Email:        email,
		PasswordHash: hashed,
		Status:       dbmysql.UserStatusActive,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *userService) LoginUser(ctx context.Context, email, password string) (*dbmysql.User, string, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.Status != dbmysql.UserStatusActive {
		return nil, "", ErrUserInactive
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DisplayNames(ctx context.Context, userIDs []uint64) (map[uint64]string, error) {
	names := make(map[uint64]string, len(userIDs))
	unique := make([]uint64, 0, len(userIDs))
	for _, id := range userIDs {
		if _, seen := names[id]; !seen {
			names[id] = AnonymousName
			unique = append(unique, id)
		}
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email != "" {
			names[u.UserID] = u.Email
		}
	}
	return names, nil
}
