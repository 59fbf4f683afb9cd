package service

import (
	"context"
	"strings"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/params"
	"agenda-api/core/utils"
	"agenda-api/modules/user/dto"
	"agenda-api/modules/user/entity"
	"agenda-api/modules/user/repository"
)

type UserService struct {
	repo repository.UserRepositoryInterface
}

func NewUserService(repo repository.UserRepositoryInterface) *UserService {
	return &UserService{repo: repo}
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FullName:        user.FullName,
		Phone:           user.Phone,
		IsAdmin:         user.IsAdmin,
		IsActive:        user.IsActive,
		CollaboratorIDs: user.CollaboratorIDs,
		CreatedAt:       user.CreatedAt,
	}
}

// Signup creates an identity record. Username and email uniqueness is
// enforced by the store; a duplicate surfaces as ErrAlreadyExists.
func (s *UserService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, *errors.AppError) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "username, email and password are required", nil)
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid email address", nil)
	}
	if len(req.Password) < 8 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "password must be at least 8 characters", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("UserService:Signup:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to create user")
	}

	logger.Info("UserService:Signup:Success", "user_id", created.ID, "username", created.Username)
	return toUserResponse(created), nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get user")
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return toUserResponse(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	if err := s.repo.UpdateProfile(ctx, userID, req.FullName, req.Phone); err != nil {
		return nil, errors.FromPostgres(err, "failed to update profile")
	}
	return s.GetProfile(ctx, userID)
}

// Deactivate soft-disables the account; the row and its dependents stay.
func (s *UserService) Deactivate(ctx context.Context, userID int64) *errors.AppError {
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return errors.FromPostgres(err, "failed to deactivate user")
	}
	logger.Info("UserService:Deactivate:Success", "user_id", userID)
	return nil
}

// Delete removes the account and, via cascade, everything it owns.
func (s *UserService) Delete(ctx context.Context, userID int64) *errors.AppError {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return errors.FromPostgres(err, "failed to delete user")
	}
	logger.Info("UserService:Delete:Success", "user_id", userID)
	return nil
}

func (s *UserService) Search(ctx context.Context, userID int64, qp *params.QueryParams) ([]dto.SearchUserResponse, *errors.AppError) {
	query := strings.TrimSpace(qp.Search)
	if query == "" {
		return []dto.SearchUserResponse{}, nil
	}

	users, err := s.repo.Search(ctx, query, userID, qp.PageSize, qp.Offset())
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to search users")
	}

	results := make([]dto.SearchUserResponse, 0, len(users))
	for _, u := range users {
		results = append(results, dto.SearchUserResponse{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			FullName: u.FullName,
		})
	}
	return results, nil
}

// GetCollaborators resolves the user's collaborator id set to user rows.
func (s *UserService) GetCollaborators(ctx context.Context, userID int64) ([]dto.SearchUserResponse, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get user")
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	collaborators, err := s.repo.GetByIDs(ctx, user.CollaboratorIDs)
	if err != nil {
		return nil, errors.FromPostgres(err, "failed to get collaborators")
	}

	results := make([]dto.SearchUserResponse, 0, len(collaborators))
	for _, u := range collaborators {
		results = append(results, dto.SearchUserResponse{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			FullName: u.FullName,
		})
	}
	return results, nil
}
