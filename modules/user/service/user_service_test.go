package service

import (
	"context"
	"testing"

	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/modules/user/dto"
	"agenda-api/modules/user/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	created      *entity.User
	users        map[int64]*entity.User
	err          error
	searchLimit  int
	searchOffset int
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	created := *user
	created.ID = 1
	s.created = &created
	return &created, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.users[id], s.err
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id int64, fullName, phone *string) error {
	return s.err
}

func (s *stubUserRepo) Deactivate(ctx context.Context, id int64) error { return s.err }
func (s *stubUserRepo) Delete(ctx context.Context, id int64) error     { return s.err }

func (s *stubUserRepo) Search(ctx context.Context, query string, excludeID int64, limit, offset int) ([]entity.User, error) {
	s.searchLimit = limit
	s.searchOffset = offset
	return nil, s.err
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	var out []entity.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, s.err
}

func TestSignupValidation(t *testing.T) {
	svc := NewUserService(&stubUserRepo{})

	tests := []struct {
		name string
		req  dto.SignupRequest
	}{
		{"missing username", dto.SignupRequest{Email: "a@x.com", Password: "longenough"}},
		{"missing email", dto.SignupRequest{Username: "alice", Password: "longenough"}},
		{"bad email", dto.SignupRequest{Username: "alice", Email: "nope", Password: "longenough"}},
		{"short password", dto.SignupRequest{Username: "alice", Email: "a@x.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.Signup(context.Background(), &tt.req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestSignupSuccess(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewUserService(repo)

	result, appErr := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "longenough",
		FullName: "Alice Doe",
	})
	require.Nil(t, appErr)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "alice", result.Username)

	// The hash is stored, never the password itself.
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "longenough", repo.created.PasswordHash)
	assert.NotEmpty(t, repo.created.PasswordHash)
}

func TestSignupDuplicate(t *testing.T) {
	svc := NewUserService(&stubUserRepo{err: &pq.Error{Code: "23505", Constraint: "users_email_key"}})

	_, appErr := svc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "longenough",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestGetCollaborators(t *testing.T) {
	bob := &entity.User{Username: "bob", Email: "bob@x.com"}
	bob.ID = 2
	alice := &entity.User{Username: "alice", Email: "alice@x.com", CollaboratorIDs: pq.Int64Array{2}}
	alice.ID = 1

	svc := NewUserService(&stubUserRepo{users: map[int64]*entity.User{1: alice, 2: bob}})

	result, appErr := svc.GetCollaborators(context.Background(), 1)
	require.Nil(t, appErr)
	require.Len(t, result, 1)
	assert.Equal(t, "bob", result[0].Username)
}

func TestSearchPassesPagination(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewUserService(repo)

	result, appErr := svc.Search(context.Background(), 1, &params.QueryParams{PageNumber: 3, PageSize: 10, Search: "ali"})
	require.Nil(t, appErr)
	assert.NotNil(t, result)
	assert.Equal(t, 10, repo.searchLimit)
	assert.Equal(t, 20, repo.searchOffset)
}

func TestSearchEmptyQuerySkipsRepo(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewUserService(repo)

	result, appErr := svc.Search(context.Background(), 1, &params.QueryParams{PageNumber: 1, PageSize: 20, Search: "   "})
	require.Nil(t, appErr)
	assert.Empty(t, result)
	assert.Zero(t, repo.searchLimit)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := NewUserService(&stubUserRepo{users: map[int64]*entity.User{}})

	_, appErr := svc.GetProfile(context.Background(), 99)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
