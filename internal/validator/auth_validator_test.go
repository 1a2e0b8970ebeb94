package validator_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

type userRepoStub struct{ existing *model.User }

func (s *userRepoStub) Create(ctx context.Context, user *model.User) error { return nil }

func (s *userRepoStub) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return nil, nil
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.existing != nil && s.existing.Username == username {
		return s.existing, nil
	}
	return nil, nil
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.existing != nil && s.existing.Email == email {
		return s.existing, nil
	}
	return nil, nil
}

func (s *userRepoStub) Update(ctx context.Context, user *model.User) error { return nil }
func (s *userRepoStub) Delete(ctx context.Context, userID int64) error     { return nil }

func TestValidateRegister(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		existing *model.User
		wantCode int
		wantMsg  string
	}{
		{
			name:     "ok",
			username: "alice", email: "alice@example.com", password: "password123",
		},
		{
			name:     "missing username",
			username: "", email: "alice@example.com", password: "password123",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad email",
			username: "alice", email: "not-an-email", password: "password123",
			wantCode: http.StatusBadRequest, wantMsg: "invalid email",
		},
		{
			name:     "short password",
			username: "alice", email: "alice@example.com", password: "1234567",
			wantCode: http.StatusBadRequest, wantMsg: "password too short",
		},
		{
			name:     "duplicate username",
			username: "alice", email: "new@example.com", password: "password123",
			existing: &model.User{Username: "alice", Email: "alice@example.com"},
			wantCode: http.StatusConflict, wantMsg: "Username already exists",
		},
		{
			name:     "duplicate email",
			username: "bob", email: "alice@example.com", password: "password123",
			existing: &model.User{Username: "alice", Email: "alice@example.com"},
			wantCode: http.StatusConflict, wantMsg: "Email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.NewAuthValidator(&userRepoStub{existing: tt.existing})

			err := v.ValidateRegister(ctx, tt.username, tt.email, tt.password)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				return
			}

			he, ok := usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, he.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, he.Message)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator(&userRepoStub{})
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "alice", "password123"))

	err := v.ValidateLogin(ctx, "", "password123")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	assert.Error(t, v.ValidateLogin(ctx, "alice", ""))
}
