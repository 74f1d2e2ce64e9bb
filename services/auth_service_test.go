package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andyrosty/diet-fitness/models"
	"github.com/andyrosty/diet-fitness/utils"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestAuthService(repo *MockUserRepository) AuthService {
	tokens := NewTokenService(testSecret, 30*time.Minute)
	return NewAuthService(repo, tokens)
}

func TestAuthService_Signup(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := newTestAuthService(repo)
	user, err := svc.Signup(context.Background(), "alice", "a@x.com", "pw1")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("pw1", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestAuthService_SignupDuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Signup(context.Background(), "alice", "other@x.com", "pw1")

	assert.ErrorIs(t, err, ErrUsernameTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "bob").Return(nil, nil)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(&models.User{ID: 1, Email: "a@x.com"}, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Signup(context.Background(), "bob", "a@x.com", "pw1")

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("pw1")
	assert.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(&models.User{
		ID: 1, Username: "alice", PasswordHash: hash, IsActive: true,
	}, nil)

	tokens := NewTokenService(testSecret, 30*time.Minute)
	svc := NewAuthService(repo, tokens)

	token, err := svc.Login(context.Background(), "alice", "pw1")
	assert.NoError(t, err)

	subject, ok := tokens.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("pw1")
	assert.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(&models.User{
		ID: 1, Username: "alice", PasswordHash: hash, IsActive: true,
	}, nil)

	svc := newTestAuthService(repo)
	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Login(context.Background(), "ghost", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginInactiveUser(t *testing.T) {
	hash, err := utils.HashPassword("pw1")
	assert.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(&models.User{
		ID: 1, Username: "alice", PasswordHash: hash, IsActive: false,
	}, nil)

	svc := newTestAuthService(repo)
	_, err = svc.Login(context.Background(), "alice", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
