package users

import (
	"context"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func newTestService(repo *MockUserRepository, tokens *MockTokenIssuer) *UserService {
	s := NewUserService(repo, tokens)
	s.cost = bcrypt.MinCost
	return s
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestUserService_Register(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" && !u.IsStaff &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil).Once()

	user, err := service.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	repo.AssertExpectations(t)
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, nil)

	_, err := service.Register(context.Background(), RegisterInput{Username: "alice", Password: "123"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	repo := &MockUserRepository{}
	tokens := &MockTokenIssuer{}
	service := newTestService(repo, tokens)
	ctx := context.Background()
	user := &domain.User{ID: 1, Username: "alice", PasswordHash: hashed(t, "secret1")}

	repo.On("GetByUsername", ctx, "alice").Return(user, nil).Twice()
	tokens.On("Issue", *user).Return("token", nil).Once()

	token, err := service.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token", token)

	_, err = service.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUser(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, &MockTokenIssuer{})
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

	_, err := service.Login(ctx, "ghost", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_UpdateMe_RehashesPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, nil)
	ctx := context.Background()
	oldHash := hashed(t, "secret1")
	password := "newsecret"
	email := "new@example.com"

	repo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Username: "alice", PasswordHash: oldHash, IsStaff: true}, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil).Once()

	user, err := service.UpdateMe(ctx, 1, UpdateInput{Email: &email, Password: &password})

	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.True(t, user.IsStaff)
	assert.NotEqual(t, oldHash, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
}

func TestUserService_UpdateMe_KeepsPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, nil)
	ctx := context.Background()
	oldHash := hashed(t, "secret1")
	name := "alice2"

	repo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Username: "alice", PasswordHash: oldHash}, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil).Once()

	user, err := service.UpdateMe(ctx, 1, UpdateInput{Username: &name})

	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, oldHash, user.PasswordHash)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, nil)
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "admin").Return(nil, domain.ErrNotFound).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "admin" && u.IsStaff
	})).Return(nil).Once()

	require.NoError(t, service.EnsureAdmin(ctx, "admin", "admin12345"))
	repo.AssertExpectations(t)
}

func TestUserService_EnsureAdmin_Exists(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestService(repo, nil)
	ctx := context.Background()

	repo.On("GetByUsername", ctx, "admin").Return(&domain.User{ID: 1}, nil).Once()

	require.NoError(t, service.EnsureAdmin(ctx, "admin", "admin12345"))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
