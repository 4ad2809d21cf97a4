package users

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, id int64) (*domain.User, error)
	UpdateMe(ctx context.Context, id int64, input UpdateInput) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateInput carries the fields of a partial profile update; nil means unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

type UserService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
	cost   int
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.create(ctx, input, false)
}

func (s *UserService) create(ctx context.Context, input RegisterInput, staff bool) (*domain.User, error) {
	if err := domain.ValidateCredentials(input.Username, input.Email, input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsStaff:      staff,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(*user)
}

func (s *UserService) Me(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateMe rehashes the password when a new one is supplied. is_staff is never
// changed here.
func (s *UserService) UpdateMe(ctx context.Context, id int64, input UpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	verr := domain.ValidateProfile(user.Username, user.Email)
	if input.Password != nil {
		verr = domain.ValidateCredentials(user.Username, user.Email, *input.Password)
	}
	if verr != nil {
		return nil, verr
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates a staff account with the given credentials unless the
// username is already taken.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if _, err := s.create(ctx, RegisterInput{Username: username, Password: password}, true); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("created staff user %q", username)
	return nil
}

var _ UserUseCase = (*UserService)(nil)
