package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type PGUserRepository struct {
	pgBase
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{pgBase{db: db}}
}

const userSelect = `SELECT id, username, email, password_hash, is_staff, created_at FROM users`

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.q(ctx).QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, is_staff)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.Username, user.Email, user.PasswordHash, user.IsStaff).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapWriteErr("create user", err)
	}
	return nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "get user", userSelect+` WHERE id=$1`, id)
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "get user by username", userSelect+` WHERE username=$1`, username)
}

func (r *PGUserRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.q(ctx).QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		return nil, mapReadErr(op, err)
	}
	return &u, nil
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE users SET username=$1, email=$2, password_hash=$3, is_staff=$4
		WHERE id=$5
	`, user.Username, user.Email, user.PasswordHash, user.IsStaff, user.ID)
	if err != nil {
		return mapWriteErr("update user", err)
	}
	return expectAffected(tag)
}

var _ UserRepository = (*PGUserRepository)(nil)
