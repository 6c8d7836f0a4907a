package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwisatya/go-auth-service/internal/domain/entity"
	"github.com/dwisatya/go-auth-service/internal/domain/repository"
)

// uniqueViolation is the Postgres error code raised by the unique email index.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, is_verified, created_at, updated_at
	`, u.Name, u.Email, u.Password)

	if err := row.Scan(&u.ID, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	var verifyOTP, resetOTP *string

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, is_verified,
		       verify_otp, verify_otp_expires_at,
		       reset_otp, reset_otp_expires_at,
		       created_at, updated_at
		FROM users
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsVerified,
		&verifyOTP, &u.VerifyOTPExpiresAt,
		&resetOTP, &u.ResetOTPExpiresAt,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if verifyOTP != nil {
		u.VerifyOTP = *verifyOTP
	}
	if resetOTP != nil {
		u.ResetOTP = *resetOTP
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, is_verified = $4,
		    verify_otp = NULLIF($5, ''), verify_otp_expires_at = $6,
		    reset_otp = NULLIF($7, ''), reset_otp_expires_at = $8,
		    updated_at = $9
		WHERE id = $10
	`, u.Name, u.Email, u.Password, u.IsVerified,
		u.VerifyOTP, u.VerifyOTPExpiresAt,
		u.ResetOTP, u.ResetOTPExpiresAt,
		u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
