package postgres

import (
	"context"
	"database/sql"
	"time"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, username, password_hash, first_name, last_name,
	COALESCE(phone_number, ''), role, email_verified, COALESCE(verification_token, ''), created_on, updated_on`

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Role, &u.EmailVerified, &u.VerificationToken, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, username, password_hash, first_name, last_name, phone_number, role, email_verified, verification_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), $10, $11) RETURNING id`
	now := time.Now().UTC()
	u.CreatedOn = now
	u.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName,
		u.PhoneNumber, u.Role, u.EmailVerified, u.VerificationToken, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
	return mapErr(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE verification_token = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, username=$2, first_name=$3, last_name=$4,
	          phone_number=NULLIF($5, ''), email_verified=$6, verification_token=NULLIF($7, ''),
	          password_hash=$8, updated_on=$9 WHERE id=$10`
	u.UpdatedOn = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, u.Email, u.Username, u.FirstName, u.LastName,
		u.PhoneNumber, u.EmailVerified, u.VerificationToken, u.PasswordHash, u.UpdatedOn, u.ID)
	if err != nil {
		return mapErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete relies on the schema's referential actions: organisor, agent,
// notification and assigned-task rows cascade; assigned_by, affected_agent
// and activity-log user references are set null.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
