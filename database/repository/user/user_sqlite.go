package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"counselbook/models"
)

// SQLiteUserRepo implements UserRepository over a sqlite database.
type SQLiteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo creates a new instance of UserRepository using sqlite.
func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, signup_ip) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.SignupIP,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	// The username column is COLLATE NOCASE, so the comparison itself is
	// case-insensitive.
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, signup_ip, created_at FROM users WHERE username = ?`,
		username,
	)

	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.SignupIP, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteUserRepo) CountBySignupIP(ctx context.Context, ip string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE signup_ip = ?`, ip,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by ip: %w", err)
	}
	return count, nil
}
