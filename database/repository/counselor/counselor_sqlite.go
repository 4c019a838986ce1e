package counselorRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"counselbook/models"
)

// SQLiteCounselorRepo implements CounselorRepository over a sqlite database.
type SQLiteCounselorRepo struct {
	db *sql.DB
}

// NewSQLiteCounselorRepo creates a new instance of CounselorRepository using sqlite.
func NewSQLiteCounselorRepo(db *sql.DB) *SQLiteCounselorRepo {
	return &SQLiteCounselorRepo{db: db}
}

func (r *SQLiteCounselorRepo) GetAll(ctx context.Context) ([]models.Counselor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, title, specialty, bio, avatar_color, created_at
		 FROM counselors ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list counselors: %w", err)
	}
	defer rows.Close()

	counselors := []models.Counselor{}
	for rows.Next() {
		var c models.Counselor
		var bio sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Title, &c.Specialty, &bio, &c.AvatarColor, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan counselor: %w", err)
		}
		c.Bio = bio.String
		counselors = append(counselors, c)
	}
	return counselors, rows.Err()
}

func (r *SQLiteCounselorRepo) GetByID(ctx context.Context, id int64) (*models.Counselor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, title, specialty, bio, avatar_color, created_at
		 FROM counselors WHERE id = ?`, id,
	)

	var c models.Counselor
	var bio sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Title, &c.Specialty, &bio, &c.AvatarColor, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get counselor: %w", err)
	}
	c.Bio = bio.String
	return &c, nil
}
