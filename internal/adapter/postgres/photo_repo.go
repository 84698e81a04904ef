package postgres

import (
	"context"

	"logyourbody/internal/domain"
)

var _ domain.PhotoRepository = (*DB)(nil)

// AddPhoto inserts a progress photo reference.
func (d *DB) AddPhoto(ctx context.Context, p domain.PhotoRecord) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO progress_photos (user_id, day, photo_url, view_type, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;",
		p.UserID, string(p.Date), p.PhotoURL, p.ViewType, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeletePhoto removes a progress photo reference.
func (d *DB) DeletePhoto(ctx context.Context, userID, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM progress_photos WHERE id=$1 AND user_id=$2;", id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// ListPhotos returns all photos of a user ordered by day.
func (d *DB) ListPhotos(ctx context.Context, userID int64) ([]domain.PhotoRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, to_char(day, 'YYYY-MM-DD'), photo_url, view_type, created_at, updated_at FROM progress_photos WHERE user_id=$1 ORDER BY day, id;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PhotoRecord
	for rows.Next() {
		var (
			p   domain.PhotoRecord
			day string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &day, &p.PhotoURL, &p.ViewType, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Date = domain.Day(day)
		out = append(out, p)
	}
	return out, rows.Err()
}
