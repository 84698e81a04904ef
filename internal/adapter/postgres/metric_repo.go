package postgres

import (
	"context"
	"database/sql"
	"errors"

	"logyourbody/internal/domain"
)

var _ domain.MetricRepository = (*DB)(nil)

const metricColumns = "id, user_id, to_char(day, 'YYYY-MM-DD'), weight, weight_unit, body_fat_percentage, body_fat_method, lean_body_mass, ffmi, notes, created_at, updated_at"

// AddMetric inserts a body metric.
func (d *DB) AddMetric(ctx context.Context, m domain.MetricRecord) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO body_metrics (user_id, day, weight, weight_unit, body_fat_percentage, body_fat_method, lean_body_mass, ffmi, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id;`,
		m.UserID, string(m.Date), m.Weight, string(m.WeightUnit), nullFloat(m.BodyFatPercentage), string(m.Method),
		nullFloat(m.LeanBodyMass), nullFloat(m.FFMI), m.Notes, m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// UpdateMetric overwrites a body metric owned by m.UserID.
func (d *DB) UpdateMetric(ctx context.Context, m domain.MetricRecord) error {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE body_metrics SET day=$3, weight=$4, weight_unit=$5, body_fat_percentage=$6, body_fat_method=$7,
		 lean_body_mass=$8, ffmi=$9, notes=$10, updated_at=$11 WHERE id=$1 AND user_id=$2;`,
		m.ID, m.UserID, string(m.Date), m.Weight, string(m.WeightUnit), nullFloat(m.BodyFatPercentage), string(m.Method),
		nullFloat(m.LeanBodyMass), nullFloat(m.FFMI), m.Notes, m.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// DeleteMetric removes a body metric.
func (d *DB) DeleteMetric(ctx context.Context, userID, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM body_metrics WHERE id=$1 AND user_id=$2;", id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// GetMetric returns one body metric.
func (d *DB) GetMetric(ctx context.Context, userID, id int64) (*domain.MetricRecord, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+metricColumns+" FROM body_metrics WHERE id=$1 AND user_id=$2;", id, userID)
	m, err := scanMetric(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMetrics returns all body metrics of a user ordered by day.
func (d *DB) ListMetrics(ctx context.Context, userID int64) ([]domain.MetricRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+metricColumns+" FROM body_metrics WHERE user_id=$1 ORDER BY day, id;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MetricRecord
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMetric(s scanner) (domain.MetricRecord, error) {
	var (
		m                 domain.MetricRecord
		day, unit, method string
		bf, lbm, ffmi     sql.NullFloat64
	)
	err := s.Scan(&m.ID, &m.UserID, &day, &m.Weight, &unit, &bf, &method, &lbm, &ffmi, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	m.Date = domain.Day(day)
	m.WeightUnit = domain.WeightUnit(unit)
	m.Method = domain.BodyFatMethod(method)
	m.BodyFatPercentage = floatPtr(bf)
	m.LeanBodyMass = floatPtr(lbm)
	m.FFMI = floatPtr(ffmi)
	return m, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
