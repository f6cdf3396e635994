package repos

import (
	"database/sql"
	"errors"

	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RequestRepo struct{ db *sqlx.DB }

func NewRequestRepo(db *sqlx.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestCols = `
  id, user_id, stuff_type,
  COALESCE(title,'') AS title, description,
  COALESCE(subject,'') AS subject, COALESCE(class_year,'') AS class_year,
  urgency_level, COALESCE(needed_by_date,'') AS needed_by_date, rental_duration_days,
  max_price, max_rental_per_day,
  COALESCE(target_school_college_id,'') AS target_school_college_id,
  latitude, longitude, search_radius_km,
  status, COALESCE(expires_at,'') AS expires_at,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *RequestRepo) Create(q *domain.Request) error {
	if q.CreatedAt == "" {
		q.CreatedAt = now()
	}
	_, err := r.db.Exec(`
		INSERT INTO requests(id,user_id,stuff_type,title,description,subject,class_year,
		  urgency_level,needed_by_date,rental_duration_days,max_price,max_rental_per_day,
		  target_school_college_id,latitude,longitude,search_radius_km,status,expires_at,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, q.ID, q.UserID, q.StuffType, nullable(q.Title), q.Description, nullable(q.Subject), nullable(q.ClassYear),
		q.UrgencyLevel, nullable(q.NeededByDate), q.RentalDurationDays, q.MaxPrice, q.MaxRentalPerDay,
		nullable(q.TargetSchoolCollegeID), q.Latitude, q.Longitude, q.SearchRadiusKM, q.Status,
		nullable(q.ExpiresAt), q.CreatedAt)
	return err
}

func (r *RequestRepo) Get(id string) (*domain.Request, error) {
	var q domain.Request
	err := r.db.Get(&q, `SELECT `+requestCols+` FROM requests WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *RequestRepo) ListByUser(userID string) ([]domain.Request, error) {
	var out []domain.Request
	err := r.db.Select(&out, `
		SELECT `+requestCols+` FROM requests WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	return out, err
}

// ListOpen returns open requests, optionally narrowed to one stuff type.
func (r *RequestRepo) ListOpen(stuffType string) ([]domain.Request, error) {
	q := `SELECT ` + requestCols + ` FROM requests WHERE status = 'OPEN'`
	args := []any{}
	if stuffType != "" {
		q += ` AND stuff_type = ?`
		args = append(args, stuffType)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	var out []domain.Request
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *RequestRepo) Update(q *domain.Request) error {
	q.UpdatedAt = now()
	res, err := r.db.Exec(`
		UPDATE requests SET stuff_type = ?, title = ?, description = ?, subject = ?, class_year = ?,
		  urgency_level = ?, needed_by_date = ?, rental_duration_days = ?,
		  max_price = ?, max_rental_per_day = ?,
		  target_school_college_id = ?, latitude = ?, longitude = ?, search_radius_km = ?,
		  status = ?, expires_at = ?, updated_at = ?
		WHERE id = ?
	`, q.StuffType, nullable(q.Title), q.Description, nullable(q.Subject), nullable(q.ClassYear),
		q.UrgencyLevel, nullable(q.NeededByDate), q.RentalDurationDays,
		q.MaxPrice, q.MaxRentalPerDay,
		nullable(q.TargetSchoolCollegeID), q.Latitude, q.Longitude, q.SearchRadiusKM,
		q.Status, nullable(q.ExpiresAt), q.UpdatedAt, q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RequestRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
