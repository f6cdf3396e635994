package repos

import (
	"database/sql"
	"errors"

	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `
  id, reviewer_id, target_user_id,
  COALESCE(stuff_id,'') AS stuff_id,
  COALESCE(trade_id,'') AS trade_id,
  rating, COALESCE(title,'') AS title, message, type, created_at`

func (r *ReviewRepo) Create(v *domain.Review) error {
	if v.CreatedAt == "" {
		v.CreatedAt = now()
	}
	_, err := r.db.Exec(`
		INSERT INTO reviews(id,reviewer_id,target_user_id,stuff_id,trade_id,rating,title,message,type,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`, v.ID, v.ReviewerID, v.TargetUserID, nullable(v.StuffID), nullable(v.TradeID),
		v.Rating, nullable(v.Title), v.Message, v.Type, v.CreatedAt)
	return err
}

func (r *ReviewRepo) Get(id string) (*domain.Review, error) {
	var v domain.Review
	err := r.db.Get(&v, `SELECT `+reviewCols+` FROM reviews WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ReviewRepo) ListByStuff(stuffID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
		SELECT `+reviewCols+` FROM reviews WHERE stuff_id = ?
		ORDER BY created_at DESC, id DESC
	`, stuffID)
	return out, err
}

func (r *ReviewRepo) ListByTargetUser(userID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
		SELECT `+reviewCols+` FROM reviews WHERE target_user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	return out, err
}

// Update lets the original reviewer change rating, title and message.
func (r *ReviewRepo) Update(reviewerID string, v *domain.Review) error {
	cur, err := r.Get(v.ID)
	if err != nil {
		return err
	}
	if cur.ReviewerID != reviewerID {
		return domain.ErrNotAuthorized
	}
	_, err = r.db.Exec(`
		UPDATE reviews SET rating = ?, title = ?, message = ? WHERE id = ?
	`, v.Rating, nullable(v.Title), v.Message, v.ID)
	return err
}

func (r *ReviewRepo) Delete(reviewerID, id string) error {
	cur, err := r.Get(id)
	if err != nil {
		return err
	}
	if cur.ReviewerID != reviewerID {
		return domain.ErrNotAuthorized
	}
	_, err = r.db.Exec(`DELETE FROM reviews WHERE id = ?`, id)
	return err
}

// AverageForUser returns the mean rating received and the sample size.
func (r *ReviewRepo) AverageForUser(userID string) (float64, int, error) {
	var row struct {
		Avg float64 `db:"avg"`
		N   int     `db:"n"`
	}
	err := r.db.Get(&row, `
		SELECT COALESCE(AVG(rating),0) AS avg, COUNT(*) AS n
		FROM reviews WHERE target_user_id = ?
	`, userID)
	return row.Avg, row.N, err
}
