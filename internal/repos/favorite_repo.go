package repos

import (
	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add is idempotent: favoriting twice leaves a single row.
func (r *FavoriteRepo) Add(userID, stuffID string) error {
	var exists int
	if err := r.db.Get(&exists, `SELECT COUNT(*) FROM stuffs WHERE id = ?`, stuffID); err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrNotFound
	}
	_, err := r.db.Exec(`
		INSERT INTO stuff_favorites(user_id, stuff_id, created_at) VALUES(?,?,?)
		ON CONFLICT(user_id, stuff_id) DO NOTHING
	`, userID, stuffID, now())
	return err
}

func (r *FavoriteRepo) Remove(userID, stuffID string) error {
	res, err := r.db.Exec(`DELETE FROM stuff_favorites WHERE user_id = ? AND stuff_id = ?`, userID, stuffID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FavoriteRepo) IsFavorite(userID, stuffID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM stuff_favorites WHERE user_id = ? AND stuff_id = ?`, userID, stuffID)
	return n > 0, err
}

// ListStuffIDs returns the user's favorited stuff ids, most recent first.
func (r *FavoriteRepo) ListStuffIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `
		SELECT stuff_id FROM stuff_favorites
		WHERE user_id = ?
		ORDER BY created_at DESC, stuff_id
	`, userID)
	return ids, err
}
