package repos

import (
	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

const notifCols = `id, user_id, type, title, body, COALESCE(data_json,'') AS data_json, is_read, created_at`

func (r *NotificationRepo) Create(n *domain.Notification) error {
	if n.CreatedAt == "" {
		n.CreatedAt = now()
	}
	_, err := r.db.Exec(`
		INSERT INTO notifications(id,user_id,type,title,body,data_json,is_read,created_at)
		VALUES(?,?,?,?,?,?,?,?)
	`, n.ID, n.UserID, n.Type, n.Title, n.Body, nullable(n.DataJSON), boolInt(n.IsRead), n.CreatedAt)
	return err
}

// List returns the user's notifications newest first. unreadOnly narrows to
// is_read = 0; limit <= 0 means no cap.
func (r *NotificationRepo) List(userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	q := `SELECT ` + notifCols + ` FROM notifications WHERE user_id = ?`
	args := []any{userID}
	if unreadOnly {
		q += ` AND is_read = 0`
	}
	q += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	var out []domain.Notification
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *NotificationRepo) UnreadCount(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID)
	return n, err
}

// MarkSet marks the given notifications read, scoped to the owner so one
// user cannot touch another's rows.
func (r *NotificationRepo) MarkSet(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q, args, err := sqlx.In(`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.db.Exec(r.db.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *NotificationRepo) MarkAllRead(userID string) (int64, error) {
	res, err := r.db.Exec(`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
