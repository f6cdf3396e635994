package repos

import (
	"database/sql"
	"errors"

	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReminderRepo struct{ db *sqlx.DB }

func NewReminderRepo(db *sqlx.DB) *ReminderRepo { return &ReminderRepo{db: db} }

const reminderCols = `
  id, user_id, COALESCE(trade_id,'') AS trade_id,
  title, message, due_date, type, is_sent, is_dismissed, created_at`

func (r *ReminderRepo) Create(m *domain.Reminder) error {
	if m.CreatedAt == "" {
		m.CreatedAt = now()
	}
	_, err := r.db.Exec(`
		INSERT INTO reminders(id,user_id,trade_id,title,message,due_date,type,is_sent,is_dismissed,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`, m.ID, m.UserID, nullable(m.TradeID), m.Title, m.Message, m.DueDate, m.Type,
		boolInt(m.IsSent), boolInt(m.IsDismissed), m.CreatedAt)
	return err
}

func (r *ReminderRepo) Get(id string) (*domain.Reminder, error) {
	var m domain.Reminder
	err := r.db.Get(&m, `SELECT `+reminderCols+` FROM reminders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns the user's reminders ordered by due date. When
// pendingOnly is set, dismissed reminders are skipped.
func (r *ReminderRepo) ListByUser(userID string, pendingOnly bool) ([]domain.Reminder, error) {
	q := `SELECT ` + reminderCols + ` FROM reminders WHERE user_id = ?`
	if pendingOnly {
		q += ` AND is_dismissed = 0`
	}
	q += ` ORDER BY due_date ASC, id ASC`
	var out []domain.Reminder
	err := r.db.Select(&out, q, userID)
	return out, err
}

// DueBefore returns undelivered, undismissed reminders whose due date has
// passed the given cutoff, for the delivery sweep.
func (r *ReminderRepo) DueBefore(cutoff string) ([]domain.Reminder, error) {
	var out []domain.Reminder
	err := r.db.Select(&out, `
		SELECT `+reminderCols+` FROM reminders
		WHERE is_sent = 0 AND is_dismissed = 0 AND due_date <= ?
		ORDER BY due_date ASC, id ASC
	`, cutoff)
	return out, err
}

func (r *ReminderRepo) MarkSent(id string) error {
	_, err := r.db.Exec(`UPDATE reminders SET is_sent = 1 WHERE id = ?`, id)
	return err
}

func (r *ReminderRepo) Dismiss(userID, id string) error {
	res, err := r.db.Exec(`UPDATE reminders SET is_dismissed = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReminderRepo) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM reminders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
