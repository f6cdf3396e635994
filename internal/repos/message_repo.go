package repos

import (
	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MessageRepo struct{ db *sqlx.DB }

func NewMessageRepo(db *sqlx.DB) *MessageRepo { return &MessageRepo{db: db} }

// MessageContextRow carries a message plus the display info the conversation
// view needs, loaded in one query.
type MessageContextRow struct {
	domain.Message

	SenderUsername    string `db:"sender_username"`
	SenderDisplayName string `db:"sender_display_name"`
	SenderAvatarURL   string `db:"sender_avatar_url"`

	ReceiverUsername    string `db:"receiver_username"`
	ReceiverDisplayName string `db:"receiver_display_name"`
	ReceiverAvatarURL   string `db:"receiver_avatar_url"`

	StuffID    string `db:"ctx_stuff_id"`
	StuffTitle string `db:"ctx_stuff_title"`
}

const messageCols = `
  m.id, m.sender_id, m.receiver_id,
  COALESCE(m.offer_id,'') AS offer_id,
  COALESCE(m.subject,'') AS subject,
  m.text,
  COALESCE(m.trade_request_status,'') AS trade_request_status,
  m.is_read, m.sent_at`

// ListInvolving returns every message where the viewer is sender or
// receiver, newest first, optionally scoped to one offer.
func (r *MessageRepo) ListInvolving(viewerID, offerID string) ([]MessageContextRow, error) {
	q := `
		SELECT ` + messageCols + `,
		  COALESCE(su.username,'') AS sender_username,
		  COALESCE(sp.display_name, sp.full_name, '') AS sender_display_name,
		  COALESCE(sp.avatar_url,'') AS sender_avatar_url,
		  COALESCE(ru.username,'') AS receiver_username,
		  COALESCE(rp.display_name, rp.full_name, '') AS receiver_display_name,
		  COALESCE(rp.avatar_url,'') AS receiver_avatar_url,
		  COALESCE(s.id,'') AS ctx_stuff_id,
		  COALESCE(s.title,'') AS ctx_stuff_title
		FROM messages m
		JOIN users su ON su.id = m.sender_id
		LEFT JOIN profiles sp ON sp.user_id = su.id
		JOIN users ru ON ru.id = m.receiver_id
		LEFT JOIN profiles rp ON rp.user_id = ru.id
		LEFT JOIN offers o ON o.id = m.offer_id
		LEFT JOIN stuffs s ON s.id = o.stuff_id
		WHERE (m.sender_id = ? OR m.receiver_id = ?)`
	args := []any{viewerID, viewerID}
	if offerID != "" {
		q += ` AND m.offer_id = ?`
		args = append(args, offerID)
	}
	q += ` ORDER BY m.sent_at DESC, m.id DESC`

	var rows []MessageContextRow
	err := r.db.Select(&rows, q, args...)
	return rows, err
}

// ListThread returns the messages of one offer's thread oldest first. When
// otherUserID is empty the viewer sees every message on the offer they are
// part of (the lister's view).
func (r *MessageRepo) ListThread(viewerID, offerID, otherUserID string) ([]domain.Message, error) {
	q := `SELECT ` + messageCols + ` FROM messages m WHERE m.offer_id = ?`
	args := []any{offerID}
	if otherUserID != "" {
		q += ` AND ((m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?))`
		args = append(args, viewerID, otherUserID, otherUserID, viewerID)
	} else {
		q += ` AND (m.sender_id = ? OR m.receiver_id = ?)`
		args = append(args, viewerID, viewerID)
	}
	q += ` ORDER BY m.sent_at ASC, m.id ASC`

	var out []domain.Message
	err := r.db.Select(&out, q, args...)
	return out, err
}

// MarkRead flips unread messages addressed to the viewer in the given scope.
// Re-marking already-read messages is a no-op.
func (r *MessageRepo) MarkRead(viewerID, offerID, otherUserID string) (int64, error) {
	q := `UPDATE messages SET is_read = 1 WHERE receiver_id = ? AND is_read = 0`
	args := []any{viewerID}
	if offerID != "" {
		q += ` AND offer_id = ?`
		args = append(args, offerID)
	}
	if otherUserID != "" {
		q += ` AND sender_id = ?`
		args = append(args, otherUserID)
	}
	res, err := r.db.Exec(q, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *MessageRepo) Insert(m *domain.Message) error {
	if m.SentAt == "" {
		m.SentAt = now()
	}
	_, err := r.db.Exec(`
		INSERT INTO messages(id,sender_id,receiver_id,offer_id,subject,text,trade_request_status,is_read,sent_at)
		VALUES(?,?,?,?,?,?,?,?,?)
	`, m.ID, m.SenderID, m.ReceiverID, nullable(m.OfferID), nullable(m.Subject), m.Text,
		nullable(m.TradeRequestStatus), boolInt(m.IsRead), m.SentAt)
	return err
}
