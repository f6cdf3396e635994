package repos

import (
	"database/sql"
	"errors"

	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TradeRepo struct{ db *sqlx.DB }

func NewTradeRepo(db *sqlx.DB) *TradeRepo { return &TradeRepo{db: db} }

const tradeCols = `
  id, offer_id, borrower_id, lender_id, status,
  agreed_price, security_deposit,
  COALESCE(start_date,'') AS start_date,
  COALESCE(end_date,'') AS end_date,
  COALESCE(actual_return_date,'') AS actual_return_date,
  late_fee,
  COALESCE(borrower_notes,'') AS borrower_notes,
  COALESCE(lender_notes,'') AS lender_notes,
  COALESCE(pickup_code,'') AS pickup_code,
  COALESCE(return_code,'') AS return_code,
  borrower_rating, lender_rating,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *TradeRepo) Create(t *domain.Trade) error {
	if t.CreatedAt == "" {
		t.CreatedAt = now()
	}
	_, err := r.db.Exec(`
		INSERT INTO trades(id,offer_id,borrower_id,lender_id,status,
		  agreed_price,security_deposit,start_date,end_date,late_fee,
		  borrower_notes,lender_notes,pickup_code,return_code,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, t.ID, t.OfferID, t.BorrowerID, t.LenderID, t.Status,
		t.AgreedPrice, t.SecurityDeposit, nullable(t.StartDate), nullable(t.EndDate), t.LateFee,
		nullable(t.BorrowerNotes), nullable(t.LenderNotes), nullable(t.PickupCode), nullable(t.ReturnCode), t.CreatedAt)
	return err
}

func (r *TradeRepo) Get(id string) (*domain.Trade, error) {
	var t domain.Trade
	err := r.db.Get(&t, `SELECT `+tradeCols+` FROM trades WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListInvolving returns trades where the user is borrower or lender,
// newest first.
func (r *TradeRepo) ListInvolving(userID string) ([]domain.Trade, error) {
	var out []domain.Trade
	err := r.db.Select(&out, `
		SELECT `+tradeCols+` FROM trades
		WHERE borrower_id = ? OR lender_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID, userID)
	return out, err
}

func (r *TradeRepo) Update(t *domain.Trade) error {
	t.UpdatedAt = now()
	res, err := r.db.Exec(`
		UPDATE trades SET status = ?,
		  agreed_price = ?, security_deposit = ?, start_date = ?, end_date = ?,
		  actual_return_date = ?, late_fee = ?,
		  borrower_notes = ?, lender_notes = ?, pickup_code = ?, return_code = ?,
		  borrower_rating = ?, lender_rating = ?, updated_at = ?
		WHERE id = ?
	`, t.Status,
		t.AgreedPrice, t.SecurityDeposit, nullable(t.StartDate), nullable(t.EndDate),
		nullable(t.ActualReturnDate), t.LateFee,
		nullable(t.BorrowerNotes), nullable(t.LenderNotes), nullable(t.PickupCode), nullable(t.ReturnCode),
		t.BorrowerRating, t.LenderRating, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TradeRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
