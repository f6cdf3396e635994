package repos

import (
	"database/sql"

	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

type offerRow struct {
	ID      string `db:"id"`
	StuffID string `db:"stuff_id"`
	UserID  string `db:"user_id"`

	OfferType               string   `db:"offer_type"`
	Price                   *float64 `db:"price"`
	RentalPricePerDay       *float64 `db:"rental_price_per_day"`
	RentalPeriodDays        *int     `db:"rental_period_days"`
	SecurityDeposit         *float64 `db:"security_deposit"`
	ExchangeItemDescription string   `db:"exchange_item_description"`
	ExchangeItemValue       *float64 `db:"exchange_item_value"`

	AvailabilityStart string `db:"availability_start"`
	AvailabilityEnd   string `db:"availability_end"`
	QuantityAvailable int    `db:"quantity_available"`

	PickupAddress string   `db:"pickup_address"`
	Latitude      *float64 `db:"latitude"`
	Longitude     *float64 `db:"longitude"`
	City          string   `db:"city"`
	State         string   `db:"state"`
	Pincode       string   `db:"pincode"`

	VisibilityScope     string `db:"visibility_scope"`
	TermsConditions     string `db:"terms_conditions"`
	SpecialInstructions string `db:"special_instructions"`

	IsActive  bool   `db:"is_active"`
	ExpiresAt string `db:"expires_at"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

const offerCols = `
  id, stuff_id, user_id, offer_type,
  price, rental_price_per_day, rental_period_days, security_deposit,
  COALESCE(exchange_item_description,'') AS exchange_item_description,
  exchange_item_value,
  COALESCE(availability_start,'') AS availability_start,
  COALESCE(availability_end,'') AS availability_end,
  quantity_available,
  COALESCE(pickup_address,'') AS pickup_address,
  latitude, longitude,
  COALESCE(city,'') AS city,
  COALESCE(state,'') AS state,
  COALESCE(pincode,'') AS pincode,
  visibility_scope,
  COALESCE(terms_conditions,'') AS terms_conditions,
  COALESCE(special_instructions,'') AS special_instructions,
  is_active,
  COALESCE(expires_at,'') AS expires_at,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (row *offerRow) toDomain() *domain.Offer {
	return &domain.Offer{
		ID:                      row.ID,
		StuffID:                 row.StuffID,
		UserID:                  row.UserID,
		OfferType:               row.OfferType,
		Price:                   row.Price,
		RentalPricePerDay:       row.RentalPricePerDay,
		RentalPeriodDays:        row.RentalPeriodDays,
		SecurityDeposit:         row.SecurityDeposit,
		ExchangeItemDescription: row.ExchangeItemDescription,
		ExchangeItemValue:       row.ExchangeItemValue,
		AvailabilityStart:       row.AvailabilityStart,
		AvailabilityEnd:         row.AvailabilityEnd,
		QuantityAvailable:       row.QuantityAvailable,
		PickupAddress:           row.PickupAddress,
		Latitude:                row.Latitude,
		Longitude:               row.Longitude,
		City:                    row.City,
		State:                   row.State,
		Pincode:                 row.Pincode,
		VisibilityScope:         row.VisibilityScope,
		TermsConditions:         row.TermsConditions,
		SpecialInstructions:     row.SpecialInstructions,
		IsActive:                row.IsActive,
		ExpiresAt:               row.ExpiresAt,
		CreatedAt:               row.CreatedAt,
		UpdatedAt:               row.UpdatedAt,
	}
}

func (r *OfferRepo) Get(offerID string) (*domain.Offer, error) {
	var row offerRow
	if err := r.db.Get(&row, `SELECT `+offerCols+` FROM offers WHERE id=?`, offerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *OfferRepo) ListByStuff(stuffID string) ([]*domain.Offer, error) {
	var rows []offerRow
	if err := r.db.Select(&rows, `
		SELECT `+offerCols+` FROM offers WHERE stuff_id=? ORDER BY created_at DESC`, stuffID); err != nil {
		return nil, err
	}
	out := make([]*domain.Offer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// OfferParties identifies who is on the listing side of an offer.
type OfferParties struct {
	OfferUserID  string `db:"user_id"`
	StuffOwnerID string `db:"owner_id"`
	IsActive     bool   `db:"is_active"`
}

func (r *OfferRepo) Parties(offerID string) (*OfferParties, error) {
	var p OfferParties
	err := r.db.Get(&p, `
		SELECT o.user_id, s.owner_id, o.is_active
		FROM offers o JOIN stuffs s ON s.id=o.stuff_id
		WHERE o.id=?`, offerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// insertOffer runs inside the stuff transaction; ts is the shared creation
// timestamp.
func insertOffer(tx *sqlx.Tx, o *domain.Offer, ts string) error {
	_, err := tx.Exec(`
		INSERT INTO offers(id,stuff_id,user_id,offer_type,
		  price,rental_price_per_day,rental_period_days,security_deposit,
		  exchange_item_description,exchange_item_value,
		  availability_start,availability_end,quantity_available,
		  pickup_address,latitude,longitude,city,state,pincode,
		  visibility_scope,terms_conditions,special_instructions,
		  is_active,expires_at,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.StuffID, o.UserID, o.OfferType,
		o.Price, o.RentalPricePerDay, o.RentalPeriodDays, o.SecurityDeposit,
		nullable(o.ExchangeItemDescription), o.ExchangeItemValue,
		nullable(o.AvailabilityStart), nullable(o.AvailabilityEnd), o.QuantityAvailable,
		nullable(o.PickupAddress), o.Latitude, o.Longitude, nullable(o.City), nullable(o.State), nullable(o.Pincode),
		o.VisibilityScope, nullable(o.TermsConditions), nullable(o.SpecialInstructions),
		boolInt(o.IsActive), o.ExpiresAt, ts)
	if err == nil {
		o.CreatedAt = ts
	}
	return err
}
