package repos

import (
	"vidyarth/internal/domain"

	"github.com/jmoiron/sqlx"
)

// BrowseRepo answers marketplace search queries over listings with an
// active offer.
type BrowseRepo struct {
	db     *sqlx.DB
	stuffs *StuffRepo
	offers *OfferRepo
}

func NewBrowseRepo(db *sqlx.DB) *BrowseRepo {
	return &BrowseRepo{db: db, stuffs: NewStuffRepo(db), offers: NewOfferRepo(db)}
}

// BrowseFilter narrows the search. Zero values mean "any".
type BrowseFilter struct {
	Query     string
	StuffType string
	OfferType string
	Condition string
	Tag       string
	City      string
	MinPrice  *float64
	MaxPrice  *float64
	Limit     int
}

// BrowseItem pairs a listing with the offer it is browsable under.
type BrowseItem struct {
	Stuff *domain.Stuff `json:"stuff"`
	Offer *domain.Offer `json:"offer"`
}

// Search returns active, public listings newest first. Price bounds apply
// to the sale price for SELL offers and the per-day price for RENT offers.
func (r *BrowseRepo) Search(f BrowseFilter) ([]BrowseItem, error) {
	q := `
		SELECT s.id AS stuff_id, o.id AS offer_id
		FROM stuffs s
		JOIN offers o ON o.stuff_id = s.id
		WHERE o.is_active = 1 AND o.visibility_scope = 'PUBLIC'`
	args := []any{}

	if f.Query != "" {
		like := "%" + f.Query + "%"
		q += ` AND (s.title LIKE ? OR s.subtitle LIKE ? OR s.description LIKE ? OR COALESCE(s.author,'') LIKE ?)`
		args = append(args, like, like, like, like)
	}
	if f.StuffType != "" {
		q += ` AND s.type = ?`
		args = append(args, f.StuffType)
	}
	if f.OfferType != "" {
		q += ` AND o.offer_type = ?`
		args = append(args, f.OfferType)
	}
	if f.Condition != "" {
		q += ` AND s.condition = ?`
		args = append(args, f.Condition)
	}
	if f.City != "" {
		q += ` AND o.city = ? COLLATE NOCASE`
		args = append(args, f.City)
	}
	if f.Tag != "" {
		q += ` AND EXISTS (
			SELECT 1 FROM stuff_tags st JOIN tags t ON t.id = st.tag_id
			WHERE st.stuff_id = s.id AND t.name = ?)`
		args = append(args, f.Tag)
	}
	if f.MinPrice != nil {
		q += ` AND COALESCE(o.price, o.rental_price_per_day) >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q += ` AND COALESCE(o.price, o.rental_price_per_day) <= ?`
		args = append(args, *f.MaxPrice)
	}

	q += ` ORDER BY o.created_at DESC, o.id DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	var pairs []struct {
		StuffID string `db:"stuff_id"`
		OfferID string `db:"offer_id"`
	}
	if err := r.db.Select(&pairs, q, args...); err != nil {
		return nil, err
	}

	out := make([]BrowseItem, 0, len(pairs))
	for _, p := range pairs {
		s, err := r.stuffs.Get(p.StuffID)
		if err != nil {
			return nil, err
		}
		o, err := r.offers.Get(p.OfferID)
		if err != nil {
			return nil, err
		}
		out = append(out, BrowseItem{Stuff: s, Offer: o})
	}
	return out, nil
}
