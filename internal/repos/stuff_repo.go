package repos

import (
	"database/sql"

	"vidyarth/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type StuffRepo struct{ db *sqlx.DB }

func NewStuffRepo(db *sqlx.DB) *StuffRepo { return &StuffRepo{db: db} }

// stuffRow is the flat table shape; variant columns are nullable and get
// folded back into the typed sub-structs on read.
type stuffRow struct {
	ID            string  `db:"id"`
	OwnerID       string  `db:"owner_id"`
	Type          string  `db:"type"`
	Title         string  `db:"title"`
	Subtitle      string  `db:"subtitle"`
	Description   string  `db:"description"`
	Condition     string  `db:"condition"`
	OriginalPrice float64 `db:"original_price"`
	Quantity      int     `db:"quantity"`

	Author          *string `db:"author"`
	Publisher       *string `db:"publisher"`
	Edition         *string `db:"edition"`
	ISBN            *string `db:"isbn"`
	PublicationYear *int    `db:"publication_year"`
	BookType        *string `db:"book_type"`

	Brand          *string `db:"brand"`
	Model          *string `db:"model"`
	StationeryType *string `db:"stationery_type"`

	Language         string `db:"language"`
	Subject          string `db:"subject"`
	Genre            string `db:"genre"`
	ClassSuitability string `db:"class_suitability"`

	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

const stuffCols = `
  id, owner_id, type, title,
  COALESCE(subtitle,'') AS subtitle,
  COALESCE(description,'') AS description,
  condition, original_price, quantity,
  author, publisher, edition, isbn, publication_year, book_type,
  brand, model, stationery_type,
  COALESCE(language,'') AS language,
  COALESCE(subject,'') AS subject,
  COALESCE(genre,'') AS genre,
  COALESCE(class_suitability,'') AS class_suitability,
  created_at, COALESCE(updated_at,'') AS updated_at`

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (row *stuffRow) toDomain() *domain.Stuff {
	s := &domain.Stuff{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		Type:             row.Type,
		Title:            row.Title,
		Subtitle:         row.Subtitle,
		Description:      row.Description,
		Condition:        row.Condition,
		OriginalPrice:    row.OriginalPrice,
		Quantity:         row.Quantity,
		Language:         row.Language,
		Subject:          row.Subject,
		Genre:            row.Genre,
		ClassSuitability: row.ClassSuitability,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	if row.Type == domain.StuffBook && row.Author != nil {
		year := 0
		if row.PublicationYear != nil {
			year = *row.PublicationYear
		}
		s.Book = &domain.BookDetails{
			Author:          *row.Author,
			Publisher:       str(row.Publisher),
			Edition:         str(row.Edition),
			ISBN:            str(row.ISBN),
			PublicationYear: year,
			BookType:        str(row.BookType),
		}
	}
	if row.Type == domain.StuffStationery && (row.Brand != nil || row.Model != nil || row.StationeryType != nil) {
		s.Stationery = &domain.StationeryDetails{
			Brand:          str(row.Brand),
			Model:          str(row.Model),
			StationeryType: str(row.StationeryType),
		}
	}
	return s
}

// variantArgs flattens the category variant into the nullable columns.
// Only the variant matching the item type is written; the other stays NULL.
func variantArgs(s *domain.Stuff) (author, publisher, edition, isbn any, year any, bookType any, brand, model, statType any) {
	if s.Type == domain.StuffBook && s.Book != nil {
		author = s.Book.Author
		publisher = nullable(s.Book.Publisher)
		edition = nullable(s.Book.Edition)
		isbn = nullable(s.Book.ISBN)
		if s.Book.PublicationYear != 0 {
			year = s.Book.PublicationYear
		}
		bookType = nullable(s.Book.BookType)
	}
	if s.Type == domain.StuffStationery && s.Stationery != nil {
		brand = nullable(s.Stationery.Brand)
		model = nullable(s.Stationery.Model)
		statType = nullable(s.Stationery.StationeryType)
	}
	return
}

// CreateWithOffer inserts the item, its images, its tag links and the offer
// as one transaction. Any failure rolls the whole group back.
func (r *StuffRepo) CreateWithOffer(s *domain.Stuff, o *domain.Offer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	author, publisher, edition, isbn, year, bookType, brand, model, statType := variantArgs(s)
	if _, err := tx.Exec(`
		INSERT INTO stuffs(id,owner_id,type,title,subtitle,description,condition,original_price,quantity,
		  author,publisher,edition,isbn,publication_year,book_type,
		  brand,model,stationery_type,
		  language,subject,genre,class_suitability,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, s.ID, s.OwnerID, s.Type, s.Title, nullable(s.Subtitle), nullable(s.Description), s.Condition,
		s.OriginalPrice, s.Quantity,
		author, publisher, edition, isbn, year, bookType,
		brand, model, statType,
		s.Language, nullable(s.Subject), nullable(s.Genre), nullable(s.ClassSuitability), ts); err != nil {
		return err
	}
	s.CreatedAt = ts

	if err := insertImages(tx, s); err != nil {
		return err
	}
	if err := linkTags(tx, s.ID, s.Tags); err != nil {
		return err
	}
	if err := insertOffer(tx, o, ts); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateWithOffer rewrites the item in place, replaces the image and tag
// link sets wholesale, and updates the offer by primary key. The caller must
// own the item.
func (r *StuffRepo) UpdateWithOffer(callerID string, s *domain.Stuff, o *domain.Offer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var ownerID string
	if err := tx.Get(&ownerID, `SELECT owner_id FROM stuffs WHERE id=?`, s.ID); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	if ownerID != callerID {
		return domain.ErrNotAuthorized
	}

	var offerStuffID string
	if err := tx.Get(&offerStuffID, `SELECT stuff_id FROM offers WHERE id=?`, o.ID); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	if offerStuffID != s.ID {
		return domain.ErrNotAuthorized
	}

	ts := now()
	author, publisher, edition, isbn, year, bookType, brand, model, statType := variantArgs(s)
	if _, err := tx.Exec(`
		UPDATE stuffs SET
		  type=?, title=?, subtitle=?, description=?, condition=?, original_price=?, quantity=?,
		  author=?, publisher=?, edition=?, isbn=?, publication_year=?, book_type=?,
		  brand=?, model=?, stationery_type=?,
		  language=?, subject=?, genre=?, class_suitability=?, updated_at=?
		WHERE id=?
	`, s.Type, s.Title, nullable(s.Subtitle), nullable(s.Description), s.Condition, s.OriginalPrice, s.Quantity,
		author, publisher, edition, isbn, year, bookType,
		brand, model, statType,
		s.Language, nullable(s.Subject), nullable(s.Genre), nullable(s.ClassSuitability), ts, s.ID); err != nil {
		return err
	}

	// Replace rather than diff: image/tag-link identifiers are not stable
	// across an update.
	if _, err := tx.Exec(`DELETE FROM stuff_images WHERE stuff_id=?`, s.ID); err != nil {
		return err
	}
	if err := insertImages(tx, s); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM stuff_tags WHERE stuff_id=?`, s.ID); err != nil {
		return err
	}
	if err := linkTags(tx, s.ID, s.Tags); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE offers SET
		  offer_type=?, price=?, rental_price_per_day=?, rental_period_days=?, security_deposit=?,
		  exchange_item_description=?, exchange_item_value=?,
		  availability_start=?, availability_end=?, quantity_available=?,
		  pickup_address=?, latitude=?, longitude=?, city=?, state=?, pincode=?,
		  visibility_scope=?, terms_conditions=?, special_instructions=?, updated_at=?
		WHERE id=?
	`, o.OfferType, o.Price, o.RentalPricePerDay, o.RentalPeriodDays, o.SecurityDeposit,
		nullable(o.ExchangeItemDescription), o.ExchangeItemValue,
		nullable(o.AvailabilityStart), nullable(o.AvailabilityEnd), o.QuantityAvailable,
		nullable(o.PickupAddress), o.Latitude, o.Longitude, nullable(o.City), nullable(o.State), nullable(o.Pincode),
		o.VisibilityScope, nullable(o.TermsConditions), nullable(o.SpecialInstructions), ts, o.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteCascade removes the item's offers, images, tag links, favorites and
// reviews, then the item row, all-or-nothing. Shared tag rows survive.
func (r *StuffRepo) DeleteCascade(callerID, stuffID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var ownerID string
	if err := tx.Get(&ownerID, `SELECT owner_id FROM stuffs WHERE id=?`, stuffID); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	if ownerID != callerID {
		return domain.ErrNotAuthorized
	}

	for _, q := range []string{
		`DELETE FROM offers WHERE stuff_id=?`,
		`DELETE FROM stuff_images WHERE stuff_id=?`,
		`DELETE FROM stuff_tags WHERE stuff_id=?`,
		`DELETE FROM stuff_favorites WHERE stuff_id=?`,
		`DELETE FROM reviews WHERE stuff_id=?`,
		`DELETE FROM stuffs WHERE id=?`,
	} {
		if _, err := tx.Exec(q, stuffID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *StuffRepo) Get(stuffID string) (*domain.Stuff, error) {
	var row stuffRow
	if err := r.db.Get(&row, `SELECT `+stuffCols+` FROM stuffs WHERE id=?`, stuffID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s := row.toDomain()

	if err := r.db.Select(&s.Images, `
		SELECT url FROM stuff_images WHERE stuff_id=? ORDER BY position`, stuffID); err != nil {
		return nil, err
	}
	if err := r.db.Select(&s.Tags, `
		SELECT t.name FROM stuff_tags st JOIN tags t ON t.id=st.tag_id
		WHERE st.stuff_id=? ORDER BY t.name`, stuffID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StuffRepo) ListByOwner(ownerID string) ([]*domain.Stuff, error) {
	var rows []stuffRow
	if err := r.db.Select(&rows, `
		SELECT `+stuffCols+` FROM stuffs WHERE owner_id=? ORDER BY created_at DESC`, ownerID); err != nil {
		return nil, err
	}
	out := make([]*domain.Stuff, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// TagCount reports how many tag rows exist for a normalized name; used by
// tests and admin tooling.
func (r *StuffRepo) TagCount(name string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM tags WHERE name=?`, name)
	return n, err
}

func insertImages(tx *sqlx.Tx, s *domain.Stuff) error {
	for i, url := range s.Images {
		alt := s.Title
		if _, err := tx.Exec(`
			INSERT INTO stuff_images(id,stuff_id,url,alt_text,is_primary,position)
			VALUES(?,?,?,?,?,?)
		`, uuid.NewString(), s.ID, url, alt, boolInt(i == 0), i); err != nil {
			return err
		}
	}
	return nil
}

// linkTags find-or-creates each normalized tag and links it to the item.
// Names must already be normalized by the service layer.
func linkTags(tx *sqlx.Tx, stuffID string, tags []string) error {
	for _, name := range tags {
		if name == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO tags(id,name) VALUES(?,?)
			ON CONFLICT(name) DO NOTHING
		`, uuid.NewString(), name); err != nil {
			return err
		}
		var tagID string
		if err := tx.Get(&tagID, `SELECT id FROM tags WHERE name=?`, name); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO stuff_tags(stuff_id,tag_id) VALUES(?,?)
			ON CONFLICT(stuff_id,tag_id) DO NOTHING
		`, stuffID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
