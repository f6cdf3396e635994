package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/services"
)

// testDB opens a fresh in-memory database with schema and demo seeds
// (u-asha, u-ravi, u-admin).
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func addUser(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()
	if _, err := db.Exec(`
		INSERT INTO users(id,email,username,password_hash,role)
		VALUES(?,?,?,'x','USER')`, id, id+"@vidyarth.test", id); err != nil {
		t.Fatalf("add user %s: %v", id, err)
	}
}

func fp(v float64) *float64 { return &v }

// mkListing creates a SELL book listing through the service and returns it.
func mkListing(t *testing.T, db *sqlx.DB, ownerID, title string) (*domain.Stuff, *domain.Offer) {
	t.Helper()
	svc := services.NewListingService(repos.NewStuffRepo(db), repos.NewOfferRepo(db))
	st, of, err := svc.Create(ownerID, services.ListingInput{
		Stuff: domain.Stuff{
			Type:          domain.StuffBook,
			Title:         title,
			Condition:     domain.CondGood,
			OriginalPrice: 500,
			Book:          &domain.BookDetails{Author: "R. K. Narayan"},
			Images:        []string{"https://img.vidyarth.test/" + title + "/1.jpg"},
			Tags:          []string{"fiction"},
		},
		Offer: domain.Offer{
			OfferType: domain.OfferSell,
			Price:     fp(250),
		},
	})
	if err != nil {
		t.Fatalf("mkListing %s: %v", title, err)
	}
	return st, of
}

// putMessage writes a message row with a controlled timestamp so ordering
// assertions are deterministic.
func putMessage(t *testing.T, db *sqlx.DB, id, sender, receiver, offerID, text, sentAt string, read bool) {
	t.Helper()
	isRead := 0
	if read {
		isRead = 1
	}
	var offer any
	if offerID != "" {
		offer = offerID
	}
	if _, err := db.Exec(`
		INSERT INTO messages(id,sender_id,receiver_id,offer_id,subject,text,is_read,sent_at)
		VALUES(?,?,?,?,NULL,?,?,?)`, id, sender, receiver, offer, text, isRead, sentAt); err != nil {
		t.Fatalf("put message %s: %v", id, err)
	}
}
