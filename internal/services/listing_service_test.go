package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/services"
)

func newListingSvc(db *sqlx.DB) *services.ListingService {
	return services.NewListingService(repos.NewStuffRepo(db), repos.NewOfferRepo(db))
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}
	return ve.Field
}

func TestCreateListingPersistsEverythingTogether(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)

	st, of, err := svc.Create("u-asha", services.ListingInput{
		Stuff: domain.Stuff{
			Type:          domain.StuffBook,
			Title:         "Linear Algebra Done Right",
			Condition:     domain.CondLikeNew,
			OriginalPrice: 900,
			Book:          &domain.BookDetails{Author: "Sheldon Axler", BookType: "TEXTBOOK"},
			Images:        []string{"https://img/1.jpg", "https://img/2.jpg"},
			Tags:          []string{" Math ", "ALGEBRA", "math"},
		},
		Offer: domain.Offer{OfferType: domain.OfferSell, Price: fp(450)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if st.OwnerID != "u-asha" || of.UserID != "u-asha" || of.StuffID != st.ID {
		t.Fatalf("ownership wiring wrong: stuff=%+v offer=%+v", st, of)
	}
	if !of.IsActive {
		t.Error("fresh offer must be active")
	}

	// Tags come back normalized and deduplicated.
	if len(st.Tags) != 2 {
		t.Fatalf("tags = %v", st.Tags)
	}
	for _, tag := range st.Tags {
		if tag != "math" && tag != "algebra" {
			t.Errorf("unexpected tag %q", tag)
		}
	}

	// First image is primary.
	var primary string
	if err := db.Get(&primary, `SELECT url FROM stuff_images WHERE stuff_id=? AND is_primary=1`, st.ID); err != nil {
		t.Fatal(err)
	}
	if primary != "https://img/1.jpg" {
		t.Errorf("primary image = %s", primary)
	}

	// Expiry lands about 30 days out.
	exp, err := time.Parse("2006-01-02 15:04:05.000000000", of.ExpiresAt)
	if err != nil {
		t.Fatalf("bad expires_at %q: %v", of.ExpiresAt, err)
	}
	days := time.Until(exp).Hours() / 24
	if days < 29 || days > 31 {
		t.Errorf("expiry %.1f days out", days)
	}

	// Defaults applied.
	if st.Quantity != 1 || st.Language != "English" {
		t.Errorf("defaults not applied: %+v", st)
	}
	if of.VisibilityScope != domain.VisibilityPublic {
		t.Errorf("visibility = %s", of.VisibilityScope)
	}
}

func TestCreateListingValidationMatrix(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)

	base := func() services.ListingInput {
		return services.ListingInput{
			Stuff: domain.Stuff{
				Type: domain.StuffBook, Title: "T", Condition: domain.CondGood,
				Book: &domain.BookDetails{Author: "A"},
			},
			Offer: domain.Offer{OfferType: domain.OfferSell, Price: fp(100)},
		}
	}

	cases := []struct {
		name   string
		mutate func(*services.ListingInput)
		field  string
	}{
		{"book without author", func(in *services.ListingInput) { in.Stuff.Book = nil }, "author"},
		{"sell without price", func(in *services.ListingInput) { in.Offer.Price = nil }, "price"},
		{"sell with zero price", func(in *services.ListingInput) { in.Offer.Price = fp(0) }, "price"},
		{"rent without daily rate", func(in *services.ListingInput) {
			in.Offer.OfferType = domain.OfferRent
			in.Offer.Price = nil
		}, "rental_price_per_day"},
		{"exchange without description", func(in *services.ListingInput) {
			in.Offer.OfferType = domain.OfferExchange
			in.Offer.Price = nil
		}, "exchange_item_description"},
		{"unknown condition", func(in *services.ListingInput) { in.Stuff.Condition = "MINT" }, "condition"},
		{"unknown type", func(in *services.ListingInput) { in.Stuff.Type = "FURNITURE" }, "type"},
		{"missing title", func(in *services.ListingInput) { in.Stuff.Title = "  " }, "title"},
		{"negative original price", func(in *services.ListingInput) { in.Stuff.OriginalPrice = -1 }, "original_price"},
		{"bad visibility", func(in *services.ListingInput) { in.Offer.VisibilityScope = "FRIENDS" }, "visibility_scope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.mutate(&in)
			_, _, err := svc.Create("u-asha", in)
			if got := fieldOf(t, err); got != tc.field {
				t.Errorf("field = %s, want %s", got, tc.field)
			}
		})
	}

	// Failed creates leave nothing behind.
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM stuffs`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d stuff rows after failed creates", n)
	}
}

func TestOfferTypeSwitchClearsStaleFields(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)

	st, of, err := svc.Create("u-asha", services.ListingInput{
		Stuff: domain.Stuff{Type: domain.StuffNotes, Title: "Physics notes", Condition: domain.CondGood},
		Offer: domain.Offer{OfferType: domain.OfferSell, Price: fp(50)},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, updated, err := svc.Update("u-asha", st.ID, of.ID, services.ListingInput{
		Stuff: domain.Stuff{Type: domain.StuffNotes, Title: "Physics notes", Condition: domain.CondGood},
		Offer: domain.Offer{
			OfferType:         domain.OfferRent,
			Price:             fp(50), // stale, must be dropped
			RentalPricePerDay: fp(5),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Price != nil {
		t.Errorf("sale price survived type switch: %v", *updated.Price)
	}
	if updated.RentalPricePerDay == nil || *updated.RentalPricePerDay != 5 {
		t.Errorf("rental price lost: %+v", updated)
	}
}

func TestUpdateReplacesImagesAndTagsWholesale(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)
	st, of := mkListing(t, db, "u-asha", "Data Structures")

	_, _, err := svc.Update("u-asha", st.ID, of.ID, services.ListingInput{
		Stuff: domain.Stuff{
			Type: domain.StuffBook, Title: "Data Structures", Condition: domain.CondGood,
			OriginalPrice: 500,
			Book:          &domain.BookDetails{Author: "R. K. Narayan"},
			Images:        []string{"https://img/new.jpg"},
			Tags:          []string{"cs"},
		},
		Offer: domain.Offer{OfferType: domain.OfferSell, Price: fp(200)},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repos.NewStuffRepo(db).Get(st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Images) != 1 || got.Images[0] != "https://img/new.jpg" {
		t.Errorf("images = %v", got.Images)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "cs" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestUpdateRejectsNonOwnerAndForeignOffer(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)
	st, of := mkListing(t, db, "u-asha", "Calculus")
	_, otherOffer := mkListing(t, db, "u-ravi", "Mechanics")

	in := services.ListingInput{
		Stuff: domain.Stuff{
			Type: domain.StuffBook, Title: "Calculus", Condition: domain.CondGood,
			Book: &domain.BookDetails{Author: "X"},
		},
		Offer: domain.Offer{OfferType: domain.OfferSell, Price: fp(100)},
	}

	if _, _, err := svc.Update("u-ravi", st.ID, of.ID, in); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("non-owner update: got %v", err)
	}
	if _, _, err := svc.Update("u-asha", st.ID, otherOffer.ID, in); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("foreign offer update: got %v", err)
	}
	if _, _, err := svc.Update("u-asha", "missing", of.ID, in); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing stuff update: got %v", err)
	}
}

func TestTagRowsAreSharedAcrossListings(t *testing.T) {
	db := testDB(t)
	mkListing(t, db, "u-asha", "Book One")
	mkListing(t, db, "u-ravi", "Book Two")

	n, err := repos.NewStuffRepo(db).TagCount("fiction")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("tag rows = %d, want 1 shared row", n)
	}
}

func TestDeleteCascadeRemovesDependentsKeepsSharedTags(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)
	st, _ := mkListing(t, db, "u-asha", "Chemistry")
	mkListing(t, db, "u-ravi", "Biology") // shares the fiction tag

	// Dependent rows across every table the cascade covers.
	if err := repos.NewFavoriteRepo(db).Add("u-ravi", st.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`
		INSERT INTO reviews(id,reviewer_id,target_user_id,stuff_id,rating,message,type)
		VALUES('rv1','u-ravi','u-asha',?,5,'great condition','UNIVERSAL_STUFF')`, st.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete("u-ravi", st.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("non-owner delete: got %v", err)
	}
	if err := svc.Delete("u-asha", st.ID); err != nil {
		t.Fatal(err)
	}

	counts := map[string]string{
		"offers":          `SELECT COUNT(*) FROM offers WHERE stuff_id=?`,
		"stuff_images":    `SELECT COUNT(*) FROM stuff_images WHERE stuff_id=?`,
		"stuff_tags":      `SELECT COUNT(*) FROM stuff_tags WHERE stuff_id=?`,
		"stuff_favorites": `SELECT COUNT(*) FROM stuff_favorites WHERE stuff_id=?`,
		"reviews":         `SELECT COUNT(*) FROM reviews WHERE stuff_id=?`,
		"stuffs":          `SELECT COUNT(*) FROM stuffs WHERE id=?`,
	}
	for table, q := range counts {
		var n int
		if err := db.Get(&n, q, st.ID); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("%s: %d rows survived the cascade", table, n)
		}
	}

	// The shared tag row itself must survive.
	n, err := repos.NewStuffRepo(db).TagCount("fiction")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("shared tag rows = %d", n)
	}
}

func TestDeleteCascadeIsAtomic(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)
	st, _ := mkListing(t, db, "u-asha", "Thermodynamics")

	if _, err := db.Exec(`
		INSERT INTO reviews(id,reviewer_id,target_user_id,stuff_id,rating,message,type)
		VALUES('rv1','u-ravi','u-asha',?,4,'solid book','UNIVERSAL_STUFF')`, st.ID); err != nil {
		t.Fatal(err)
	}

	// Force a failure midway through the cascade.
	if _, err := db.Exec(`
		CREATE TRIGGER block_review_delete BEFORE DELETE ON reviews
		BEGIN SELECT RAISE(ABORT, 'blocked'); END`); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete("u-asha", st.ID); err == nil {
		t.Fatal("delete should have failed")
	}

	// Everything must still be there, including rows deleted before the
	// failing statement.
	for table, q := range map[string]string{
		"offers": `SELECT COUNT(*) FROM offers WHERE stuff_id=?`,
		"images": `SELECT COUNT(*) FROM stuff_images WHERE stuff_id=?`,
		"stuffs": `SELECT COUNT(*) FROM stuffs WHERE id=?`,
	} {
		var n int
		if err := db.Get(&n, q, st.ID); err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			t.Errorf("%s rows lost despite rollback", table)
		}
	}

	if _, err := db.Exec(`DROP TRIGGER block_review_delete`); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete("u-asha", st.ID); err != nil {
		t.Fatalf("delete after unblocking: %v", err)
	}
}

func TestLendOfferKeepsOptionalPrices(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)

	// LEND and SHARE take no mandatory price, but submitted values stay.
	_, of, err := svc.Create("u-asha", services.ListingInput{
		Stuff: domain.Stuff{Type: domain.StuffOther, Title: "Drawing board", Condition: domain.CondGood},
		Offer: domain.Offer{
			OfferType:         domain.OfferLend,
			Price:             fp(120),
			RentalPricePerDay: fp(3),
			RentalPeriodDays:  intp(14),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if of.Price == nil || *of.Price != 120 {
		t.Errorf("optional price was cleared: %+v", of.Price)
	}
	if of.RentalPricePerDay == nil || *of.RentalPricePerDay != 3 {
		t.Errorf("optional rental price was cleared: %+v", of.RentalPricePerDay)
	}
	if of.RentalPeriodDays == nil || *of.RentalPeriodDays != 14 {
		t.Errorf("rental period lost: %+v", of.RentalPeriodDays)
	}

	// A SHARE offer without any price is equally fine.
	_, shared, err := svc.Create("u-asha", services.ListingInput{
		Stuff: domain.Stuff{Type: domain.StuffNotes, Title: "Thermo notes", Condition: domain.CondGood},
		Offer: domain.Offer{OfferType: domain.OfferShare},
	})
	if err != nil {
		t.Fatal(err)
	}
	if shared.Price != nil || shared.RentalPricePerDay != nil {
		t.Errorf("share offer grew prices: %+v", shared)
	}

	// Negative values are still rejected.
	_, _, err = svc.Create("u-asha", services.ListingInput{
		Stuff: domain.Stuff{Type: domain.StuffOther, Title: "Tripod", Condition: domain.CondGood},
		Offer: domain.Offer{OfferType: domain.OfferLend, Price: fp(-1)},
	})
	if got := fieldOf(t, err); got != "price" {
		t.Errorf("negative lend price flagged %q", got)
	}
}

func TestUpdateBookToStationerySwapsVariantFields(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)
	st, of := mkListing(t, db, "u-asha", "Engineering Drawing")

	updated, _, err := svc.Update("u-asha", st.ID, of.ID, services.ListingInput{
		Stuff: domain.Stuff{
			Type:      domain.StuffStationery,
			Title:     "Engineering Drawing Kit",
			Condition: domain.CondGood,
			Stationery: &domain.StationeryDetails{
				Brand: "Camlin", Model: "Exam Set", StationeryType: "DRAWING",
			},
		},
		Offer: domain.Offer{OfferType: domain.OfferSell, Price: fp(150)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Book != nil {
		t.Errorf("book fields survived category change: %+v", updated.Book)
	}
	if updated.Stationery == nil || updated.Stationery.Brand != "Camlin" || updated.Stationery.StationeryType != "DRAWING" {
		t.Errorf("stationery fields missing: %+v", updated.Stationery)
	}

	// The book columns themselves go NULL, not just the view of them.
	var author *string
	if err := db.Get(&author, `SELECT author FROM stuffs WHERE id=?`, st.ID); err != nil {
		t.Fatal(err)
	}
	if author != nil {
		t.Errorf("author column still set: %q", *author)
	}
}

func TestRentOfferStoresNoSalePrice(t *testing.T) {
	db := testDB(t)
	svc := newListingSvc(db)

	_, of, err := svc.Create("u-asha", services.ListingInput{
		Stuff: domain.Stuff{Type: domain.StuffElectronics, Title: "Arduino kit", Condition: domain.CondGood},
		Offer: domain.Offer{
			OfferType:         domain.OfferRent,
			Price:             fp(999), // does not apply to rentals
			RentalPricePerDay: fp(25),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if of.Price != nil {
		t.Errorf("rent offer kept a sale price: %v", *of.Price)
	}

	var price *float64
	if err := db.Get(&price, `SELECT price FROM offers WHERE id=?`, of.ID); err != nil {
		t.Fatal(err)
	}
	if price != nil {
		t.Errorf("price column not NULL: %v", *price)
	}
}
