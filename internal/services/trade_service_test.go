package services_test

import (
	"errors"
	"testing"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/services"
)

func TestTradeCreateAssignsPartiesAndStatus(t *testing.T) {
	db := testDB(t)
	_, of := mkListing(t, db, "u-ravi", "Graph Theory")
	svc := services.NewTradeService(repos.NewTradeRepo(db), repos.NewOfferRepo(db))

	tr, err := svc.Create("u-asha", services.TradeInput{OfferID: of.ID, AgreedPrice: fp(200)})
	if err != nil {
		t.Fatal(err)
	}
	if tr.BorrowerID != "u-asha" || tr.LenderID != "u-ravi" {
		t.Errorf("parties = borrower %s lender %s", tr.BorrowerID, tr.LenderID)
	}
	if tr.Status != domain.TradePending {
		t.Errorf("status = %s, want PENDING", tr.Status)
	}

	// Nobody trades on their own listing.
	if _, err := svc.Create("u-ravi", services.TradeInput{OfferID: of.ID}); !domain.IsValidation(err) {
		t.Errorf("own listing: got %v", err)
	}

	// Inactive offers cannot open trades.
	if _, err := db.Exec(`UPDATE offers SET is_active=0 WHERE id=?`, of.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create("u-asha", services.TradeInput{OfferID: of.ID}); !domain.IsValidation(err) {
		t.Errorf("inactive offer: got %v", err)
	}
}

func TestTradeVisibilityAndUpdates(t *testing.T) {
	db := testDB(t)
	addUser(t, db, "u-meera")
	_, of := mkListing(t, db, "u-ravi", "Optics")
	svc := services.NewTradeService(repos.NewTradeRepo(db), repos.NewOfferRepo(db))

	tr, err := svc.Create("u-asha", services.TradeInput{OfferID: of.ID})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get("u-meera", tr.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("stranger get: got %v", err)
	}
	if _, err := svc.Update("u-meera", tr.ID, services.TradeUpdateInput{Status: domain.TradeAccepted}); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("stranger update: got %v", err)
	}

	// Either party can move the trade along.
	got, err := svc.Update("u-ravi", tr.ID, services.TradeUpdateInput{Status: domain.TradeAccepted, LenderNotes: "pickup at library"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.TradeAccepted || got.LenderNotes != "pickup at library" {
		t.Errorf("update lost fields: %+v", got)
	}
	if got.UpdatedAt == "" {
		t.Error("updated_at not stamped")
	}

	if _, err := svc.Update("u-asha", tr.ID, services.TradeUpdateInput{Status: "DONE"}); !domain.IsValidation(err) {
		t.Errorf("bad status: got %v", err)
	}
	if _, err := svc.Update("u-asha", tr.ID, services.TradeUpdateInput{BorrowerRating: intp(9)}); !domain.IsValidation(err) {
		t.Errorf("bad rating: got %v", err)
	}

	mine, err := svc.ListMine("u-asha")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != tr.ID {
		t.Errorf("list mine = %+v", mine)
	}
}

func TestTradeDeleteRules(t *testing.T) {
	db := testDB(t)
	_, of := mkListing(t, db, "u-ravi", "Statistics")
	svc := services.NewTradeService(repos.NewTradeRepo(db), repos.NewOfferRepo(db))

	tr, err := svc.Create("u-asha", services.TradeInput{OfferID: of.ID})
	if err != nil {
		t.Fatal(err)
	}

	// Only the lender deletes, and only before the trade gets under way.
	if err := svc.Delete("u-asha", tr.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("borrower delete: got %v", err)
	}
	if _, err := svc.Update("u-ravi", tr.ID, services.TradeUpdateInput{Status: domain.TradeInProgress}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete("u-ravi", tr.ID); !domain.IsValidation(err) {
		t.Errorf("in-progress delete: got %v", err)
	}
	if _, err := svc.Update("u-ravi", tr.ID, services.TradeUpdateInput{Status: domain.TradeCancelled}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete("u-ravi", tr.ID); err != nil {
		t.Fatalf("cancelled delete: %v", err)
	}
	if _, err := svc.Get("u-ravi", tr.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted trade still readable: %v", err)
	}
}

func intp(v int) *int { return &v }
