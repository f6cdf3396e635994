package services

import (
	"strings"
	"time"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"

	"github.com/google/uuid"
)

// offerLifetime is how long a fresh offer stays live before expiry.
const offerLifetime = 30 * 24 * time.Hour

// ListingService owns the item+offer lifecycle. An item never exists
// without an offer; both sides of every write commit or roll back together.
type ListingService struct {
	Stuffs *repos.StuffRepo
	Offers *repos.OfferRepo
}

func NewListingService(stuffs *repos.StuffRepo, offers *repos.OfferRepo) *ListingService {
	return &ListingService{Stuffs: stuffs, Offers: offers}
}

// ListingInput is the combined item+offer payload for create and update.
type ListingInput struct {
	Stuff domain.Stuff `json:"stuff"`
	Offer domain.Offer `json:"offer"`
}

// Create validates, applies defaults and persists the item with its offer
// in one transaction.
func (s *ListingService) Create(ownerID string, in ListingInput) (*domain.Stuff, *domain.Offer, error) {
	st := in.Stuff
	of := in.Offer

	if err := normalizeListing(&st, &of); err != nil {
		return nil, nil, err
	}

	st.ID = uuid.NewString()
	st.OwnerID = ownerID
	of.ID = uuid.NewString()
	of.StuffID = st.ID
	of.UserID = ownerID
	of.IsActive = true
	of.ExpiresAt = time.Now().UTC().Add(offerLifetime).Format("2006-01-02 15:04:05.000000000")

	if err := s.Stuffs.CreateWithOffer(&st, &of); err != nil {
		return nil, nil, err
	}
	got, err := s.Stuffs.Get(st.ID)
	if err != nil {
		return nil, nil, err
	}
	return got, &of, nil
}

// Update rewrites the item and offer together. Images and tags are replaced
// wholesale with the submitted sets.
func (s *ListingService) Update(callerID, stuffID, offerID string, in ListingInput) (*domain.Stuff, *domain.Offer, error) {
	st := in.Stuff
	of := in.Offer

	if err := normalizeListing(&st, &of); err != nil {
		return nil, nil, err
	}

	st.ID = stuffID
	of.ID = offerID
	of.StuffID = stuffID

	if err := s.Stuffs.UpdateWithOffer(callerID, &st, &of); err != nil {
		return nil, nil, err
	}
	gotS, err := s.Stuffs.Get(stuffID)
	if err != nil {
		return nil, nil, err
	}
	gotO, err := s.Offers.Get(offerID)
	if err != nil {
		return nil, nil, err
	}
	return gotS, gotO, nil
}

// Delete removes the item and every dependent row atomically.
func (s *ListingService) Delete(callerID, stuffID string) error {
	return s.Stuffs.DeleteCascade(callerID, stuffID)
}

func (s *ListingService) Get(stuffID string) (*domain.Stuff, []*domain.Offer, error) {
	st, err := s.Stuffs.Get(stuffID)
	if err != nil {
		return nil, nil, err
	}
	offers, err := s.Offers.ListByStuff(stuffID)
	if err != nil {
		return nil, nil, err
	}
	return st, offers, nil
}

func (s *ListingService) ListByOwner(ownerID string) ([]*domain.Stuff, error) {
	return s.Stuffs.ListByOwner(ownerID)
}

// normalizeListing validates the item and offer, applies defaults, clears
// fields that do not apply to the chosen type and normalizes tags.
func normalizeListing(st *domain.Stuff, of *domain.Offer) error {
	st.Title = strings.TrimSpace(st.Title)
	if _, ok := validate.Text(st.Title, 200); !ok || st.Title == "" {
		return domain.Invalid("title", "required, at most 200 characters")
	}
	if !validate.StuffType(st.Type) {
		return domain.Invalid("type", "")
	}
	if !validate.Condition(st.Condition) {
		return domain.Invalid("condition", "")
	}
	if st.OriginalPrice < 0 {
		return domain.Invalid("original_price", "must not be negative")
	}
	if st.Quantity <= 0 {
		st.Quantity = 1
	}
	if st.Language == "" {
		st.Language = "English"
	}

	switch st.Type {
	case domain.StuffBook:
		if st.Book == nil || strings.TrimSpace(st.Book.Author) == "" {
			return domain.Invalid("author", "required for books")
		}
		st.Book.Author = strings.TrimSpace(st.Book.Author)
		if st.Book.BookType != "" && !validate.BookType(st.Book.BookType) {
			return domain.Invalid("book_type", "")
		}
		st.Stationery = nil
	case domain.StuffStationery:
		if st.Stationery != nil && st.Stationery.StationeryType != "" && !validate.StationeryType(st.Stationery.StationeryType) {
			return domain.Invalid("stationery_type", "")
		}
		st.Book = nil
	default:
		st.Book = nil
		st.Stationery = nil
	}

	// Tags are normalized here so storage only ever sees canonical names.
	seen := map[string]bool{}
	tags := st.Tags[:0]
	for _, t := range st.Tags {
		n := validate.NormalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		tags = append(tags, n)
	}
	st.Tags = tags

	if !validate.OfferType(of.OfferType) {
		return domain.Invalid("offer_type", "")
	}
	if of.VisibilityScope == "" {
		of.VisibilityScope = domain.VisibilityPublic
	}
	if !validate.VisibilityScope(of.VisibilityScope) {
		return domain.Invalid("visibility_scope", "")
	}
	if of.QuantityAvailable <= 0 {
		of.QuantityAvailable = st.Quantity
	}
	if of.Pincode != "" {
		if _, ok := validate.Pincode(of.Pincode); !ok {
			return domain.Invalid("pincode", "")
		}
	}

	// The price-like fields that matter depend on the offer type; the rest
	// are cleared so stale values cannot leak across type changes.
	switch of.OfferType {
	case domain.OfferSell:
		if of.Price == nil || *of.Price <= 0 {
			return domain.Invalid("price", "must be positive for sell offers")
		}
		of.RentalPricePerDay = nil
		of.RentalPeriodDays = nil
		of.ExchangeItemDescription = ""
		of.ExchangeItemValue = nil
	case domain.OfferRent:
		if of.RentalPricePerDay == nil || *of.RentalPricePerDay <= 0 {
			return domain.Invalid("rental_price_per_day", "must be positive for rent offers")
		}
		of.Price = nil
		of.ExchangeItemDescription = ""
		of.ExchangeItemValue = nil
	case domain.OfferExchange:
		if strings.TrimSpace(of.ExchangeItemDescription) == "" {
			return domain.Invalid("exchange_item_description", "required for exchange offers")
		}
		of.Price = nil
		of.RentalPricePerDay = nil
		of.RentalPeriodDays = nil
	default: // LEND, SHARE: price and rental are optional, kept as given
		if of.Price != nil && *of.Price < 0 {
			return domain.Invalid("price", "must not be negative")
		}
		if of.RentalPricePerDay != nil && *of.RentalPricePerDay < 0 {
			return domain.Invalid("rental_price_per_day", "must not be negative")
		}
	}
	return nil
}
