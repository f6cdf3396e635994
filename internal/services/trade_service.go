package services

import (
	"strings"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"

	"github.com/google/uuid"
)

type TradeService struct {
	Repo   *repos.TradeRepo
	Offers *repos.OfferRepo
}

func NewTradeService(r *repos.TradeRepo, offers *repos.OfferRepo) *TradeService {
	return &TradeService{Repo: r, Offers: offers}
}

type TradeInput struct {
	OfferID         string   `json:"offer_id"`
	AgreedPrice     *float64 `json:"agreed_price"`
	SecurityDeposit *float64 `json:"security_deposit"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	BorrowerNotes   string   `json:"borrower_notes"`
}

// Create opens a trade on an active offer. The caller is always the
// borrower, the lender is always the listing owner, and a fresh trade
// always starts PENDING regardless of what the client sends.
func (s *TradeService) Create(callerID string, in TradeInput) (*domain.Trade, error) {
	if in.OfferID == "" {
		return nil, domain.Invalid("offer_id", "required")
	}
	parties, err := s.Offers.Parties(in.OfferID)
	if err != nil {
		return nil, err
	}
	if !parties.IsActive {
		return nil, domain.Invalid("offer_id", "offer is not active")
	}
	if callerID == parties.StuffOwnerID {
		return nil, domain.Invalid("offer_id", "cannot trade on your own listing")
	}

	t := &domain.Trade{
		ID:              uuid.NewString(),
		OfferID:         in.OfferID,
		BorrowerID:      callerID,
		LenderID:        parties.StuffOwnerID,
		Status:          domain.TradePending,
		AgreedPrice:     in.AgreedPrice,
		SecurityDeposit: in.SecurityDeposit,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		BorrowerNotes:   strings.TrimSpace(in.BorrowerNotes),
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TradeService) Get(callerID, tradeID string) (*domain.Trade, error) {
	t, err := s.Repo.Get(tradeID)
	if err != nil {
		return nil, err
	}
	if t.BorrowerID != callerID && t.LenderID != callerID {
		return nil, domain.ErrNotAuthorized
	}
	return t, nil
}

func (s *TradeService) ListMine(callerID string) ([]domain.Trade, error) {
	return s.Repo.ListInvolving(callerID)
}

type TradeUpdateInput struct {
	Status           string   `json:"status"`
	AgreedPrice      *float64 `json:"agreed_price"`
	SecurityDeposit  *float64 `json:"security_deposit"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	ActualReturnDate string   `json:"actual_return_date"`
	LateFee          *float64 `json:"late_fee"`
	BorrowerNotes    string   `json:"borrower_notes"`
	LenderNotes      string   `json:"lender_notes"`
	BorrowerRating   *int     `json:"borrower_rating"`
	LenderRating     *int     `json:"lender_rating"`
}

// Update applies changes from either party. Status transitions are only
// validated for shape; negotiation order is left to the clients.
func (s *TradeService) Update(callerID, tradeID string, in TradeUpdateInput) (*domain.Trade, error) {
	t, err := s.Repo.Get(tradeID)
	if err != nil {
		return nil, err
	}
	if t.BorrowerID != callerID && t.LenderID != callerID {
		return nil, domain.ErrNotAuthorized
	}

	if in.Status != "" {
		if !validate.TradeStatus(in.Status) {
			return nil, domain.Invalid("status", "")
		}
		t.Status = in.Status
	}
	if in.AgreedPrice != nil {
		t.AgreedPrice = in.AgreedPrice
	}
	if in.SecurityDeposit != nil {
		t.SecurityDeposit = in.SecurityDeposit
	}
	if in.StartDate != "" {
		t.StartDate = in.StartDate
	}
	if in.EndDate != "" {
		t.EndDate = in.EndDate
	}
	if in.ActualReturnDate != "" {
		t.ActualReturnDate = in.ActualReturnDate
	}
	if in.LateFee != nil {
		t.LateFee = in.LateFee
	}
	if in.BorrowerNotes != "" {
		t.BorrowerNotes = strings.TrimSpace(in.BorrowerNotes)
	}
	if in.LenderNotes != "" {
		t.LenderNotes = strings.TrimSpace(in.LenderNotes)
	}
	if in.BorrowerRating != nil {
		if *in.BorrowerRating < 1 || *in.BorrowerRating > 5 {
			return nil, domain.Invalid("borrower_rating", "must be between 1 and 5")
		}
		t.BorrowerRating = in.BorrowerRating
	}
	if in.LenderRating != nil {
		if *in.LenderRating < 1 || *in.LenderRating > 5 {
			return nil, domain.Invalid("lender_rating", "must be between 1 and 5")
		}
		t.LenderRating = in.LenderRating
	}

	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete is the lender's prerogative and only for trades that never got
// under way.
func (s *TradeService) Delete(callerID, tradeID string) error {
	t, err := s.Repo.Get(tradeID)
	if err != nil {
		return err
	}
	if t.LenderID != callerID {
		return domain.ErrNotAuthorized
	}
	if t.Status != domain.TradePending && t.Status != domain.TradeCancelled {
		return domain.Invalid("status", "only pending or cancelled trades can be deleted")
	}
	return s.Repo.Delete(tradeID)
}
