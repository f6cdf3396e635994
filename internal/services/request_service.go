package services

import (
	"strings"
	"time"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"

	"github.com/google/uuid"
)

const requestLifetime = 30 * 24 * time.Hour

// RequestService manages wanted posts: items students are looking for.
type RequestService struct {
	Repo *repos.RequestRepo
}

func NewRequestService(r *repos.RequestRepo) *RequestService { return &RequestService{Repo: r} }

func validateRequest(q *domain.Request) error {
	q.Description = strings.TrimSpace(q.Description)
	if n := len(q.Description); n < 10 || n > 2000 {
		return domain.Invalid("description", "must be 10 to 2000 characters")
	}
	if !validate.StuffType(q.StuffType) {
		return domain.Invalid("stuff_type", "")
	}
	if q.UrgencyLevel == "" {
		q.UrgencyLevel = domain.UrgencyMedium
	}
	if !validate.UrgencyLevel(q.UrgencyLevel) {
		return domain.Invalid("urgency_level", "")
	}
	if q.SearchRadiusKM <= 0 {
		q.SearchRadiusKM = 10
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return domain.Invalid("max_price", "must not be negative")
	}
	if q.MaxRentalPerDay != nil && *q.MaxRentalPerDay < 0 {
		return domain.Invalid("max_rental_per_day", "must not be negative")
	}
	return nil
}

func (s *RequestService) Create(userID string, q domain.Request) (*domain.Request, error) {
	if err := validateRequest(&q); err != nil {
		return nil, err
	}
	q.ID = uuid.NewString()
	q.UserID = userID
	q.Status = domain.RequestOpen
	q.ExpiresAt = time.Now().UTC().Add(requestLifetime).Format("2006-01-02 15:04:05.000000000")
	if err := s.Repo.Create(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *RequestService) Get(id string) (*domain.Request, error) {
	return s.Repo.Get(id)
}

func (s *RequestService) ListMine(userID string) ([]domain.Request, error) {
	return s.Repo.ListByUser(userID)
}

func (s *RequestService) ListOpen(stuffType string) ([]domain.Request, error) {
	if stuffType != "" && !validate.StuffType(stuffType) {
		return nil, domain.Invalid("stuff_type", "")
	}
	return s.Repo.ListOpen(stuffType)
}

func (s *RequestService) Update(callerID, id string, q domain.Request) (*domain.Request, error) {
	cur, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if cur.UserID != callerID {
		return nil, domain.ErrNotAuthorized
	}
	if err := validateRequest(&q); err != nil {
		return nil, err
	}
	if q.Status == "" {
		q.Status = cur.Status
	}
	if !validate.RequestStatus(q.Status) {
		return nil, domain.Invalid("status", "")
	}
	q.ID = id
	q.UserID = cur.UserID
	q.ExpiresAt = cur.ExpiresAt
	q.CreatedAt = cur.CreatedAt
	if err := s.Repo.Update(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *RequestService) Delete(callerID, id string) error {
	cur, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if cur.UserID != callerID {
		return domain.ErrNotAuthorized
	}
	return s.Repo.Delete(id)
}
