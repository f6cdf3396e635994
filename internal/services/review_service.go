package services

import (
	"strings"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"

	"github.com/google/uuid"
)

type ReviewService struct {
	Repo   *repos.ReviewRepo
	Users  *repos.UserRepo
	Stuffs *repos.StuffRepo
}

func NewReviewService(r *repos.ReviewRepo, users *repos.UserRepo, stuffs *repos.StuffRepo) *ReviewService {
	return &ReviewService{Repo: r, Users: users, Stuffs: stuffs}
}

type ReviewInput struct {
	TargetUserID string `json:"target_user_id"`
	StuffID      string `json:"stuff_id"`
	TradeID      string `json:"trade_id"`
	Rating       int    `json:"rating"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Type         string `json:"type"`
}

func validateReviewBody(rating int, title, message string) error {
	if rating < 1 || rating > 5 {
		return domain.Invalid("rating", "must be between 1 and 5")
	}
	if len(title) > 100 {
		return domain.Invalid("title", "at most 100 characters")
	}
	if n := len(message); n < 10 || n > 1000 {
		return domain.Invalid("message", "must be 10 to 1000 characters")
	}
	return nil
}

func (s *ReviewService) Create(reviewerID string, in ReviewInput) (*domain.Review, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateReviewBody(in.Rating, in.Title, in.Message); err != nil {
		return nil, err
	}
	if !validate.ReviewType(in.Type) {
		return nil, domain.Invalid("type", "")
	}
	if in.TargetUserID == "" {
		return nil, domain.Invalid("target_user_id", "required")
	}
	if in.TargetUserID == reviewerID {
		return nil, domain.Invalid("target_user_id", "cannot review yourself")
	}
	if ok, err := s.Users.Exists(in.TargetUserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrNotFound
	}
	if in.StuffID != "" {
		if _, err := s.Stuffs.Get(in.StuffID); err != nil {
			return nil, err
		}
	}

	v := &domain.Review{
		ID:           uuid.NewString(),
		ReviewerID:   reviewerID,
		TargetUserID: in.TargetUserID,
		StuffID:      in.StuffID,
		TradeID:      in.TradeID,
		Rating:       in.Rating,
		Title:        in.Title,
		Message:      in.Message,
		Type:         in.Type,
	}
	if err := s.Repo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update lets the reviewer revise rating, title and message. Target and
// type are fixed at creation.
func (s *ReviewService) Update(reviewerID, reviewID string, rating int, title, message string) (*domain.Review, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if err := validateReviewBody(rating, title, message); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(reviewerID, &domain.Review{ID: reviewID, Rating: rating, Title: title, Message: message}); err != nil {
		return nil, err
	}
	return s.Repo.Get(reviewID)
}

func (s *ReviewService) Delete(reviewerID, reviewID string) error {
	return s.Repo.Delete(reviewerID, reviewID)
}

func (s *ReviewService) ForStuff(stuffID string) ([]domain.Review, error) {
	return s.Repo.ListByStuff(stuffID)
}

// UserRating bundles the received reviews with their running average.
type UserRating struct {
	Average float64         `json:"average"`
	Count   int             `json:"count"`
	Reviews []domain.Review `json:"reviews"`
}

func (s *ReviewService) ForUser(userID string) (*UserRating, error) {
	reviews, err := s.Repo.ListByTargetUser(userID)
	if err != nil {
		return nil, err
	}
	avg, n, err := s.Repo.AverageForUser(userID)
	if err != nil {
		return nil, err
	}
	return &UserRating{Average: avg, Count: n, Reviews: reviews}, nil
}
