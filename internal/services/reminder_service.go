package services

import (
	"strings"
	"time"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"
	"vidyarth/internal/validate"

	"github.com/oklog/ulid/v2"
)

type ReminderService struct {
	Repo   *repos.ReminderRepo
	Notify *NotificationService
}

func NewReminderService(r *repos.ReminderRepo, n *NotificationService) *ReminderService {
	return &ReminderService{Repo: r, Notify: n}
}

type ReminderInput struct {
	TradeID string `json:"trade_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	DueDate string `json:"due_date"`
	Type    string `json:"type"`
}

func (s *ReminderService) Create(userID string, in ReminderInput) (*domain.Reminder, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Title) > 200 {
		return nil, domain.Invalid("title", "required, at most 200 characters")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.Invalid("message", "required")
	}
	if in.DueDate == "" {
		return nil, domain.Invalid("due_date", "required")
	}
	if in.Type == "" {
		in.Type = domain.RemindCustom
	}
	if !validate.ReminderType(in.Type) {
		return nil, domain.Invalid("type", "")
	}

	m := &domain.Reminder{
		ID:      ulid.Make().String(),
		UserID:  userID,
		TradeID: in.TradeID,
		Title:   in.Title,
		Message: strings.TrimSpace(in.Message),
		DueDate: in.DueDate,
		Type:    in.Type,
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ReminderService) ListMine(userID string, pendingOnly bool) ([]domain.Reminder, error) {
	return s.Repo.ListByUser(userID, pendingOnly)
}

func (s *ReminderService) Dismiss(userID, id string) error {
	return s.Repo.Dismiss(userID, id)
}

func (s *ReminderService) Delete(userID, id string) error {
	return s.Repo.Delete(userID, id)
}

// Sweep turns every due, undelivered reminder into a notification and marks
// it sent. It returns how many reminders fired.
func (s *ReminderService) Sweep() (int, error) {
	cutoff := time.Now().UTC().Format("2006-01-02 15:04:05.000000000")
	due, err := s.Repo.DueBefore(cutoff)
	if err != nil {
		return 0, err
	}
	fired := 0
	for _, m := range due {
		if err := s.Notify.Push(m.UserID, m.Type, m.Title, m.Message, ""); err != nil {
			return fired, err
		}
		if err := s.Repo.MarkSent(m.ID); err != nil {
			return fired, err
		}
		fired++
	}
	return fired, nil
}
