package services

import (
	"vidyarth/internal/domain"
	"vidyarth/internal/repos"

	"github.com/oklog/ulid/v2"
)

type NotificationService struct {
	Repo *repos.NotificationRepo
}

func NewNotificationService(r *repos.NotificationRepo) *NotificationService {
	return &NotificationService{Repo: r}
}

// Push records a notification for the user. Callers treat delivery as
// best effort.
func (s *NotificationService) Push(userID, typ, title, body, dataJSON string) error {
	return s.Repo.Create(&domain.Notification{
		ID:       ulid.Make().String(),
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Body:     body,
		DataJSON: dataJSON,
	})
}

func (s *NotificationService) List(userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Repo.List(userID, unreadOnly, limit)
}

func (s *NotificationService) UnreadCount(userID string) (int, error) {
	return s.Repo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(userID string, ids []string) (int64, error) {
	return s.Repo.MarkSet(userID, ids)
}

func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	return s.Repo.MarkAllRead(userID)
}
