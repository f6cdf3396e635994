package services

import (
	"encoding/json"
	"strings"

	"vidyarth/internal/domain"
	"vidyarth/internal/repos"

	"github.com/oklog/ulid/v2"
)

// MessagingService groups a flat message log into per-counterparty,
// per-offer conversations and enforces who may write into an offer thread.
type MessagingService struct {
	Messages *repos.MessageRepo
	Offers   *repos.OfferRepo
	Users    *repos.UserRepo
	Notify   *NotificationService
}

func NewMessagingService(m *repos.MessageRepo, o *repos.OfferRepo, u *repos.UserRepo, n *NotificationService) *MessagingService {
	return &MessagingService{Messages: m, Offers: o, Users: u, Notify: n}
}

// conversationKey buckets messages by counterparty and offer. Messages
// without an offer fall into one "direct" bucket per counterparty.
func conversationKey(otherID, offerID string) string {
	if offerID == "" {
		return otherID + "|direct"
	}
	return otherID + "|" + offerID
}

// BuildConversations folds messages, given newest first, into conversation
// heads. The first message seen for a bucket is its latest; unread counts
// accumulate over the whole bucket.
func BuildConversations(viewerID string, rows []repos.MessageContextRow) []domain.Conversation {
	order := []string{}
	byKey := map[string]*domain.Conversation{}

	for i := range rows {
		row := &rows[i]

		otherID := row.ReceiverID
		other := domain.UserSummary{
			UserID:      row.ReceiverID,
			Username:    row.ReceiverUsername,
			DisplayName: row.ReceiverDisplayName,
			AvatarURL:   row.ReceiverAvatarURL,
		}
		if row.SenderID != viewerID {
			otherID = row.SenderID
			other = domain.UserSummary{
				UserID:      row.SenderID,
				Username:    row.SenderUsername,
				DisplayName: row.SenderDisplayName,
				AvatarURL:   row.SenderAvatarURL,
			}
		}

		key := conversationKey(otherID, row.OfferID)
		conv, seen := byKey[key]
		if !seen {
			conv = &domain.Conversation{
				OtherUser:   other,
				LastMessage: row.Message,
			}
			if row.OfferID != "" {
				conv.Offer = &domain.OfferContext{
					OfferID:    row.OfferID,
					StuffID:    row.StuffID,
					StuffTitle: row.StuffTitle,
				}
			}
			byKey[key] = conv
			order = append(order, key)
		}
		if row.ReceiverID == viewerID && !row.IsRead {
			conv.UnreadCount++
		}
	}

	out := make([]domain.Conversation, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// Conversations returns the viewer's inbox, most recent thread first. A
// non-empty offerID narrows it to the threads about that offer.
func (s *MessagingService) Conversations(viewerID, offerID string) ([]domain.Conversation, error) {
	rows, err := s.Messages.ListInvolving(viewerID, offerID)
	if err != nil {
		return nil, err
	}
	return BuildConversations(viewerID, rows), nil
}

// Thread returns one offer thread oldest first and marks the viewer's side
// read as a side effect.
func (s *MessagingService) Thread(viewerID, offerID, otherUserID string) ([]domain.Message, error) {
	if offerID == "" {
		return nil, domain.Invalid("offerId", "required")
	}
	msgs, err := s.Messages.ListThread(viewerID, offerID, otherUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Messages.MarkRead(viewerID, offerID, otherUserID); err != nil {
		return nil, err
	}
	return msgs, nil
}

type SendMessageInput struct {
	ReceiverID         string `json:"receiver_id"`
	OfferID            string `json:"offer_id"`
	Subject            string `json:"subject"`
	Text               string `json:"text"`
	TradeRequestStatus string `json:"trade_request_status"`
}

// Send validates the payload, checks offer participation when the message
// belongs to an offer thread, stores the message and notifies the receiver.
// A notification failure never fails the send.
func (s *MessagingService) Send(senderID string, in SendMessageInput) (*domain.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" || len(text) > 2000 {
		return nil, domain.Invalid("text", "required, at most 2000 characters")
	}
	if in.ReceiverID == "" {
		return nil, domain.Invalid("receiver_id", "required")
	}
	if in.ReceiverID == senderID {
		return nil, domain.Invalid("receiver_id", "cannot message yourself")
	}
	if ok, err := s.Users.Exists(in.ReceiverID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrNotFound
	}

	if in.OfferID != "" {
		parties, err := s.Offers.Parties(in.OfferID)
		if err != nil {
			return nil, err
		}
		listingSide := func(id string) bool {
			return id == parties.OfferUserID || id == parties.StuffOwnerID
		}
		if !listingSide(senderID) && !listingSide(in.ReceiverID) {
			return nil, domain.ErrNotAuthorized
		}
	}

	m := &domain.Message{
		ID:                 ulid.Make().String(),
		SenderID:           senderID,
		ReceiverID:         in.ReceiverID,
		OfferID:            in.OfferID,
		Subject:            strings.TrimSpace(in.Subject),
		Text:               text,
		TradeRequestStatus: in.TradeRequestStatus,
	}
	if err := s.Messages.Insert(m); err != nil {
		return nil, err
	}

	if s.Notify != nil {
		payload, _ := json.Marshal(map[string]string{
			"message_id": m.ID,
			"sender_id":  senderID,
			"offer_id":   in.OfferID,
		})
		title := "New message"
		if m.Subject != "" {
			title = m.Subject
		}
		_ = s.Notify.Push(in.ReceiverID, domain.NotifyMessage, title, snippet(text), string(payload))
	}
	return m, nil
}

func snippet(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
