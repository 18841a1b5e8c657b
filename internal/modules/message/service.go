package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

const (
	defaultConversationLimit = 50
	maxConversationLimit     = 100
)

type Service struct {
	messages MessageRepository
	users    UserReader
	bookings BookingReader
}

func NewService(messages MessageRepository, users UserReader, bookings BookingReader) *Service {
	return &Service{messages: messages, users: users, bookings: bookings}
}

// Send delivers a direct message. A booking reference is accepted only from
// one of that booking's parties.
func (s *Service) Send(ctx context.Context, senderID int64, req SendMessageRequest) (*domain.Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" || len(body) > domain.MaxMessageBodyLen {
		return nil, ErrValidation
	}
	if req.ReceiverID == senderID {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	if req.BookingID != nil {
		b, err := s.bookings.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		if !b.IsParty(senderID) {
			return nil, ErrNotBookingParty
		}
	}

	m := &domain.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		BookingID:  req.BookingID,
		Body:       body,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Conversation(ctx context.Context, userID, otherID int64, bookingID *int64, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	if limit > maxConversationLimit {
		limit = maxConversationLimit
	}
	return s.messages.ListConversation(ctx, userID, otherID, bookingID, limit)
}

func (s *Service) Unread(ctx context.Context, userID int64) ([]domain.Message, error) {
	return s.messages.ListUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	ok, err := s.messages.MarkRead(ctx, id, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
