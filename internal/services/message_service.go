package services

import (
	"strings"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/logger"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// MessageService handles direct messages: sending, conversation listing and
// the recipient-side read transition.
type MessageService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(db *gorm.DB, userRepo repositories.UserRepository, messageRepo repositories.MessageRepository) *MessageService {
	return &MessageService{db: db, userRepo: userRepo, messageRepo: messageRepo}
}

// MessageResult is the payload returned after sending a message
type MessageResult struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	SenderID  uint   `json:"sender_id"`
}

// SendMessage creates a message to the named recipient. Whitespace-only text
// is rejected before any write; an unknown recipient is NotFound.
func (s *MessageService) SendMessage(actorID uint, recipientUsername, text string) (*MessageResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrInvalidInput
	}

	recipient, err := s.userRepo.GetUserByUsername(recipientUsername)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	message := &models.Message{
		Text:        text,
		SenderID:    actorID,
		RecipientID: recipient.ID,
	}
	if err := s.db.Create(message).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}

	return &MessageResult{
		ID:        message.ID,
		Text:      message.Text,
		CreatedAt: formatTimestamp(message.CreatedAt),
		SenderID:  message.SenderID,
	}, nil
}

// Conversations returns the distinct users the actor has exchanged at least
// one message with in either direction, most recent conversation first.
func (s *MessageService) Conversations(actorID uint) ([]models.UserCompact, error) {
	messages, err := s.messageRepo.GetMessagesInvolving(actorID)
	if err != nil {
		if storeUnavailable("conversations", err) {
			return []models.UserCompact{}, nil
		}
		return nil, apperrors.FromStore(err)
	}

	partners := []models.UserCompact{}
	seen := make(map[uint]bool)
	for _, m := range messages {
		otherID := m.SenderID
		if otherID == actorID {
			otherID = m.RecipientID
		}
		if seen[otherID] {
			continue
		}
		seen[otherID] = true
		user, err := s.userRepo.GetUserByID(otherID)
		if err != nil {
			return nil, apperrors.FromStore(err)
		}
		partners = append(partners, user.ToCompact())
	}
	return partners, nil
}

// Conversation returns all messages between the actor and the other user,
// oldest first, marking every message addressed to the actor as read.
func (s *MessageService) Conversation(actorID, otherID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetUserByID(otherID); err != nil {
		return nil, apperrors.FromStore(err)
	}

	var messages []models.Message
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				actorID, otherID, otherID, actorID).
			Order("created_at ASC").
			Find(&messages).Error
		if err != nil {
			return err
		}
		err = tx.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherID, actorID, false).
			Update("is_read", true).Error
		if err != nil {
			return err
		}
		// Reflect the read transition in the returned slice.
		for i := range messages {
			if messages[i].RecipientID == actorID {
				messages[i].IsRead = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	logger.Debug("conversation viewed", "actor", actorID, "other", otherID, "messages", len(messages))
	return messages, nil
}
