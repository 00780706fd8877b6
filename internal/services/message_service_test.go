package services_test

import (
	"testing"
	"time"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/repositories"
	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMessageService(db *gorm.DB) *services.MessageService {
	return services.NewMessageService(
		db,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresMessageRepository(db),
	)
}

func TestSendMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	res, err := svc.SendMessage(alice.ID, "bob", "hey there")
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, "hey there", res.Text)
	assert.Equal(t, alice.ID, res.SenderID)
	assert.NotEmpty(t, res.CreatedAt)
}

func TestSendMessageValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	_, err := svc.SendMessage(alice.ID, "bob", "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.SendMessage(alice.ID, "nobody", "hello?")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, int64(0), countRows(t, db, &models.Message{}, ""))
}

func TestConversationOrderAndReadMarking(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	now := time.Now()
	require.NoError(t, db.Create(&models.Message{Text: "hi", SenderID: alice.ID, RecipientID: bob.ID, CreatedAt: now.Add(-2 * time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Message{Text: "hello", SenderID: bob.ID, RecipientID: alice.ID, CreatedAt: now.Add(-time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Message{Text: "how are you", SenderID: bob.ID, RecipientID: alice.ID, CreatedAt: now}).Error)

	messages, err := svc.Conversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "hi", messages[0].Text)
	assert.Equal(t, "how are you", messages[2].Text)

	// everything addressed to alice is now read, her own send untouched
	assert.Equal(t, int64(0), countRows(t, db, &models.Message{}, "recipient_id = ? AND is_read = ?", alice.ID, false))
	assert.Equal(t, int64(1), countRows(t, db, &models.Message{}, "recipient_id = ? AND is_read = ?", bob.ID, false))
	assert.True(t, messages[1].IsRead)
}

func TestConversationMissingUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	alice := createUser(t, db, "alice")

	_, err := svc.Conversation(alice.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConversationsDistinctPartners(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	createUser(t, db, "dave")

	now := time.Now()
	require.NoError(t, db.Create(&models.Message{Text: "1", SenderID: alice.ID, RecipientID: bob.ID, CreatedAt: now.Add(-3 * time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Message{Text: "2", SenderID: bob.ID, RecipientID: alice.ID, CreatedAt: now.Add(-2 * time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Message{Text: "3", SenderID: carol.ID, RecipientID: alice.ID, CreatedAt: now.Add(-time.Minute)}).Error)

	partners, err := svc.Conversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, partners, 2)
	// most recent conversation first, each partner once
	assert.Equal(t, "carol", partners[0].Username)
	assert.Equal(t, "bob", partners[1].Username)
}
