package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

func seedChatUsers(t *testing.T, db *gorm.DB) (client, tasker, bystander domain.User) {
	client = domain.User{Name: "Client", Email: "client@chat.test", PasswordHash: "x", Role: domain.RoleClient}
	tasker = domain.User{Name: "Tasker", Email: "tasker@chat.test", PasswordHash: "x", Role: domain.RoleTasker}
	bystander = domain.User{Name: "Bystander", Email: "bystander@chat.test", PasswordHash: "x", Role: domain.RoleTasker}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&tasker).Error)
	require.NoError(t, db.Create(&bystander).Error)
	return client, tasker, bystander
}

func TestMessageConversation_BothDirections(t *testing.T) {
	db := setupDB(t)
	client, tasker, bystander := seedChatUsers(t, db)

	repo := NewMessageRepository(db)
	ctx := context.Background()

	first := domain.Message{SenderID: client.ID, ReceiverID: tasker.ID, Body: "When can you start?"}
	reply := domain.Message{SenderID: tasker.ID, ReceiverID: client.ID, Body: "Tomorrow morning"}
	noise := domain.Message{SenderID: bystander.ID, ReceiverID: client.ID, Body: "Unrelated"}
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Create(ctx, &reply))
	require.NoError(t, repo.Create(ctx, &noise))

	// both sides see the same two messages in send order
	for _, userID := range []int64{client.ID, tasker.ID} {
		otherID := tasker.ID
		if userID == tasker.ID {
			otherID = client.ID
		}
		conv, err := repo.ListConversation(ctx, userID, otherID, nil, 50)
		require.NoError(t, err)
		require.Len(t, conv, 2)
		assert.Equal(t, first.ID, conv[0].ID)
		assert.Equal(t, reply.ID, conv[1].ID)
	}
}

func TestMessageConversation_BookingFilter(t *testing.T) {
	db := setupDB(t)
	client, tasker, _ := seedChatUsers(t, db)

	booking := domain.Booking{TaskID: 1, ClientID: client.ID, TaskerID: tasker.ID, Status: domain.BookingScheduled, PaymentStatus: domain.BookingPaymentPending}
	require.NoError(t, db.Create(&booking).Error)

	repo := NewMessageRepository(db)
	ctx := context.Background()

	general := domain.Message{SenderID: client.ID, ReceiverID: tasker.ID, Body: "Hi"}
	pinned := domain.Message{SenderID: client.ID, ReceiverID: tasker.ID, BookingID: &booking.ID, Body: "Gate code is 4711"}
	require.NoError(t, repo.Create(ctx, &general))
	require.NoError(t, repo.Create(ctx, &pinned))

	conv, err := repo.ListConversation(ctx, client.ID, tasker.ID, &booking.ID, 50)
	require.NoError(t, err)
	require.Len(t, conv, 1)
	assert.Equal(t, pinned.ID, conv[0].ID)
}

func TestMessageMarkRead_ReceiverOnlyAndIdempotent(t *testing.T) {
	db := setupDB(t)
	client, tasker, _ := seedChatUsers(t, db)

	repo := NewMessageRepository(db)
	ctx := context.Background()

	m := domain.Message{SenderID: client.ID, ReceiverID: tasker.ID, Body: "Ping"}
	require.NoError(t, repo.Create(ctx, &m))

	unread, err := repo.ListUnread(ctx, tasker.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	// the sender cannot mark the receiver's copy read
	ok, err := repo.MarkRead(ctx, m.ID, client.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)

	firstRead := time.Now().UTC()
	ok, err = repo.MarkRead(ctx, m.ID, tasker.ID, firstRead)
	require.NoError(t, err)
	assert.True(t, ok)

	var stamped domain.Message
	require.NoError(t, db.First(&stamped, m.ID).Error)
	require.NotNil(t, stamped.ReadAt)
	assert.True(t, stamped.IsRead())

	// a second call keeps the original timestamp
	ok, err = repo.MarkRead(ctx, m.ID, tasker.ID, firstRead.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	var again domain.Message
	require.NoError(t, db.First(&again, m.ID).Error)
	require.NotNil(t, again.ReadAt)
	assert.True(t, again.ReadAt.Equal(*stamped.ReadAt))

	unread, err = repo.ListUnread(ctx, tasker.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
