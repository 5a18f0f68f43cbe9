package service

import (
	"testing"

	"safechain/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatQuotaEnforced(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	cfg.Platform.ChatDailyLimit = 3
	svc := NewChatService(cfg, repository.NewChatRepository(db))
	user := createUser(t, db, "chatter", 0)

	for i := 3; i > 0; i-- {
		reply, err := svc.Ask(user.ID, "how do I deposit?")
		require.NoError(t, err)
		assert.Equal(t, i-1, reply.Remaining)
		assert.NotEmpty(t, reply.Reply)
	}

	_, err := svc.Ask(user.ID, "one more")
	assert.ErrorIs(t, err, ErrChatQuotaExceeded)
}

func TestChatRepliesMatchTopic(t *testing.T) {
	db := testDB(t)
	svc := NewChatService(testConfig(), repository.NewChatRepository(db))
	user := createUser(t, db, "chatter", 0)

	reply, err := svc.Ask(user.ID, "How long do withdrawals take?")
	require.NoError(t, err)
	assert.Contains(t, reply.Reply, "Withdrawals")

	reply, err = svc.Ask(user.ID, "tell me about referrals")
	require.NoError(t, err)
	assert.Contains(t, reply.Reply, "referral")
}
