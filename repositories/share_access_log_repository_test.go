package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedisShareAccessLogKeepsNewestEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := NewRedisShareAccessLogRepository(client, 2, 60)
	ctx := context.Background()
	clientID := uint(9)
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		entry := models.ShareAccess{ShareLinkID: 5, AccessCount: int64(i), AccessedAt: base.Add(time.Duration(i) * time.Minute)}
		if i == 3 {
			entry.ClientID = &clientID
		}
		require.NoError(t, repo.Append(ctx, entry))
	}

	entries, err := repo.Recent(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].AccessCount)
	require.NotNil(t, entries[0].ClientID)
	assert.Equal(t, clientID, *entries[0].ClientID)
	assert.Equal(t, int64(2), entries[1].AccessCount)
	assert.Equal(t, 60*time.Second, mr.TTL(shareAccessKey(5)))

	require.NoError(t, repo.Clear(ctx, 5))
	assert.False(t, mr.Exists(shareAccessKey(5)))
}

func TestRedisShareAccessLogPropagatesErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Replace(zap.New(core))
	defer logger.Replace(nil)

	db, mock := redismock.NewClientMock()
	repo := NewRedisShareAccessLogRepository(db, 10, 0)
	entry := models.ShareAccess{ShareLinkID: 1, AccessCount: 1, AccessedAt: time.Unix(0, 0).UTC()}
	payload, err := json.Marshal(entry)
	require.NoError(t, err)

	mock.ExpectLPush(shareAccessKey(1), string(payload)).SetErr(errors.New("redis down"))
	assert.EqualError(t, repo.Append(context.Background(), entry), "redis down")

	mock.ExpectLRange(shareAccessKey(1), 0, 4).SetVal([]string{string(payload), "not-json"})
	entries, err := repo.Recent(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(1), entries[0].ShareLinkID)

	warned := logs.FilterMessage("skipping undecodable share access entry").All()
	require.Len(t, warned, 1)
	assert.Equal(t, shareAccessKey(1), warned[0].ContextMap()["key"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopShareAccessLog(t *testing.T) {
	var repo ShareAccessLogRepository = NoopShareAccessLogRepository{}
	require.NoError(t, repo.Append(context.Background(), models.ShareAccess{ShareLinkID: 1}))
	entries, err := repo.Recent(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
