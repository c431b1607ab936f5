package drafts

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type draftStore struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
	Log       *zap.Logger
}

// NewDraftStore keeps drafts in redis. A zero ttl keeps them until cleared.
func NewDraftStore(repo contracts.RedisRepository, ttl time.Duration, logger *zap.Logger) contracts.DraftStore {
	return &draftStore{
		redisRepo: repo,
		ttl:       ttl,
		Log:       logger,
	}
}

func (s *draftStore) Save(ctx context.Context, key string, value interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := s.redisRepo.Set(ctx, key, value, s.ttl)
	if err != nil {
		s.Log.Error("draftStore.Save error calling redisRepo.Set",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *draftStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	raw, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		s.Log.Error("draftStore.Load error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, err
	}
	if raw == "" {
		return false, nil
	}

	err = json.Unmarshal([]byte(raw), dst)
	if err != nil {
		s.Log.Error("draftStore.Load error unmarshaling draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, exceptions.ErrCannotParseJSON(err)
	}
	return true, nil
}

func (s *draftStore) Clear(ctx context.Context, keys ...string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := s.redisRepo.Delete(ctx, keys...)
	if err != nil {
		s.Log.Error("draftStore.Clear error calling redisRepo.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings(constvars.LoggingRedisKey, keys),
			zap.Error(err),
		)
		return err
	}
	return nil
}
