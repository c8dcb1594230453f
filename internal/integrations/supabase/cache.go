package supabase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

const tokenKeyPrefix = "auth:token:"

// CachedVerifier кэширует результат проверки токена в Redis на ttl.
// Недоступность Redis не ломает аутентификацию: запрос уходит в провайдер.
type CachedVerifier struct {
	next    Verifier
	rdb     RedisClient
	ttl     time.Duration
	log     Logger
	metrics LookupRecorder
}

// NewCachedVerifier создает кэширующую обертку над Verifier. recorder может быть nil.
func NewCachedVerifier(next Verifier, rdb RedisClient, ttl time.Duration, log Logger, recorder LookupRecorder) *CachedVerifier {
	return &CachedVerifier{
		next:    next,
		rdb:     rdb,
		ttl:     ttl,
		log:     log,
		metrics: recorder,
	}
}

// GetUser возвращает пользователя из кэша или проверяет токен у провайдера
func (v *CachedVerifier) GetUser(ctx context.Context, token string) (*AuthUser, error) {
	key := tokenKey(token)

	raw, err := v.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var user AuthUser
		if jsonErr := json.Unmarshal(raw, &user); jsonErr == nil && user.ID != "" {
			v.record(metrics.ResultHit)
			return &user, nil
		}
		v.log.Warn("CachedVerifier: corrupted cache entry, refetching")
	case errors.Is(err, redis.Nil):
	default:
		v.log.Warn("CachedVerifier: redis get failed: %v", err)
	}

	v.record(metrics.ResultMiss)

	user, err := v.next.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(user)
	if err == nil {
		if setErr := v.rdb.Set(ctx, key, data, v.ttl).Err(); setErr != nil {
			v.log.Warn("CachedVerifier: redis set failed: %v", setErr)
		}
	}

	return user, nil
}

func (v *CachedVerifier) record(result string) {
	if v.metrics != nil {
		v.metrics.IncIdentityLookup(result)
	}
}

// tokenKey сам токен в Redis не попадает, только его хэш
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return tokenKeyPrefix + hex.EncodeToString(sum[:])
}
