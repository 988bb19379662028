package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "locks:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out best-effort mutual exclusion across processes sharing one Redis
type Locker struct {
	client redis.UniversalClient
}

func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{client: client}
}

// Lock is a held lock; Release only deletes it while this holder still owns it
type Lock struct {
	client redis.UniversalClient
	key    string
	token  string
}

// TryLock returns nil without error when somebody else holds the lock
func (l *Locker) TryLock(ctx context.Context, name string, ttl time.Duration) (*Lock, error) {
	key := lockPrefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return &Lock{client: l.client, key: key, token: token}, nil
}

func (l *Lock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
}
