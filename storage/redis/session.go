// Package redis keeps portal sessions in Redis, so several portal instances can share them.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

const defaultPrefix = "masomo:session"

// Open connects to Redis and pings it.
func Open(ctx context.Context, conf core.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pinging redis at %s", conf.Addr)
	}
	return client, nil
}

type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore returns a portal.SessionStore backed by client.
// Keys are "<prefix>:<session id>" and expire ttl after the last save (0: never).
func NewSessionStore(client *redis.Client, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (store *SessionStore) key(id string) string {
	return store.prefix + ":" + id
}

func (store *SessionStore) Get(ctx context.Context, id string) (portal.Session, error) {
	data, err := store.client.Get(ctx, store.key(id)).Bytes()
	if err == redis.Nil {
		return portal.Session{}, portal.ErrSessionNotFound
	}
	if err != nil {
		return portal.Session{}, errors.Wrap(err, "getting session")
	}

	var sess portal.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return portal.Session{}, errors.Wrap(err, "decoding session")
	}
	return sess, nil
}

func (store *SessionStore) Save(ctx context.Context, sess portal.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(store.client.Set(ctx, store.key(sess.ID), data, store.ttl).Err(), "saving session")
}

func (store *SessionStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(store.client.Del(ctx, store.key(id)).Err(), "deleting session")
}
