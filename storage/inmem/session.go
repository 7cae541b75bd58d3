package inmem

import (
	"context"
	"time"

	"github.com/trezcool/masomo-portal/core/portal"
)

type sessionStore struct {
	db  *sessionTable
	ttl time.Duration
}

// NewSessionStore returns a portal.SessionStore keeping sessions in memory.
// Sessions expire ttl after their last save; a zero ttl never expires.
func NewSessionStore(db *DB, ttl time.Duration) portal.SessionStore {
	return &sessionStore{db: db.session, ttl: ttl}
}

func (store *sessionStore) Get(_ context.Context, id string) (portal.Session, error) {
	store.db.RLock()
	row, ok := store.db.table[id]
	store.db.RUnlock()

	if !ok {
		return portal.Session{}, portal.ErrSessionNotFound
	}
	if row.expired(nowFunc()) {
		store.db.Lock()
		delete(store.db.table, id)
		store.db.Unlock()
		return portal.Session{}, portal.ErrSessionNotFound
	}
	return row.sess, nil
}

// Save stores sess until ttl from now. Abandoned sessions are swept from Save,
// at most once per ttl, so an expired row lives no longer than twice the ttl.
func (store *sessionStore) Save(_ context.Context, sess portal.Session) error {
	now := nowFunc()
	row := sessionRow{sess: sess}
	if store.ttl > 0 {
		row.expiresAt = now.Add(store.ttl)
	}

	store.db.Lock()
	defer store.db.Unlock()
	if store.ttl > 0 && now.Sub(store.db.sweptAt) >= store.ttl {
		for id, r := range store.db.table {
			if r.expired(now) {
				delete(store.db.table, id)
			}
		}
		store.db.sweptAt = now
	}
	store.db.table[sess.ID] = row
	return nil
}

func (store *sessionStore) Delete(_ context.Context, id string) error {
	store.db.Lock()
	defer store.db.Unlock()
	delete(store.db.table, id)
	return nil
}
