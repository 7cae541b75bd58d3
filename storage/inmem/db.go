package inmem

import (
	"sync"
	"time"

	"github.com/trezcool/masomo-portal/core/portal"
	"github.com/trezcool/masomo-portal/core/user"
)

var nowFunc = time.Now // mockable

type (
	// DB is a process-local database. Everything is lost on restart.
	DB struct {
		user    *userTable
		session *sessionTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	sessionTable struct {
		sync.RWMutex
		table   map[string]sessionRow
		sweptAt time.Time
	}

	sessionRow struct {
		sess      portal.Session
		expiresAt time.Time
	}
)

func Open() *DB {
	return &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		session: &sessionTable{table: make(map[string]sessionRow)},
	}
}

func (row sessionRow) expired(now time.Time) bool {
	return !row.expiresAt.IsZero() && !now.Before(row.expiresAt)
}
