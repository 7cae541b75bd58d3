package notifysvc

import (
	"sync"
	"time"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

const (
	// maxPending bounds the toasts kept per session; older ones are dropped.
	maxPending = 5
	// pendingTTL is how long undrained toasts are kept.
	pendingTTL = 10 * time.Minute
)

var nowFunc = time.Now // mockable

type flash struct {
	toasts []portal.Toast
	at     time.Time
}

// FlashNotifier logs every toast and keeps the latest ones per session until the
// shell drains them on its next render.
type FlashNotifier struct {
	log core.Logger

	mu      sync.Mutex
	pending map[string]flash
	sweptAt time.Time
}

var _ portal.Notifier = (*FlashNotifier)(nil)

func NewFlashNotifier(logger core.Logger) *FlashNotifier {
	return &FlashNotifier{
		log:     logger,
		pending: make(map[string]flash),
	}
}

func (n *FlashNotifier) Notify(sessionID string, toast portal.Toast) {
	n.log.Debug("toast", map[string]interface{}{
		"session": sessionID,
		"level":   toast.Level,
		"message": toast.Message,
	})

	now := nowFunc()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sweep(now)

	f := n.pending[sessionID]
	f.toasts = append(f.toasts, toast)
	if len(f.toasts) > maxPending {
		f.toasts = f.toasts[len(f.toasts)-maxPending:]
	}
	f.at = now
	n.pending[sessionID] = f
}

// sweep drops the toasts of sessions that never came back, at most once per pendingTTL.
func (n *FlashNotifier) sweep(now time.Time) {
	if now.Sub(n.sweptAt) < pendingTTL {
		return
	}
	for id, f := range n.pending {
		if now.Sub(f.at) >= pendingTTL {
			delete(n.pending, id)
		}
	}
	n.sweptAt = now
}

// Drain returns and forgets the pending toasts of a session, oldest first.
func (n *FlashNotifier) Drain(sessionID string) []portal.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	f, ok := n.pending[sessionID]
	if !ok {
		return nil
	}
	delete(n.pending, sessionID)
	if nowFunc().Sub(f.at) >= pendingTTL {
		return nil
	}
	return f.toasts
}
