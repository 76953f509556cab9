// README: One-shot new-order arrival notifications.
package order

import (
	"log/slog"
	"sync"
)

// Notifier watches successive feed snapshots and fires a single alert when
// the undelivered-order count grows. The first snapshot only records the
// baseline count; orders already queued when the watch starts never alert.
// The alert stays gated until Unlock is called, mirroring the browser
// autoplay rule that blocks the notification sound before the first user
// interaction. The count is tracked regardless of the gate, so arrivals
// seen while locked are not replayed once unlocked.
type Notifier struct {
	mu       sync.Mutex
	seen     bool
	prev     int
	unlocked bool
	alert    func() error
	log      *slog.Logger
}

// NewNotifier builds a locked notifier. alert may be nil when the caller
// reads the Observe return value instead.
func NewNotifier(alert func() error, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{alert: alert, log: log}
}

// Unlock arms the notifier after the first user interaction.
func (n *Notifier) Unlock() {
	n.mu.Lock()
	n.unlocked = true
	n.mu.Unlock()
}

// Observe ingests a feed snapshot and reports whether an alert fired.
// Alert delivery failures are swallowed; a blocked sound must not disturb
// the order flow.
func (n *Notifier) Observe(orders []Order) bool {
	count := len(orders)

	n.mu.Lock()
	fired := n.seen && count > n.prev && n.unlocked
	n.seen = true
	n.prev = count
	n.mu.Unlock()

	if fired && n.alert != nil {
		if err := n.alert(); err != nil {
			n.log.Debug("new-order alert delivery failed", "error", err)
		}
	}
	return fired
}
