// README: Transition audit log backed by PostgreSQL.
package order

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventLog persists accepted status transitions to the order_status_events
// table. The dashboard never reads this table; it exists for offline audits
// of courier and kitchen timing.
type EventLog struct {
	db *pgxpool.Pool
}

func NewEventLog(db *pgxpool.Pool) *EventLog {
	return &EventLog{db: db}
}

func (l *EventLog) AppendTransition(ctx context.Context, e TransitionEvent) error {
	_, err := l.db.Exec(ctx, `
        INSERT INTO order_status_events (
            order_id, restaurant_id, from_status, to_status, created_at
        ) VALUES ($1, $2, $3, $4, $5)`,
		e.OrderID,
		string(e.RestaurantID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.CreatedAt,
	)
	return err
}
