package postgres

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	listenerMinBackoff = 500 * time.Millisecond
	listenerMaxBackoff = 30 * time.Second
)

type notificationConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

var connectListener = func(ctx context.Context, dsn string) (notificationConn, error) {
	return pgx.Connect(ctx, dsn)
}

// Listener receives order change notifications on a dedicated connection.
// Each notification payload is the id of the delivery actor whose orders changed.
type Listener struct {
	dsn     string
	channel string
	logger  *slog.Logger
	backoff time.Duration
}

// NewListener creates listener for the order_changes channel.
func NewListener(dsn string, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{dsn: dsn, channel: orderChangesChannel, logger: logger, backoff: listenerMinBackoff}
}

// Listen blocks until ctx is done, calling notify for every received actor id.
// Broken connections are re-established with exponential backoff; the delay
// starts over once a session gets as far as LISTEN.
func (l *Listener) Listen(ctx context.Context, notify func(actorID int64)) error {
	backoff := l.backoff
	for {
		listening, err := l.session(ctx, notify)
		if ctx.Err() != nil {
			return nil
		}
		if listening {
			backoff = l.backoff
		}
		l.logger.Warn("order change listener disconnected",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", backoff),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		backoff *= 2
		if backoff > listenerMaxBackoff {
			backoff = listenerMaxBackoff
		}
	}
}

func (l *Listener) session(ctx context.Context, notify func(int64)) (bool, error) {
	conn, err := connectListener(ctx, l.dsn)
	if err != nil {
		return false, err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return false, err
	}
	l.logger.Info("listening for order changes", slog.String("channel", l.channel))

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return true, err
		}
		actorID, err := strconv.ParseInt(n.Payload, 10, 64)
		if err != nil {
			l.logger.Warn("malformed order change payload", slog.String("payload", n.Payload))
			continue
		}
		notify(actorID)
	}
}
