package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

const (
	channelName       = "finance_changed"
	reconnectInterval = 5 * time.Second
	pingInterval      = 90 * time.Second
)

// FinanceNotification is the payload sent by the notify_finance_changed trigger.
type FinanceNotification struct {
	Table  string `json:"table"`
	Op     string `json:"op"`
	UserID int64  `json:"user_id"`
}

// Invalidator drops whatever is derived from a user's finance records.
type Invalidator interface {
	Invalidate(ctx context.Context, userID int64) error
	InvalidateAll(ctx context.Context) error
}

// FinanceListener invalidates cached dashboard summaries when incomes, expenses or debts change.
// Notifications sent while the connection is down are lost, so every reconnect
// drops all cached summaries.
type FinanceListener struct {
	connStr     string
	invalidator Invalidator
	shutdownCh  chan struct{}
	done        chan struct{}

	// listenedBefore is only touched by the listen goroutine.
	listenedBefore bool
}

func NewFinanceListener(connStr string, invalidator Invalidator) *FinanceListener {
	return &FinanceListener{
		connStr:     connStr,
		invalidator: invalidator,
		shutdownCh:  make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start begins listening for notifications in a background goroutine
func (l *FinanceListener) Start(ctx context.Context) {
	go l.listen(ctx)
	log.Println("Finance change listener started")
}

// Stop gracefully shuts down the listener
func (l *FinanceListener) Stop() {
	close(l.shutdownCh)
	<-l.done
	log.Println("Finance change listener stopped")
}

func (l *FinanceListener) listen(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		default:
			l.connectAndListen(ctx)
		}

		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		case <-time.After(reconnectInterval):
			log.Println("Reconnecting to PostgreSQL for finance notifications...")
		}
	}
}

func (l *FinanceListener) connectAndListen(ctx context.Context) {
	listener := pq.NewListener(l.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			log.Println("Connected to PostgreSQL notification channel")
		case pq.ListenerEventDisconnected:
			log.Printf("Disconnected from PostgreSQL notification channel: %v", err)
		case pq.ListenerEventReconnected:
			log.Println("Reconnected to PostgreSQL notification channel")
		case pq.ListenerEventConnectionAttemptFailed:
			log.Printf("Connection attempt failed: %v", err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(channelName); err != nil {
		log.Printf("Failed to listen on channel %s: %v", channelName, err)
		return
	}
	log.Printf("Listening on channel: %s", channelName)
	if l.listenedBefore {
		l.resync()
	}
	l.listenedBefore = true

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		case n := <-listener.Notify:
			l.dispatch(n)
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					log.Printf("Listener ping failed: %v", err)
				}
			}()
		}
	}
}

// dispatch handles one value from pq's Notify channel. pq sends nil after it
// re-establishes a dropped connection.
func (l *FinanceListener) dispatch(n *pq.Notification) {
	if n == nil {
		l.resync()
		return
	}
	l.handle(n.Extra)
}

func (l *FinanceListener) resync() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := l.invalidator.InvalidateAll(ctx); err != nil {
		log.Printf("Failed to drop cached summaries after reconnect: %v", err)
		return
	}
	log.Println("Dropped cached summaries after notification gap")
}

func (l *FinanceListener) handle(extra string) {
	payload, err := parseNotification(extra)
	if err != nil {
		log.Printf("Failed to parse finance notification: %v", err)
		return
	}

	// Not the listener context, which is cancelled during shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.invalidator.Invalidate(ctx, payload.UserID); err != nil {
		log.Printf("Failed to invalidate summary for user %d after %s on %s: %v", payload.UserID, payload.Op, payload.Table, err)
	}
}

func parseNotification(extra string) (FinanceNotification, error) {
	var payload FinanceNotification
	if err := json.Unmarshal([]byte(extra), &payload); err != nil {
		return payload, fmt.Errorf("invalid payload %q: %w", extra, err)
	}
	if payload.UserID <= 0 {
		return payload, fmt.Errorf("payload %q has no user_id", extra)
	}
	return payload, nil
}
