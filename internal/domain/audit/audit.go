package audit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shiftpay/internal/requestctx"
)

// StorageKey holds the event list.
const StorageKey = "shiftpay.audit.v1"

// DefaultMaxEvents bounds the stored history; older events are dropped.
const DefaultMaxEvents = 500

type Event struct {
	ID        string    `json:"id" csv:"id"`
	Action    string    `json:"action" csv:"action"`
	Subject   string    `json:"subject,omitempty" csv:"subject"`
	Before    string    `json:"before,omitempty" csv:"before"`
	After     string    `json:"after,omitempty" csv:"after"`
	RequestID string    `json:"requestId,omitempty" csv:"request_id"`
	CreatedAt time.Time `json:"createdAt" csv:"created_at"`
}

type Filter struct {
	Action  string
	Subject string
}

func (f Filter) match(evt Event) bool {
	if f.Action != "" && evt.Action != f.Action {
		return false
	}
	if f.Subject != "" && evt.Subject != f.Subject {
		return false
	}
	return true
}

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Log is an append-only history of adjustment changes kept in the same
// key-value substrate as the adjustments themselves.
type Log struct {
	kv     KV
	sealer Sealer
	max    int
	now    func() time.Time

	mu sync.Mutex
}

type Option func(*Log)

func WithSealer(sealer Sealer) Option {
	return func(l *Log) { l.sealer = sealer }
}

func WithMaxEvents(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.max = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

func New(kv KV, opts ...Option) *Log {
	l := &Log{kv: kv, max: DefaultMaxEvents, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends one event. The request id is taken from ctx.
func (l *Log) Record(ctx context.Context, action, subject, before, after string) error {
	evt := Event{
		ID:        uuid.NewString(),
		Action:    action,
		Subject:   subject,
		Before:    before,
		After:     after,
		RequestID: requestctx.GetRequestID(ctx),
		CreatedAt: l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	events, err := l.load(ctx)
	if err != nil {
		return err
	}
	events = append(events, evt)
	if len(events) > l.max {
		events = append([]Event(nil), events[len(events)-l.max:]...)
	}
	return l.save(ctx, events)
}

// Count returns how many events match filter.
func (l *Log) Count(ctx context.Context, filter Filter) (int, error) {
	events, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, evt := range events {
		if filter.match(evt) {
			total++
		}
	}
	return total, nil
}

// List returns matching events newest first.
func (l *Log) List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error) {
	events, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		if filter.match(events[i]) {
			out = append(out, events[i])
		}
	}
	if offset >= len(out) {
		return []Event{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (l *Log) load(ctx context.Context) ([]Event, error) {
	raw, ok, err := l.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	payload := []byte(raw)
	if l.sealer != nil {
		sealed, err := base64.StdEncoding.DecodeString(raw)
		if err == nil {
			payload, err = l.sealer.Open(sealed)
		}
		if err != nil {
			slog.Debug("audit log unreadable", "err", err)
			return nil, nil
		}
	}
	var events []Event
	if err := json.Unmarshal(payload, &events); err != nil {
		slog.Debug("audit log corrupt", "err", err)
		return nil, nil
	}
	return events, nil
}

func (l *Log) save(ctx context.Context, events []Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	value := string(payload)
	if l.sealer != nil {
		sealed, err := l.sealer.Seal(payload)
		if err != nil {
			return fmt.Errorf("seal audit log: %w", err)
		}
		value = base64.StdEncoding.EncodeToString(sealed)
	}
	if err := l.kv.Set(ctx, StorageKey, value); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}
