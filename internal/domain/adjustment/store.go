package adjustment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// StorageKey is the single key holding every adjustment annotation.
const StorageKey = "shiftpay.adjustments.v1"

// KV is the flat string key-value substrate the store persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Sealer encrypts the stored document at rest.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Recorder keeps a history of changes. A failed record is logged and
// never fails the change itself.
type Recorder interface {
	Record(ctx context.Context, action, subject, before, after string) error
}

// History actions.
const (
	ActionSet    = "adjustment.set"
	ActionDelete = "adjustment.delete"
	ActionClear  = "adjustment.clear"
)

// Store maps employee names to free-text adjustment annotations. The
// mapping is not scoped to a payroll period.
type Store struct {
	kv       KV
	sealer   Sealer
	recorder Recorder

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

type Option func(*Store)

func WithSealer(sealer Sealer) Option {
	return func(s *Store) {
		s.sealer = sealer
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Store) {
		s.recorder = recorder
	}
}

func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the annotation for name, or "" when none is stored.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	all, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return all[name], nil
}

// Set stores text verbatim. Blank text removes the record.
func (s *Store) Set(ctx context.Context, name, text string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	before, existed := all[name]
	action := ActionSet
	if strings.TrimSpace(text) == "" {
		if !existed {
			return nil
		}
		delete(all, name)
		action = ActionDelete
		text = ""
	} else {
		if existed && before == text {
			return nil
		}
		all[name] = text
	}
	if err := s.write(ctx, all); err != nil {
		return err
	}
	s.record(ctx, action, name, before, text)
	return nil
}

// Clear drops every stored adjustment.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := s.clear(ctx); err != nil {
		return err
	}
	if len(all) > 0 {
		s.record(ctx, ActionClear, "", fmt.Sprintf("%d adjustments", len(all)), "")
	}
	return nil
}

func (s *Store) record(ctx context.Context, action, name, before, after string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, action, name, before, after); err != nil {
		slog.WarnContext(ctx, "adjustment history not recorded", "action", action, "err", err)
	}
}

func (s *Store) clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear adjustments: %w", err)
	}
	return nil
}

// Snapshot returns a copy of every stored annotation. Unreadable content is
// treated as no adjustments; only substrate failures are returned.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read adjustments: %w", err)
	}
	out := map[string]string{}
	if !ok || strings.TrimSpace(raw) == "" {
		return out, nil
	}
	payload, err := s.open(raw)
	if err != nil {
		slog.Debug("stored adjustments unreadable", "err", err)
		return out, nil
	}
	var stored map[string]string
	if err := json.Unmarshal(payload, &stored); err != nil {
		slog.Debug("stored adjustments corrupt", "err", err)
		return out, nil
	}
	for name, text := range stored {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out[name] = text
	}
	return out, nil
}

func (s *Store) write(ctx context.Context, all map[string]string) error {
	if len(all) == 0 {
		return s.clear(ctx)
	}
	payload, err := json.Marshal(all)
	if err != nil {
		return err
	}
	value, err := s.seal(payload)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, StorageKey, value); err != nil {
		return fmt.Errorf("write adjustments: %w", err)
	}
	return nil
}

func (s *Store) seal(payload []byte) (string, error) {
	if s.sealer == nil {
		return string(payload), nil
	}
	sealed, err := s.sealer.Seal(payload)
	if err != nil {
		return "", fmt.Errorf("seal adjustments: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *Store) open(raw string) ([]byte, error) {
	if s.sealer == nil {
		return []byte(raw), nil
	}
	sealed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	return s.sealer.Open(sealed)
}
