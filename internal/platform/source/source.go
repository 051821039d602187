package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"shiftpay/internal/domain/schedule"
)

// DefaultMaxBytes caps a fetched schedule payload.
const DefaultMaxBytes = 10 << 20

// ErrTooLarge means the payload exceeded MaxBytes and was not parsed.
var ErrTooLarge = errors.New("schedule payload too large")

// HTTP fetches a published spreadsheet over HTTP.
type HTTP struct {
	URL      string
	Format   Format
	Client   *http.Client
	MaxBytes int64
}

func NewHTTP(url string, format Format, timeout time.Duration) *HTTP {
	return &HTTP{
		URL:      url,
		Format:   format,
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: DefaultMaxBytes,
	}
}

func (s *HTTP) Fetch(ctx context.Context) (schedule.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return schedule.Table{}, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return schedule.Table{}, fmt.Errorf("fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return schedule.Table{}, fmt.Errorf("fetch schedule: unexpected status %s", resp.Status)
	}
	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return schedule.Table{}, fmt.Errorf("read schedule: %w", err)
	}
	if int64(len(data)) > limit {
		return schedule.Table{}, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}

	format := s.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(data, resp.Header.Get("Content-Type"), s.URL)
	}
	return Decode(data, format)
}

// File reads a schedule export from disk.
type File struct {
	Path   string
	Format Format
}

func (s File) Fetch(_ context.Context) (schedule.Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return schedule.Table{}, fmt.Errorf("read schedule file: %w", err)
	}
	format := s.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(data, "", s.Path)
	}
	return Decode(data, format)
}
