package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetchCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("Имя;01.03\r\nAlice;1\r\n"))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL+"/pub?output=csv", FormatAuto, 5*time.Second)
	table, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Имя", "01.03"}, {"Alice", "1"}}, table.Rows)
}

func TestHTTPFetchReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, FormatCSV, time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetchRejectsOversizedPayload(t *testing.T) {
	payload := "Имя;01.03\r\nAlice;1\r\nBob;1\r\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, FormatCSV, time.Second)
	src.MaxBytes = int64(len(payload)) - 1
	_, err := src.Fetch(context.Background())
	require.ErrorIs(t, err, ErrTooLarge)

	src.MaxBytes = int64(len(payload))
	table, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
}

func TestHTTPFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTP(srv.URL, FormatCSV, time.Second).Fetch(ctx)
	require.Error(t, err)
}

func TestFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,01.03\nBob,3\n"), 0o600))

	table, err := File{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "01.03"}, {"Bob", "3"}}, table.Rows)

	_, err = File{Path: filepath.Join(t.TempDir(), "missing.csv")}.Fetch(context.Background())
	require.Error(t, err)
}
