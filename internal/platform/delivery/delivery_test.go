package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftpay/internal/platform/config"
)

func TestRelaySendText(t *testing.T) {
	var got textMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	relay := NewRelay(srv.URL, "-100", time.Second)
	require.NoError(t, relay.SendText(context.Background(), "Итого: 3200"))
	assert.Equal(t, textMessage{ChatID: "-100", Text: "Итого: 3200"}, got)
}

func TestRelaySendImage(t *testing.T) {
	png := []byte("\x89PNG fake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "-100", r.FormValue("chat_id"))
		file, header, err := r.FormFile("photo")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "schedule.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, png, data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewRelay(srv.URL, "-100", time.Second).SendImage(context.Background(), "schedule.png", png))
}

func TestRelayRejections(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		},
		"ok false": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			err := NewRelay(srv.URL, "-100", time.Second).SendText(context.Background(), "x")
			require.True(t, errors.Is(err, ErrRejected), "got %v", err)
		})
	}
}

func TestRelayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	err := NewRelay(url, "-100", time.Second).SendText(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}

func TestNewSelectsDriver(t *testing.T) {
	cfg := config.Config{DeliveryDriver: "relay", DeliveryURL: "http://relay", DeliveryChatID: "1"}
	assert.IsType(t, &Relay{}, New(cfg))
	cfg.DeliveryDriver = "smtp"
	assert.IsType(t, &Mail{}, New(cfg))
	cfg.DeliveryDriver = "none"
	assert.IsType(t, Noop{}, New(cfg))
	require.NoError(t, Noop{}.SendText(context.Background(), "x"))
}

func TestBuildImageMessage(t *testing.T) {
	png := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 50)
	raw, err := buildImageMessage("from@example.com", "to@example.com", "Schedule", "schedule.png", png)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Schedule", msg.Header.Get("Subject"))
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	part, err := multipart.NewReader(msg.Body, params["boundary"]).NextPart()
	require.NoError(t, err)
	assert.Equal(t, "schedule.png", part.FileName())
	encoded, err := io.ReadAll(part)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, png, decoded)
}

func TestBuildTextMessage(t *testing.T) {
	raw := buildTextMessage("a@example.com", "b@example.com", "Payroll report", "Итого: 1")
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	body, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "Итого: 1", string(body))
}
