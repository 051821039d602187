package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Relay posts messages to a chat relay endpoint: JSON for text and a
// multipart form for photos, both addressed by chat id.
type Relay struct {
	URL    string
	ChatID string
	Client *http.Client
}

func NewRelay(url, chatID string, timeout time.Duration) *Relay {
	return &Relay{URL: url, ChatID: chatID, Client: &http.Client{Timeout: timeout}}
}

type textMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type relayReply struct {
	OK          *bool  `json:"ok"`
	Description string `json:"description"`
}

func (r *Relay) SendText(ctx context.Context, text string) error {
	payload, err := json.Marshal(textMessage{ChatID: r.ChatID, Text: text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req)
}

func (r *Relay) SendImage(ctx context.Context, filename string, png []byte) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("chat_id", r.ChatID); err != nil {
		return err
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, filename))
	header.Set("Content-Type", "image/png")
	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(png); err != nil {
		return err
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return r.do(req)
}

func (r *Relay) do(req *http.Request) error {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("relay response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var reply relayReply
	if err := json.Unmarshal(body, &reply); err == nil && reply.OK != nil && !*reply.OK {
		return fmt.Errorf("%w: %s", ErrRejected, reply.Description)
	}
	return nil
}
