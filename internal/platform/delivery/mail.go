package delivery

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"shiftpay/internal/platform/config"
)

const (
	textSubject  = "Payroll report"
	imageSubject = "Schedule"
)

// Mail sends reports through an SMTP relay.
type Mail struct {
	cfg config.Config
}

func NewMail(cfg config.Config) *Mail {
	return &Mail{cfg: cfg}
}

func (m *Mail) SendText(ctx context.Context, text string) error {
	return m.send(ctx, buildTextMessage(m.cfg.EmailFrom, m.cfg.EmailTo, textSubject, text))
}

func (m *Mail) SendImage(ctx context.Context, filename string, png []byte) error {
	msg, err := buildImageMessage(m.cfg.EmailFrom, m.cfg.EmailTo, imageSubject, filename, png)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *Mail) send(ctx context.Context, msg []byte) error {
	to := strings.TrimSpace(m.cfg.EmailTo)
	if to == "" {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	timeout := m.cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if m.cfg.SMTPUseTLS {
		tlsConfig := &tls.Config{ServerName: m.cfg.SMTPHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if m.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(m.cfg.EmailFrom); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildTextMessage(from, to, subject, body string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + body)
}

func buildImageMessage(from, to, subject, filename string, png []byte) ([]byte, error) {
	var body bytes.Buffer
	parts := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "image/png")
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	part, err := parts.CreatePart(header)
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(png)
	for len(encoded) > 76 {
		if _, err := part.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return nil, err
		}
		encoded = encoded[76:]
	}
	if _, err := part.Write([]byte(encoded + "\r\n")); err != nil {
		return nil, err
	}
	if err := parts.Close(); err != nil {
		return nil, err
	}

	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", parts.Boundary()),
		"",
	}
	return append([]byte(strings.Join(headers, "\r\n")+"\r\n"), body.Bytes()...), nil
}
