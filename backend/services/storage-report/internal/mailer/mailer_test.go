package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

const csvBody = "\"Acme\",\"pc-01\",\"node-a\"\r\n"

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage_report.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o600))
	return path
}

func testMailer(sender Sender) *Mailer {
	m := New(sender, Options{From: "reports@example.com", To: "ops@example.com"}, nil)
	m.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }
	return m
}

func TestComposeBuildsReportMessage(t *testing.T) {
	path := writeCSV(t)
	m := testMailer(nil)

	msg, err := m.Compose("acme", path, "run-123")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: MSP Backup Storage Report acme")
	assert.Contains(t, raw, "reports@example.com")
	assert.Contains(t, raw, "ops@example.com")
	assert.Contains(t, raw, "run-123@storage-report")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "text/csv")
	assert.Contains(t, raw, `filename="storage_report.csv"`)
	assert.Contains(t, raw, base64.StdEncoding.EncodeToString([]byte(csvBody)))
}

func TestComposeRejectsMissingAttachmentAndBadAddresses(t *testing.T) {
	m := testMailer(nil)
	_, err := m.Compose("acme", filepath.Join(t.TempDir(), "missing.csv"), "run")
	assert.Error(t, err)

	path := writeCSV(t)
	bad := New(nil, Options{From: "not an address", To: "ops@example.com"}, nil)
	_, err = bad.Compose("acme", path, "run")
	assert.Error(t, err)

	bad = New(nil, Options{From: "reports@example.com", To: ""}, nil)
	_, err = bad.Compose("acme", path, "run")
	assert.Error(t, err)
}

func TestSendReport(t *testing.T) {
	path := writeCSV(t)
	sender := &fakeSender{}
	m := testMailer(sender)

	require.NoError(t, m.SendReport(context.Background(), "acme", path, "run-1"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"MSP Backup Storage Report acme"}, sender.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSendReportPropagatesRelayError(t *testing.T) {
	path := writeCSV(t)
	relayErr := errors.New("550 relay denied")
	m := testMailer(&fakeSender{err: relayErr})

	err := m.SendReport(context.Background(), "acme", path, "run-1")
	assert.ErrorIs(t, err, relayErr)

	err = testMailer(nil).SendReport(context.Background(), "acme", path, "run-1")
	assert.Error(t, err)
}

func TestNewSMTPSender(t *testing.T) {
	client, err := NewSMTPSender(Options{Server: "mail.example.com", Port: 25})
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = NewSMTPSender(Options{Server: "mail.example.com", Port: 587, TLS: TLSOpportunistic, Timeout: time.Second})
	require.NoError(t, err)

	_, err = NewSMTPSender(Options{Server: "mail.example.com", Port: 25, TLS: "mandatory-ish"})
	assert.Error(t, err)

	_, err = NewSMTPSender(Options{Server: "", Port: 25})
	assert.Error(t, err)
}
