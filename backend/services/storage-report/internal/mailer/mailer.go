package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const (
	subjectPrefix  = "MSP Backup Storage Report "
	csvContentType = mail.ContentType("text/csv")

	// TLSNone sends in plaintext, TLSOpportunistic upgrades via STARTTLS when offered.
	TLSNone          = "none"
	TLSOpportunistic = "opportunistic"
)

const htmlBody = `
<!DOCTYPE html>
<html>
<body>

<p><font face="Tahoma" size=2> See attached.</p></font>

</body>
</html>
`

// Sender delivers composed messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Options describes the relay and the envelope addresses.
type Options struct {
	Server      string
	Port        int
	From        string
	To          string
	TLS         string
	Timeout     time.Duration
	MessageHost string
}

// Mailer emails the CSV report as an attachment.
type Mailer struct {
	sender Sender
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// NewSMTPSender builds a go-mail client for the relay. No authentication is
// configured.
func NewSMTPSender(opts Options) (*mail.Client, error) {
	policy := mail.NoTLS
	switch strings.ToLower(strings.TrimSpace(opts.TLS)) {
	case "", TLSNone:
	case TLSOpportunistic:
		policy = mail.TLSOpportunistic
	default:
		return nil, fmt.Errorf("mailer: unknown tls mode %q", opts.TLS)
	}

	clientOpts := []mail.Option{mail.WithPort(opts.Port), mail.WithTLSPolicy(policy)}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, mail.WithTimeout(opts.Timeout))
	}
	client, err := mail.NewClient(opts.Server, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: new client: %w", err)
	}
	return client, nil
}

// New returns mailer.
func New(sender Sender, opts Options, logger *zap.Logger) *Mailer {
	if opts.MessageHost == "" {
		opts.MessageHost = "storage-report"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{sender: sender, opts: opts, logger: logger, now: time.Now}
}

// Compose builds the report message with an HTML body and the CSV file attached.
func (m *Mailer) Compose(partnerName, csvPath, runID string) (*mail.Msg, error) {
	if _, err := os.Stat(csvPath); err != nil {
		return nil, fmt.Errorf("mailer: attachment: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.opts.From); err != nil {
		return nil, fmt.Errorf("mailer: from %q: %w", m.opts.From, err)
	}
	if err := msg.To(m.opts.To); err != nil {
		return nil, fmt.Errorf("mailer: to %q: %w", m.opts.To, err)
	}
	msg.Subject(subjectPrefix + partnerName)
	msg.SetDateWithValue(m.now())
	if runID != "" {
		msg.SetMessageIDWithValue(fmt.Sprintf("%s@%s", runID, m.opts.MessageHost))
	}
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	msg.AttachFile(csvPath, mail.WithFileName(filepath.Base(csvPath)), mail.WithFileContentType(csvContentType))
	return msg, nil
}

// SendReport composes and sends the report. There is no retry.
func (m *Mailer) SendReport(ctx context.Context, partnerName, csvPath, runID string) error {
	if m.sender == nil {
		return errors.New("mailer: no sender configured")
	}
	msg, err := m.Compose(partnerName, csvPath, runID)
	if err != nil {
		return err
	}
	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", m.opts.To, err)
	}
	m.logger.Debug("email sent", zap.String("to", m.opts.To), zap.String("attachment", filepath.Base(csvPath)))
	return nil
}
