package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const methodLogin = "Login"

// Session owns the visa for one login. Every call replaces the visa with the
// one carried by its response, so a Session is not safe for concurrent use.
type Session struct {
	transport   *Transport
	partnerName string
	username    string
	visa        string
	partnerID   int64
	logger      *zap.Logger
}

type loginParams struct {
	Partner  string `json:"partner"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	PartnerID int64 `json:"PartnerId"`
}

// NewSession builds an unauthenticated session. Call Login before anything else.
func NewSession(transport *Transport, partnerName, username string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		transport:   transport,
		partnerName: partnerName,
		username:    username,
		logger:      logger,
	}
}

// Connect builds a session and logs in.
func Connect(ctx context.Context, transport *Transport, partnerName, username, password string, logger *zap.Logger) (*Session, error) {
	s := NewSession(transport, partnerName, username, logger)
	if err := s.Login(ctx, password); err != nil {
		return nil, err
	}
	return s, nil
}

// Login authenticates and stores the visa and partner id. On failure the
// session is left without a visa.
func (s *Session) Login(ctx context.Context, password string) error {
	s.visa = ""
	s.partnerID = 0

	var result loginResult
	params := loginParams{Partner: s.partnerName, Username: s.username, Password: password}
	if err := s.call(ctx, methodLogin, params, &result); err != nil {
		s.visa = ""
		return fmt.Errorf("%w: partner %q user %q: %w", ErrAuthentication, s.partnerName, s.username, err)
	}
	if result.PartnerID == 0 {
		s.visa = ""
		return fmt.Errorf("%w: partner %q user %q: %w: login result has no PartnerId", ErrAuthentication, s.partnerName, s.username, ErrProtocol)
	}

	s.partnerID = result.PartnerID
	s.logger.Debug("logged in", zap.String("partner", s.partnerName), zap.Int64("partner_id", s.partnerID))
	return nil
}

// Call invokes method with params and decodes the result into out (which may
// be nil). The visa is attached to the request and refreshed from the response.
func (s *Session) Call(ctx context.Context, method string, params, out any) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}
	return s.call(ctx, method, params, out)
}

func (s *Session) call(ctx context.Context, method string, params, out any) error {
	s.logger.Debug("rpc call", zap.String("method", method))

	resp, err := s.transport.Send(ctx, NewRequest(method, params, s.visa))
	if err != nil {
		return err
	}

	if resp.Visa != "" {
		s.visa = resp.Visa
	}
	if resp.Error != nil {
		return resp.Error
	}
	if resp.Visa == "" {
		return fmt.Errorf("%w: response to %s has no visa", ErrProtocol, method)
	}
	payload, err := unwrapResult(resp.Result)
	if err != nil {
		return fmt.Errorf("%w: response to %s: %v", ErrProtocol, method, err)
	}
	if out == nil || payload == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode %s result: %v", ErrProtocol, method, err)
	}
	return nil
}

// unwrapResult returns the payload the API nests under result.result. A null
// or absent inner result means an empty payload and yields nil.
func unwrapResult(outer json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(outer)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("no result")
	}

	var inner struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, fmt.Errorf("result is not an object: %v", err)
	}
	if len(inner.Result) == 0 || bytes.Equal(bytes.TrimSpace(inner.Result), []byte("null")) {
		return nil, nil
	}
	return inner.Result, nil
}

// Authenticated reports whether the session holds a visa.
func (s *Session) Authenticated() bool {
	return s.visa != ""
}

// Visa returns the most recently received visa.
func (s *Session) Visa() string {
	return s.visa
}

// PartnerID returns the partner id obtained at login.
func (s *Session) PartnerID() int64 {
	return s.partnerID
}

// PartnerName returns the partner the session logged in as.
func (s *Session) PartnerName() string {
	return s.partnerName
}
