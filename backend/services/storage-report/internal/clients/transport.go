package clients

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultEndpoint is the public JSON API endpoint.
const DefaultEndpoint = "https://cloudbackup.management/jsonapi"

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TransportOptions configures the HTTP side of the RPC transport.
type TransportOptions struct {
	ProxyURL           string
	CAFile             string
	InsecureSkipVerify bool
	Timeout            time.Duration
	Headers            map[string]string
}

// Transport posts JSON-RPC envelopes to a single endpoint.
type Transport struct {
	endpoint string
	client   HTTPDoer
	headers  map[string]string
}

// NewTransport builds a transport for endpoint. Headers override the defaults,
// but a JSON content type is always sent.
func NewTransport(endpoint string, client HTTPDoer, headers map[string]string) *Transport {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	merged := make(map[string]string, len(headers))
	for k, v := range headers {
		merged[http.CanonicalHeaderKey(k)] = v
	}
	if _, ok := merged["Content-Type"]; !ok {
		merged["Content-Type"] = "application/json"
	}
	return &Transport{
		endpoint: endpoint,
		client:   client,
		headers:  merged,
	}
}

// Endpoint returns the URL requests are posted to.
func (t *Transport) Endpoint() string {
	return t.endpoint
}

// Send posts req and decodes the response envelope.
func (t *Transport) Send(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.Method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	var envelope Response
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrProtocol, err)
	}
	return &envelope, nil
}

// NewHTTPClient returns *http.Client configured with proxy, TLS and timeout options.
func NewHTTPClient(opts TransportOptions) (*http.Client, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, errors.New("clients: unexpected default transport")
	}
	rt := base.Clone()

	if opts.ProxyURL != "" {
		proxy, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("clients: parse proxy url: %w", err)
		}
		rt.Proxy = http.ProxyURL(proxy)
	}

	if opts.CAFile != "" || opts.InsecureSkipVerify {
		tlsCfg := &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: opts.InsecureSkipVerify, //nolint:gosec // opt-in via config
		}
		if opts.CAFile != "" {
			pem, err := os.ReadFile(opts.CAFile)
			if err != nil {
				return nil, fmt.Errorf("clients: read ca file: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("clients: no certificates in %s", opts.CAFile)
			}
			tlsCfg.RootCAs = pool
		}
		rt.TLSClientConfig = tlsCfg
	}

	return &http.Client{Timeout: opts.Timeout, Transport: rt}, nil
}
