package clients

import "encoding/json"

const jsonRPCVersion = "2.0"

// Request is the JSON-RPC envelope sent to the API. The ID is the method name
// and Visa is omitted only on Login.
type Request struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      string `json:"id"`
	Visa    string `json:"visa,omitempty"`
}

// NewRequest builds an envelope for method.
func NewRequest(method string, params any, visa string) *Request {
	return &Request{
		Version: jsonRPCVersion,
		Method:  method,
		Params:  params,
		ID:      method,
		Visa:    visa,
	}
}

// Response is the envelope returned by the API. Every successful response
// carries a fresh visa.
type Response struct {
	Version string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Visa    string          `json:"visa"`
	Error   *RPCError       `json:"error,omitempty"`
}
