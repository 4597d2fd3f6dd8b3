package clients

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned when Login fails for any reason.
	ErrAuthentication = errors.New("authentication failed")
	// ErrUnauthenticated is returned by calls made without a visa.
	ErrUnauthenticated = errors.New("session is not authenticated")
	// ErrTransport covers network failures and non-2xx HTTP responses.
	ErrTransport = errors.New("transport error")
	// ErrProtocol covers malformed or incomplete response envelopes.
	ErrProtocol = errors.New("protocol error")
)

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// RemoteCallError records which remote procedure failed and with what parameters.
type RemoteCallError struct {
	Method string
	Params any
	Err    error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Method, e.Params, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
