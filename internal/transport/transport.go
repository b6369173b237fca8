// Package transport defines the interface for pluggable conversation
// transports.
//
// Each transport (HTTP, gRPC) parses its own wire format into a turn
// request plus session state, hands both to the processor through the
// Handler contract, and writes the result back to the caller. The reply
// always returns on the transport the message arrived on.
package transport

import (
	"context"

	"github.com/eldercare-labs/carebridge/internal/conversation"
	"github.com/eldercare-labs/carebridge/internal/processor"
)

// Handler processes one conversation turn. The processor provides this
// handler to each transport.
type Handler func(ctx context.Context, req processor.Request, session *conversation.Session) (*conversation.TurnResult, error)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Listen starts accepting incoming turns and dispatches them to the
	// handler. It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
