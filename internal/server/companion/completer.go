// Package companion provides the chat-completion capability behind the
// companion query endpoint. The Completer interface is injected into the
// service layer so request handling can be tested without a network
// dependency.
package companion

import "context"

// Completer produces a free-text completion for a query, given a caller
// context block describing the user.
type Completer interface {
	Complete(ctx context.Context, userContext, query string) (string, error)
}
