// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a long-running server started by main and stopped through fx
// lifecycle hooks.
type Delivery interface {
	// Serve blocks running the server until it is shut down.
	Serve(ctx context.Context) error
}
