// Package delivery defines the contract shared by every serving surface
// of the application (HTTP API, reminder scheduler, Pub/Sub worker).
package delivery

import "context"

// Delivery is a long-running serving component started by the application
// entrypoint. Serve blocks until the component stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
