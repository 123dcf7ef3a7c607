// Package lifecycle holds shared constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup/shutdown work such as DB pings and HTTP drain.
const DefaultTimeout = 10 * time.Second
