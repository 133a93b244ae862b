// Package timeouts defines shared timeout constants used by the admin process.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// DashboardQuery caps a single storage read issued by a dashboard page.
const DashboardQuery = 2 * time.Second
