// Package ws implements the WebSocket stream for airboard-server.
//
// Hub manages a set of connected dashboard clients and broadcasts the
// current snapshot (same schema as GET /api/v1/snapshot) to all of them on
// a configurable interval.
//
// New(source, interval) creates a Hub over any SnapshotSource.
// Hub.Run(ctx) starts the broadcast ticker — blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// snapshot immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "snapshot",
//	  "data":  { /* same schema as GET /api/v1/snapshot */ }
//	}
//
// The dataset is static, so consecutive broadcasts differ only in
// generated_at; the interval mainly keeps reconnecting dashboards fresh.
// The upgrader accepts all origins — apply CORS restrictions at the reverse
// proxy level. The endpoint is mounted at /ws/stream by the server.
package ws
