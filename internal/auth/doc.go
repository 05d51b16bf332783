// Package auth gates the REST API and WebSocket endpoints behind an API
// key. Middleware(mode, header, key) wraps an http.Handler; with mode
// "none" or an unconfigured key it is a pass-through.
package auth
