// Package shutdown provides graceful process shutdown for rudis.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration, run in reverse registration order
//
// Usage:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	if err := h.Wait(); err != nil { ... } // blocks until SIGINT/SIGTERM
package shutdown
