// Package logger wraps zap for the release-manifest tooling:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the --log-level flag,
//   - convenience functions (InfoKV, ErrorKV, etc.).
//
// Services take a context and extract the logger from it, so every line of a
// run carries the same scoped fields.
package logger
