package port

// Logger is the structured logging interface the profile and portfolio
// services depend on. Args alternate keys and values, slog style.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
