package rhi

import "log/slog"

// SlogCallback forwards device diagnostics to a slog.Logger. A nil logger
// uses slog.Default.
func SlogCallback(logger *slog.Logger) MessageCallback {
	if logger == nil {
		logger = slog.Default()
	}
	return MessageFunc(func(severity MessageSeverity, text string) {
		switch severity {
		case SeverityError:
			logger.Error(text)
		case SeverityWarning:
			logger.Warn(text)
		default:
			logger.Info(text)
		}
	})
}
