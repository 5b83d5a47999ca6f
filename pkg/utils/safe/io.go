package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/riskdss/pkg/utils/logging"
)

// Close closes closer and logs a failure with what describing the resource.
// A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer, what string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("Failed to close "+what, slog.Any("error", err))
	}
}

// Write writes data to w once the response header is committed, when a
// failure can only be logged.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write response", slog.Any("error", err), slog.Int("bytes", len(data)))
	}
}
