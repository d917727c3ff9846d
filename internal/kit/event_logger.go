package kit

import (
	"go.uber.org/zap"
)

// LogEvents writes one debug line per page of book.
func LogEvents(logger *zap.Logger, book *EventBook) {
	if logger == nil || book == nil {
		return
	}
	for _, page := range book.Pages {
		if page.Event == nil {
			continue
		}
		logger.Debug("event recorded",
			zap.String("domain", book.Cover.Domain),
			zap.String("root", book.Cover.Root.String()),
			zap.Uint32("seq", page.Sequence),
			zap.String("type", ShortName(page.Event.TypeUrl)),
			zap.ByteString("data", page.Event.Value),
		)
	}
}
