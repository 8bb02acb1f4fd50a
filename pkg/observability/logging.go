package observability

import (
	"context"
	"log/slog"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// LoggingHooks writes one log line per navigator event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "node_enter",
				"session_id", e.SessionID,
				"category", e.Category,
				"node_id", e.NodeID,
				"back", e.Back,
			)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_leave",
				"session_id", e.SessionID,
				"category", e.Category,
				"node_id", e.NodeID,
			)
		},
		OnResult: func(ctx context.Context, e *domain.ResultEvent) {
			logger.InfoContext(ctx, "result",
				"session_id", e.SessionID,
				"category", e.Category,
				"node_id", e.NodeID,
				"diagnosis", e.Diagnosis,
				"severity", string(e.Severity),
			)
		},
		OnExit: func(ctx context.Context, e *domain.ExitEvent) {
			logger.InfoContext(ctx, "exit",
				"session_id", e.SessionID,
				"category", e.Category,
				"reason", e.Reason,
			)
		},
	}
}
