package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/switchyard/pkg/domain"
)

// LoggingHooks logs every stage event at debug level and aborts at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageStart: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_start", "stage", e.Stage, "label", e.Label, "command", e.Command)
		},
		OnStageEnd: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_end", "stage", e.Stage, "exit_code", e.ExitCode, "duration", e.Duration)
		},
		OnAbort: func(ctx context.Context, e *domain.AbortEvent) {
			logger.InfoContext(ctx, "abort", "stage", e.Stage, "reason", e.Reason)
		},
	}
}

// MergeHooks fans every event out to each set of hooks, in order.
func MergeHooks(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageStart: func(ctx context.Context, e *domain.StageEvent) {
			for _, h := range all {
				if h.OnStageStart != nil {
					h.OnStageStart(ctx, e)
				}
			}
		},
		OnStageEnd: func(ctx context.Context, e *domain.StageEvent) {
			for _, h := range all {
				if h.OnStageEnd != nil {
					h.OnStageEnd(ctx, e)
				}
			}
		},
		OnAbort: func(ctx context.Context, e *domain.AbortEvent) {
			for _, h := range all {
				if h.OnAbort != nil {
					h.OnAbort(ctx, e)
				}
			}
		},
	}
}
