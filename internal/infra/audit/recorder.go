package audit

import (
	"context"
	"log/slog"

	"bodyshop/internal/pkg/reqctx"
	"bodyshop/internal/usecase/shared"
)

// Recorder writes audit entries outside the caller's transaction. A failed
// write never fails the operation being audited.
type Recorder struct {
	repo   shared.AuditRepository
	logger *slog.Logger
}

func NewRecorder(repo shared.AuditRepository, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, entry shared.AuditEntry) {
	if entry.IPAddress == nil {
		if ip := reqctx.ClientIP(ctx); ip != "" {
			entry.IPAddress = &ip
		}
	}

	// the request may already be cancelled once the response is written
	ctx = context.WithoutCancel(ctx)
	if err := r.repo.Insert(ctx, entry); err != nil {
		r.logger.Warn("failed to write audit log",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"request_id", reqctx.RequestID(ctx),
			"error", err.Error())
	}
}
