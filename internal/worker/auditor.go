// Package worker consumes mutation events and maintains the audit trail.
package worker

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Auditor records one audit row per mutation event.
type Auditor struct {
	store  storage.Store
	logger *log.Logger
}

func NewAuditor(store storage.Store, logger *log.Logger) *Auditor {
	return &Auditor{
		store:  store,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// Handle processes a single mutation event. Returning an error requeues the
// delivery, so persistence failures are retried.
func (a *Auditor) Handle(ctx context.Context, msg *amqp.MutationMessage) error {
	occurred := msg.Timestamp
	if occurred.IsZero() {
		occurred = time.Now()
	}

	entry := storage.AuditEntry{
		Entity:     msg.Entity,
		Op:         msg.Op,
		RecordID:   msg.ID,
		OccurredAt: occurred.UTC(),
	}
	if err := a.store.AppendAudit(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	a.logger.Info("Recorded mutation",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID)
	return nil
}
