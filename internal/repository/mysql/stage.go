package mysql

import (
	"time"

	"sales-service/internal/platform/logger"
)

// writeStage is how far an aggregate write got before it committed or failed.
type writeStage int

const (
	stageStart writeStage = iota
	stageParentWritten
	stageItemsWritten
	stagePaymentWritten
	stageCommitted
	stageRolledBack
)

func (s writeStage) String() string {
	switch s {
	case stageStart:
		return "start"
	case stageParentWritten:
		return "parent_written"
	case stageItemsWritten:
		return "items_written"
	case stagePaymentWritten:
		return "payment_written"
	case stageCommitted:
		return "committed"
	case stageRolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// writeTrace follows one save or update call. It is never shared between calls.
type writeTrace struct {
	log     *logger.Logger
	op      string
	stage   writeStage
	reached writeStage
	started time.Time
}

func newWriteTrace(log *logger.Logger, op string) *writeTrace {
	return &writeTrace{log: log, op: op, started: time.Now()}
}

func (t *writeTrace) advance(s writeStage) {
	t.stage = s
	t.reached = s
}

// finish records the terminal stage. A nil err after InTx means the commit
// went through.
func (t *writeTrace) finish(err error) writeStage {
	if err != nil {
		t.stage = stageRolledBack
		t.log.Debug("aggregate write rolled back",
			"op", t.op,
			"reached", t.reached.String(),
			"duration_ms", time.Since(t.started).Milliseconds(),
			"error", err,
		)
		return t.stage
	}
	t.stage = stageCommitted
	t.log.Debug("aggregate write committed",
		"op", t.op,
		"duration_ms", time.Since(t.started).Milliseconds(),
	)
	return t.stage
}
