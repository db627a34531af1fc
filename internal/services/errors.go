package services

import (
	"sales-service/internal/dberr"
	"sales-service/internal/platform/logger"
	"sales-service/internal/schema"
)

// classify maps a repository error to a *dberr.Error for the entity of desc.
// Internal failures are logged with the raw cause; the caller only sees the
// classified message.
func classify(log *logger.Logger, op string, desc *schema.Descriptor, err error) error {
	out := dberr.Classify(err, desc)
	if out.Kind == dberr.KindInternal {
		log.Error("storage failure",
			"op", op,
			"entity", desc.Entity,
			"mysql_number", dberr.Number(err),
			"error", err,
		)
	} else {
		log.Warn("constraint conflict",
			"op", op,
			"entity", desc.Entity,
			"field", out.Field,
			"mysql_number", dberr.Number(err),
		)
	}
	return dberr.FromOutcome(desc.Entity, out, err)
}

func saveFailed(entity string) error {
	return dberr.Conflict(entity, "Failed to create a new "+entity+" record.")
}
