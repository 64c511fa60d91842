package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/shipment"
)

// StatusCache keeps status lookup rows out of the database round trip. Lookup rows are
// never deleted, so entries do not need invalidation.
type StatusCache interface {
	// Get reports found=false on a miss. Errors mean the cache itself failed.
	Get(ctx context.Context, status shipment.Status) (record shipment.StatusRecord, found bool, err error)
	Set(ctx context.Context, record shipment.StatusRecord) error
}
