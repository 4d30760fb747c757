package dataset

import (
	"errors"
	"fmt"

	"github.com/projbank/projbank/internal/record"
)

// ErrReferenceCollision is returned when a merge would persist two records
// sharing a project reference. Ids are renumbered during reconciliation, so
// this only happens when the kept partition was already corrupt.
var ErrReferenceCollision = errors.New("duplicate project_reference in merged collection")

// ErrIDCollision is the id-side counterpart, same corruption cause.
var ErrIDCollision = errors.New("duplicate project_id in merged collection")

// MaxProjectID returns the highest project id in a collection, 0 when
// empty.
func MaxProjectID(records []record.ProjectRecord) int {
	max := 0
	for _, r := range records {
		if r.ProjectID > max {
			max = r.ProjectID
		}
	}
	return max
}

// Reconcile replaces one source's partition of the collection with a fresh
// batch. Every existing record whose source type differs from sourceType is
// kept untouched; the rest are dropped wholesale, including records the
// fresh batch no longer contains. Fresh records are renumbered past the
// kept partition's highest id and their references rebuilt to follow, so
// ids and references stay unique across the merge.
func Reconcile(existing, fresh []record.ProjectRecord, sourceType string) ([]record.ProjectRecord, error) {
	kept := make([]record.ProjectRecord, 0, len(existing))
	for _, r := range existing {
		if r.SourceType != sourceType {
			kept = append(kept, r)
		}
	}

	ids := record.NewIDAllocator(MaxProjectID(kept) + 1)
	merged := kept
	for _, r := range fresh {
		r.ProjectID = ids.Next()
		r.ProjectReference = record.Reference(r.Region, r.Title, r.ProjectID)
		merged = append(merged, r)
	}

	seenRef := make(map[string]bool, len(merged))
	seenID := make(map[int]bool, len(merged))
	for _, r := range merged {
		if seenRef[r.ProjectReference] {
			return nil, fmt.Errorf("%w: %s", ErrReferenceCollision, r.ProjectReference)
		}
		if seenID[r.ProjectID] {
			return nil, fmt.Errorf("%w: %d", ErrIDCollision, r.ProjectID)
		}
		seenRef[r.ProjectReference] = true
		seenID[r.ProjectID] = true
	}
	return merged, nil
}
