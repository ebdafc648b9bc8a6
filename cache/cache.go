// Package cache holds the single-slot snapshot cache and its backends.
package cache

import "weatherdash.app/models"

// SnapshotCache is the single-slot, last-writer-wins home of the current
// Snapshot. Publish must be atomic from a concurrent reader's point of view:
// Current returns either the previous complete snapshot or the new one, never
// a mix. Before the first publish, Current reports absence.
type SnapshotCache interface {
	Publish(snapshot *models.Snapshot) error
	Current() (*models.Snapshot, bool)
}
