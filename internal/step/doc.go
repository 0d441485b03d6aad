// Package step provides persistence for trip steps and their journal
// entries.
//
// Steps are the ordered waypoints of a trip. Their position is an
// explicit order_index maintained by Reorder; listings sort by that
// index with start date and id as tie-breakers, so the order a caller
// sees is always deterministic.
//
// Deleting a step removes its journal entries, images and checklist
// items through the schema's ON DELETE CASCADE.
package step
