// Package trip provides persistence for trips and their participants.
//
// A trip is owned by exactly one user and is the root of an ownership
// tree: steps, checklist items, images and participants all hang off it
// and are removed by the schema's ON DELETE CASCADE when the trip goes.
//
// Validation happens at the caller boundary via Trip.Validate; the
// repositories trust well-typed input and only surface engine failures
// and not-found conditions.
package trip
