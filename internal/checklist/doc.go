// Package checklist provides persistence for trip-level and step-level
// checklists.
//
// Both levels share the same shape and operations; only the backing
// table and owning column differ. NewTripItems and NewStepItems return
// stores bound to the respective tables, and everything else is common
// code.
package checklist
