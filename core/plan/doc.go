// Package plan implements the planning engine: dependency ordering, duration
// estimation, resource leveling against per-role daily capacity, and cost
// derivation. A run is a pure batch computation over a project document.
package plan
