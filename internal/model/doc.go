// Package model defines the domain data structures shared by the download,
// archive and UI layers: format tiers, download sessions and their snapshots,
// per-item results, and archive tasks. State transitions are explicit and
// every mutation of a session happens on the worker that owns it.
package model
