// Package reconcile is the sync engine. A Puller downloads remote assets into
// the mirror and grows the asset index; a Pusher sends local edits back; a
// Publisher promotes indexed assets.
//
// Every run is strictly sequential: one remote call in flight, and the next
// file is not read from the tree until the current one has finished and the
// pacing delay has elapsed. Per-file outcomes are delivered to an Observer as
// Events. The engine itself never prints or logs; a failed file is reported
// and the run moves on. Only a missing index, an invalid argument, a failed
// page query, or context cancellation end a run early.
package reconcile
