// Package coordination provides the Store, the single entry point a
// front-end uses to drive background activity.
//
// The Store aggregates four state slices (timer, fetch, worker and
// notifications), each owned by its own controller, and delegates commands
// to them. It holds no business logic beyond delegation and derived views.
// Slices are locked independently, so a Snapshot is consistent per slice
// but not across slices.
package coordination
