// Package audit records provisioning runs as JSON lines under the
// project's .stormkeys directory.
//
// Auditing is best-effort: a run never fails because its audit entry
// could not be written.
package audit
