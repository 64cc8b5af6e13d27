// Package services defines shared utilities consumed by the job runner, the
// command transforms and the external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, command verbs, requester identities
//     and stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures into
//     the rejected / invalid / transform / delivery taxonomy and render the
//     reply text shown to chat users.
//
// Use these helpers when wiring new command logic so operational behaviour
// (error reporting, observability) stays uniform across commands.
package services
