// Package job runs one chat command end to end.
//
// A Runner resolves the command, checks the replied-to attachment and the
// arguments, then acquires the attachment into a private Workspace, runs the
// command's Transform and delivers every output through the Conversation.
// The Workspace is released on every exit path before any error is reported,
// so no file created for a job outlives it. Failures are classified with the
// services error markers and reported to the requester exactly once.
package job
