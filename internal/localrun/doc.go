// Package localrun drives the job runner against files on disk instead of a
// chat. The CLI uses it to run a command on a local file: the input is copied
// into the job workspace, outputs are moved into an output directory, and
// replies are written to a terminal.
package localrun
