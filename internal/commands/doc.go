// Package commands defines the chat commands mediakit answers to.
//
// Each constructor returns a job.Command whose Parse step validates the
// arguments without touching the filesystem and hands back the Transform the
// job runner executes inside the job's workspace. Syntactic argument errors
// are reported before anything is downloaded; checks that depend on the media
// itself (duration, frame size, stream presence) run inside the Transform
// after ffprobe has inspected the input.
//
// Captions are HTML, matching the parse mode the Telegram adapter uploads
// with.
package commands
