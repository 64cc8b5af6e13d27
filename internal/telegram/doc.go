// Package telegram connects the job runner to the Telegram Bot API.
//
// Bot long-polls for updates, recognizes prefixed commands in message text
// or captions, and runs each command as a job on a bounded set of workers.
// The media a command operates on is always the message being replied to.
// Conversation implements job.Conversation for one triggering message:
// downloads go through the Bot API file endpoint, uploads reply to the
// triggering message in HTML parse mode.
package telegram
