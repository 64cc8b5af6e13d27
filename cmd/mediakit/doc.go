// Command mediakit runs the media bot and its maintenance utilities.
//
// "mediakit bot" polls Telegram and answers media commands; "mediakit run"
// executes one command against a local file, which is handy for checking an
// ffmpeg install without a chat. "check" reports dependency and directory
// health, "commands" lists what the bot answers to, and "config" manages the
// TOML configuration file.
package main
