// Package translate is a client for the public Google Translate "gtx"
// endpoint used to translate subtitle cues.
//
// The client issues one GET per text, retries throttling and server errors
// with capped exponential backoff, and satisfies subtitles.Translator.
package translate
