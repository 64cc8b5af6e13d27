// Package tags edits container metadata in place.
//
// ParseFields turns the JSON object a user sends with the metadata command
// into an ordered field list, and Apply writes those fields into an MP4-family
// file (via go-mp4tag) or an MP3 file (via id3v2). Friendly names such as
// "title" or "year" are translated to the container's native keys; MP4 keys
// outside the alias table become freeform iTunes atoms, while MP3 only accepts
// the known text-frame names.
package tags
