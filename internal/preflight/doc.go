// Package preflight provides readiness checks for the binaries, directories
// and remote services mediakit depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll and CheckSystemDeps before it starts polling.
//     A failing local check stops startup so jobs never run without ffmpeg
//     or a writable workspace root.
//   - The CLI "mediakit check" command prints every result, including the
//     network checks the daemon skips.
package preflight
