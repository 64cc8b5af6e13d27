// Package deps reports whether the external binaries mediakit shells out to
// are installed.
package deps
