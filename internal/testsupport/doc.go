// Package testsupport holds helpers shared by package tests: temp-dir backed
// configs, stub tool binaries and sized fixture files.
package testsupport
