// Package magetasks provides the build, test and lint tasks behind the
// peek Magefile.
package magetasks
