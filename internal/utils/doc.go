// Package utils provides filesystem and system helpers shared across
// StormKeys packages.
package utils
