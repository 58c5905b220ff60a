// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry both a color and a plain-text decoration so output
// stays readable when color is disabled (NO_COLOR, dumb terminals, pipes).
package ui
