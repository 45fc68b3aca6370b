// Package viz renders simulation output for the terminal: asciigraph
// trajectory plots, a lipgloss-styled run summary, and a bubbletea live
// view of the fall.
package viz
