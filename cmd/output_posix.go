//go:build !windows

package cmd

// statusLineWidth is the column count StatusLinePrinter truncates and pads
// a status line to. 80 is a conservative floor — the minimum width of a
// VT100 terminal — chosen over querying the real terminal width so the
// printed content never wraps onto a second line even on an unusually
// narrow terminal.
const statusLineWidth = 80
