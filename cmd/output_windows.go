//go:build windows

package cmd

// statusLineWidth is one column narrower than output_posix.go's: on
// Windows consoles, a carriage-return wipe doesn't work once the cursor has
// already printed a character in the last column of the line, so the
// printable width has to stay one short of the console's actual 80-column
// default.
const statusLineWidth = 79
