package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/agbru/deccalc/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args contain a version flag. It is
// checked before full flag parsing so "--version" works even alongside
// otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version line to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "deccalc %s\n", Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
