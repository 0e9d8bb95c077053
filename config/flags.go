package config

import (
	"flag"
	"io"
	"os"
	"time"
)

// flagOutput receives usage text and parse errors.
var flagOutput io.Writer = os.Stderr

// Flags are the command-line options of the facelog binary.
type Flags struct {
	ConfigPath string
	Project    string
	Date       string
	Debug      bool
}

// ParseFlags parses args (without the program name). Date defaults to today in
// YYYY-MM-DD form. -h prints usage and returns flag.ErrHelp.
func ParseFlags(args []string, now time.Time) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("facelog", flag.ContinueOnError)
	fs.SetOutput(flagOutput)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config JSON (default under XDG config home)")
	fs.StringVar(&f.Project, "project", "default", "Project name")
	fs.StringVar(&f.Date, "date", "", "Date key of the photo (YYYY-MM-DD)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	if f.Date == "" {
		f.Date = now.Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, f.Date); err != nil {
		return Flags{}, err
	}
	return f, nil
}
