package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/cliutil"
)

// TagFlags contains flags for the tag command
type TagFlags struct {
	Verbose bool
}

// SetupTagFlags creates and configures a FlagSet for the tag command.
func SetupTagFlags() (*flag.FlagSet, *TagFlags) {
	fs := flag.NewFlagSet("tag", flag.ContinueOnError)
	flags := &TagFlags{}

	fs.BoolVar(&flags.Verbose, "v", false, "print each tag as 'original -> canonical'")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swagfix tag [flags] <tag>...\n\n")
		cliutil.Writef(fs.Output(), "Print the canonical short form of each controller tag.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  swagfix tag github.com/casdoor/casdoor/controllersAccountController\n")
		cliutil.Writef(fs.Output(), "  swagfix tag -v github.com/casdoor/casdoor/controllersUserGroupController\n")
	}

	return fs, flags
}

// HandleTag executes the tag command
func HandleTag(args []string) error {
	fs, flags := SetupTagFlags()
	fs.SetOutput(Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("tag command requires at least one tag")
	}

	for _, tag := range fs.Args() {
		canonical := fixer.CanonicalTagName(tag)
		if flags.Verbose {
			cliutil.Writef(Stdout, "%s -> %s\n", tag, canonical)
		} else {
			cliutil.Writef(Stdout, "%s\n", canonical)
		}
	}
	return nil
}
