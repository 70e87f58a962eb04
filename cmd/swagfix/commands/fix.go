package commands

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/cliutil"
	"github.com/casdoor/swagfix/internal/docwriter"
	"github.com/casdoor/swagfix/internal/fileutil"
	"github.com/casdoor/swagfix/parser"
)

// FixFlags contains flags for the fix command
type FixFlags struct {
	Output     string
	Quiet      bool
	InPlace    bool
	JSONIndent int
	Stages     string
	Config     string
}

// SetupFixFlags creates and configures a FlagSet for the fix command.
// Returns the FlagSet and a FixFlags struct with bound flag variables.
func SetupFixFlags() (*flag.FlagSet, *FixFlags) {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	flags := &FixFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.InPlace, "i", false, "rewrite the input file atomically")
	fs.BoolVar(&flags.InPlace, "in-place", false, "rewrite the input file atomically")
	fs.IntVar(&flags.JSONIndent, "json-indent", -1, "spaces per JSON indent level (default: from config, 4)")
	fs.StringVar(&flags.Stages, "stages", "", "comma-separated stages to run: metadata,tags,descriptions,corrections (default: all)")
	fs.StringVar(&flags.Config, "config", "", "configuration file (default: ./.swagfix.yaml if present)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swagfix fix [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Normalize a generated Swagger 2.0 document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nStages (always applied in this order):\n")
		cliutil.Writef(fs.Output(), "  metadata      Replace the info block and default empty schemes to [https, http]\n")
		cliutil.Writef(fs.Output(), "  tags          Shorten controller tags, e.g. casdoor/controllers.ApiController -> api\n")
		cliutil.Writef(fs.Output(), "  descriptions  Remove <br> markup from operation descriptions\n")
		cliutil.Writef(fs.Output(), "  corrections   Apply the operationId and response schema correction table\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  swagfix fix swagger/swagger.json\n")
		cliutil.Writef(fs.Output(), "  swagfix fix -o fixed.yml swagger/swagger.yml\n")
		cliutil.Writef(fs.Output(), "  swagfix fix --in-place swagger/swagger.json\n")
		cliutil.Writef(fs.Output(), "  swagfix fix --stages tags,descriptions swagger/swagger.json\n")
		cliutil.Writef(fs.Output(), "  cat swagger.yml | swagfix fix -q - > fixed.yml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Output preserves the input format unless -o names a .json/.yml/.yaml file\n")
		cliutil.Writef(fs.Output(), "  - Diagnostics go to stderr so stdout stays clean for pipelining\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Fixes applied successfully (or no fixes needed)\n")
		cliutil.Writef(fs.Output(), "  1    Failed to parse, fix, or write the document\n")
	}

	return fs, flags
}

// HandleFix executes the fix command
func HandleFix(args []string) error {
	fs, flags := SetupFixFlags()
	fs.SetOutput(Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("fix command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)
	if flags.InPlace && specPath == StdinFilePath {
		return fmt.Errorf("--in-place cannot be used with stdin")
	}
	if flags.InPlace && flags.Output != "" {
		return fmt.Errorf("--in-place and --output are mutually exclusive")
	}

	cfg, err := LoadConfig(flags.Config)
	if err != nil {
		return err
	}
	if flags.JSONIndent >= 0 {
		cfg.JSONIndent = flags.JSONIndent
	}
	if flags.Stages != "" {
		cfg.Stages = flags.Stages
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := NewLogger(cfg)

	startTime := time.Now()
	parsed, err := ParseInput(specPath, cfg, logger)
	if err != nil {
		return err
	}
	opts, err := FixOptions(parsed, cfg, logger)
	if err != nil {
		return err
	}
	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("fixing %s: %w", FormatSpecPath(specPath), err)
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		OutputFixReport(Stderr, specPath, result, totalTime)
	}

	writer := docwriter.New()
	writer.JSONIndent = cfg.JSONIndent
	fixed := result.ToParseResult()

	switch {
	case flags.InPlace:
		if err := writer.Write(specPath, fixed, result.SourceFormat); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(Stderr, "\nRewrote: %s\n", specPath)
		}
	case flags.Output != "":
		writer.Perm = fileutil.OwnerReadWrite
		if err := writer.Write(flags.Output, fixed, parser.SourceFormatUnknown); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(Stderr, "\nOutput written to: %s\n", flags.Output)
		}
	default:
		data, err := writer.Encode(fixed, result.SourceFormat)
		if err != nil {
			return err
		}
		if _, err := Stdout.Write(data); err != nil {
			return fmt.Errorf("writing fixed document to stdout: %w", err)
		}
	}

	return nil
}
