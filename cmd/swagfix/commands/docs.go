package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casdoor/swagfix/fixer"
	"github.com/casdoor/swagfix/internal/cliutil"
	"github.com/casdoor/swagfix/internal/config"
	"github.com/casdoor/swagfix/internal/docwriter"
	"github.com/casdoor/swagfix/parser"
)

// Document file names inside the docs directory.
const (
	DocsJSONFile    = "swagger.json"
	DocsYAMLFile    = "swagger.yml"
	DocsYAMLAltFile = "swagger.yaml"
)

// DocsFlags contains flags for the docs command
type DocsFlags struct {
	Quiet  bool
	Check  bool
	Config string
}

// SetupDocsFlags creates and configures a FlagSet for the docs command.
func SetupDocsFlags() (*flag.FlagSet, *DocsFlags) {
	fs := flag.NewFlagSet("docs", flag.ContinueOnError)
	flags := &DocsFlags{}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no output unless a file fails")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no output unless a file fails")
	fs.BoolVar(&flags.Check, "check", false, "report pending fixes without writing; exit 1 if any")
	fs.StringVar(&flags.Config, "config", "", "configuration file (default: ./.swagfix.yaml if present)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swagfix docs [flags] [dir]\n\n")
		cliutil.Writef(fs.Output(), "Fix %s and %s (or %s) in dir, rewriting each file atomically.\n", DocsJSONFile, DocsYAMLFile, DocsYAMLAltFile)
		cliutil.Writef(fs.Output(), "dir defaults to docs_dir from the configuration (swagger).\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Each file is parsed, fixed, and serialized before it is replaced\n")
		cliutil.Writef(fs.Output(), "  - A failure in one file leaves the other file's result in place\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  swagfix docs\n")
		cliutil.Writef(fs.Output(), "  swagfix docs ./swagger\n")
		cliutil.Writef(fs.Output(), "  swagfix docs --check ./swagger\n")
	}

	return fs, flags
}

// HandleDocs executes the docs command
func HandleDocs(args []string) error {
	fs, flags := SetupDocsFlags()
	fs.SetOutput(Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("docs command accepts at most one directory")
	}

	cfg, err := LoadConfig(flags.Config)
	if err != nil {
		return err
	}
	dir := cfg.DocsDir
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}
	logger := NewLogger(cfg)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("docs directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs directory: %s is not a directory", dir)
	}

	var errs []error
	pending := 0
	for _, path := range DocsFiles(dir) {
		n, err := fixDocsFile(path, cfg, logger, flags.Check)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		pending += n
		if flags.Quiet {
			continue
		}
		switch {
		case flags.Check && n > 0:
			cliutil.Writef(Stdout, "✗ %s needs %d fix(es)\n", path, n)
		case flags.Check:
			cliutil.Writef(Stdout, "✓ %s is normalized\n", path)
		default:
			cliutil.Writef(Stdout, "✓ Fixed %s (%d fix(es))\n", path, n)
		}
	}

	if flags.Check && pending > 0 {
		errs = append(errs, fmt.Errorf("%d fix(es) pending", pending))
	}
	return errors.Join(errs...)
}

// DocsFiles returns the JSON and YAML document paths for dir. The YAML
// copy is swagger.yml unless only swagger.yaml exists.
func DocsFiles(dir string) []string {
	yamlPath := filepath.Join(dir, DocsYAMLFile)
	if _, err := os.Stat(yamlPath); err != nil {
		alt := filepath.Join(dir, DocsYAMLAltFile)
		if _, altErr := os.Stat(alt); altErr == nil {
			yamlPath = alt
		}
	}
	return []string{filepath.Join(dir, DocsJSONFile), yamlPath}
}

// fixDocsFile fixes one document and, unless check is set, replaces it.
// It returns the number of fixes.
func fixDocsFile(path string, cfg *config.Config, logger parser.Logger, check bool) (int, error) {
	parsed, err := ParseInput(path, cfg, logger)
	if err != nil {
		return 0, err
	}
	opts, err := FixOptions(parsed, cfg, logger)
	if err != nil {
		return 0, err
	}
	result, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return 0, err
	}
	if check {
		return result.FixCount, nil
	}

	writer := docwriter.New()
	writer.JSONIndent = cfg.JSONIndent
	if err := writer.Write(path, result.ToParseResult(), parser.SourceFormatUnknown); err != nil {
		return 0, err
	}
	logger.Debug("fixed document", "path", path, "fixes", result.FixCount)
	return result.FixCount, nil
}
