package main

import (
	"fmt"
	"os"

	"github.com/casdoor/swagfix"
	"github.com/casdoor/swagfix/cmd/swagfix/commands"
)

// commandNames lists the subcommands for typo suggestions.
var commandNames = []string{"fix", "docs", "tag", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("swagfix v%s\n", swagfix.Version())
		if info := swagfix.BuildInfo(); info != "" {
			fmt.Println(info)
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "fix":
		err = commands.HandleFix(os.Args[2:])
	case "docs":
		err = commands.HandleDocs(os.Args[2:])
	case "tag":
		err = commands.HandleTag(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" if none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`swagfix - Swagger 2.0 normalizer for Beego-generated API docs

Usage:
  swagfix <command> [options]

Commands:
  fix         Fix one document and write it to stdout, a file, or in place
  docs        Fix swagger.json and swagger.yml in a docs directory
  tag         Print the canonical form of controller tag names
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  swagfix docs swagger
  swagfix fix -o fixed.json swagger/swagger.json
  swagfix fix --stages tags,descriptions swagger/swagger.yml
  swagfix tag github.com/casdoor/casdoor/controllersApiController

Configuration:
  .swagfix.yaml in the working directory (or --config) and SWAGFIX_* environment
  variables, e.g. SWAGFIX_DOCS_DIR, SWAGFIX_JSON_INDENT, SWAGFIX_METADATA_TITLE.

Run 'swagfix <command> --help' for more information on a command.`)
}
