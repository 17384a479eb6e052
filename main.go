package main

import (
	"fmt"
	"os"
	"strings"

	"hootroost/app/config"
	"hootroost/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches args to a command and returns its exit status.
func run(args []string) int {
	if len(args) == 0 {
		printHelp()
		return 1
	}

	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "help":
		printHelp()
		return 0
	case "version":
		fmt.Printf("hootroost version %s\n", CliVersion)
		return 0
	case "serve", "db", "token":
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printHelp()
		return 1
	}

	cfg, err := config.Load(os.Getenv("HOOTROOST_CONFIG"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	switch cmd {
	case "serve":
		return service.RunServer(cfg)
	case "db":
		return service.HandleCommand(cfg, rest, os.Stdin, os.Stdout)
	default:
		return service.MintToken(cfg, rest)
	}
}

func printHelp() {
	helpText := `Usage: hootroost <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the hoot API server.
  db <init|clean|backup|restore> Maintain the badger database (see 'db help').
  token --sub <id> [--username <name>] [--ttl <duration>]
                                 Print a signed development token.

Configuration is read from config.yaml (or $HOOTROOST_CONFIG), .env and
HOOTROOST_* environment variables, e.g. HOOTROOST_AUTH_JWT_SECRET.
`
	fmt.Println(helpText)
}
