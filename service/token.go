package service

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"hootroost/app/auth"
	"hootroost/app/config"
	"hootroost/app/models"
)

// MintToken prints a signed token for local development and returns an exit code.
func MintToken(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sub := fs.String("sub", "", "user id the token identifies")
	username := fs.String("username", "", "username shown on hoots and comments")
	ttl := fs.Duration("ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	if err := fs.Parse(args); err != nil {
		fmt.Printf("Error: %v\n", err)
		printTokenHelp()
		return 1
	}

	if *sub == "" {
		fmt.Println("Error: --sub is required")
		printTokenHelp()
		return 1
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Println("Error: auth.jwt_secret is not configured (set HOOTROOST_AUTH_JWT_SECRET)")
		return 1
	}

	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}

	token, err := auth.NewSigner(cfg.Auth.JWTSecret, lifetime).Sign(&models.User{ID: *sub, Username: *username})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
		return 1
	}
	fmt.Println(token)
	return 0
}

func printTokenHelp() {
	fmt.Println(`Usage: hootroost token --sub <id> [--username <name>] [--ttl <duration>]`)
}
