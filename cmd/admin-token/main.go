// Command admin-token mints an operator token for the admin API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/auth"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "token subject, e.g. the operator's email")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	scopes := flag.String("scope", auth.AdminScope, "space separated scopes")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-sub is required")
		flag.Usage()
		os.Exit(2)
	}

	svc, err := auth.NewTokenService(auth.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin-token: %v\n", err)
		os.Exit(1)
	}
	tok, err := svc.Issue(*subject, strings.Fields(*scopes), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin-token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
