package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aicraft/storycraft/internal/shared/config"
	"github.com/aicraft/storycraft/internal/shared/token"
)

// Mints or inspects session tokens for local API testing. Uses the same
// TOKEN_SECRET the server reads, so minted tokens work against a local run.
func main() {
	validate := flag.String("validate", "", "validate the given token instead of minting one")
	flag.Parse()

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		fmt.Println("TOKEN_SECRET must be set")
		os.Exit(1)
	}
	tokens := token.NewManager(&config.Config{TokenSecret: secret})

	if *validate != "" {
		subject, err := tokens.Validate(*validate)
		if err != nil {
			fmt.Printf("Invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Valid, subject: %s\n", subject)
		return
	}

	if flag.NArg() < 1 {
		fmt.Println("Usage: go run cmd/token/main.go <subject-id>")
		fmt.Println("       go run cmd/token/main.go -validate <token>")
		os.Exit(1)
	}

	tok, err := tokens.Issue(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Subject: %s\n", flag.Arg(0))
	fmt.Printf("Token: %s\n", tok)
	fmt.Printf("\nCall the API with:\n")
	fmt.Printf("Authorization: Bearer %s\n", tok)
}
