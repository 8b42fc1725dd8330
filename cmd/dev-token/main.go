// Command dev-token bootstraps a usable API token for local development.
// Every data endpoint requires authentication, so the first request against
// a fresh database needs an account; this tool creates one (when missing)
// and logs it in, printing the session token for curl.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/repository"
	"github.com/shopworks/storefront/internal/service"
	"github.com/shopworks/storefront/pkg/token"
)

func main() {
	dbPath := flag.String("db", "./storefront.db", "Path to the database file")
	email := flag.String("email", "dev@storefront.local", "Account email")
	password := flag.String("password", "local-dev-password", "Account password")
	secret := flag.String("secret", os.Getenv("AUTH_SECRET"), "Token signing secret (defaults to AUTH_SECRET)")
	ttl := flag.Duration("ttl", 7*24*time.Hour, "Session lifetime")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: a signing secret is required (-secret or AUTH_SECRET)")
		fmt.Fprintln(os.Stderr, "\nThe secret must match the one the server runs with.")
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := database.Open(ctx, database.Config{Path: *dbPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating database: %v\n", err)
		os.Exit(1)
	}

	tokens, err := token.NewService(token.Config{
		Secret:     *secret,
		Issuer:     "storefront.shopworks.dev",
		Expiration: *ttl,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating token service: %v\n", err)
		os.Exit(1)
	}

	auth := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    repository.NewUserRepository(store),
		SessionRepo: repository.NewSessionRepository(store),
		Tokens:      tokens,
	})

	_, err = auth.Register(ctx, service.RegisterRequest{
		Email:     *email,
		Password:  *password,
		Firstname: "Dev",
	})
	if err != nil && !errors.Is(err, service.ErrEmailAlreadyExists) {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		os.Exit(1)
	}

	result, err := auth.Login(ctx, service.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nIf the account pre-exists with a different password, pass -password.")
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": result.Token,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
			"user_id":      result.User.ID,
			"email":        result.User.Email,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(*ttl)
	fmt.Println("Development Token Generated")
	fmt.Println("===========================")
	fmt.Printf("User ID:  %d\n", result.User.ID)
	fmt.Printf("Email:    %s\n", result.User.Email)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(result.Token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/products\n", result.Token[:20]+"...")
}
