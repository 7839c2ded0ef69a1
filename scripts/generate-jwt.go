package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	// Read JWT secret from environment
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: AUTH_JWT_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: AUTH_JWT_SECRET=secret go run scripts/generate-jwt.go")
		os.Exit(1)
	}

	subject := "test-user-id"
	if len(os.Args) > 1 {
		subject = os.Args[1]
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
		"iss": "dishcovery-api",
	}

	// Create token with HS256
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	// Print the token
	fmt.Println(tokenString)
}
