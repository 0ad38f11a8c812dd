package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Quick utility to generate a bcrypt hash for a profile password
// Usage: go run scripts/profile_password.go <email> <password> [role]
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/profile_password.go <email> <password> [role]")
		fmt.Println("Example: go run scripts/profile_password.go dispatch@lifeline.local s3cret dispatcher")
		os.Exit(1)
	}

	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	role := "responder"
	if len(os.Args) > 3 {
		role = os.Args[3]
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bcrypt Hash: %s\n", string(hashedPassword))
	fmt.Printf("\nTo create or update the profile in MongoDB, run:\n")
	fmt.Printf("db.profiles.updateOne(\n")
	fmt.Printf("  {\"email\": \"%s\"},\n", email)
	fmt.Printf("  {$set: {\"password_hash\": \"%s\", \"role\": \"%s\"}, $setOnInsert: {\"_id\": UUID().toString().split('\"')[1], \"created_at\": new Date()}},\n", string(hashedPassword), role)
	fmt.Printf("  {upsert: true}\n")
	fmt.Printf(")\n")
}
