//go:build ignore

// Generates the JWT signing secrets and API keys for a new environment.
//
//	go run scripts/generate_keys.go -api-keys 2 -out .env.local
//
// Without -out the variables are printed in .env format.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	secretBytes = 32
	apiKeyBytes = 24
)

func randomKey(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// API keys travel in headers and a comma-separated env var.
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func generate(apiKeys int) (map[string]string, error) {
	env := make(map[string]string, 3)
	for _, name := range []string{"JWT_SECRET_KEY", "JWT_REFRESH_SECRET_KEY"} {
		secret, err := randomKey(secretBytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		env[name] = secret
	}

	keys := make([]string, 0, apiKeys)
	for i := 0; i < apiKeys; i++ {
		key, err := randomKey(apiKeyBytes)
		if err != nil {
			return nil, fmt.Errorf("API_KEYS: %w", err)
		}
		keys = append(keys, key)
	}
	if len(keys) > 0 {
		env["API_KEYS"] = strings.Join(keys, ",")
	}
	return env, nil
}

func main() {
	apiKeys := flag.Int("api-keys", 1, "number of API keys to generate")
	out := flag.String("out", "", "write the variables to this env file instead of stdout")
	flag.Parse()

	env, err := generate(*apiKeys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate keys: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		content, err := godotenv.Marshal(env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal env: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(content)
		return
	}

	if err := godotenv.Write(env, *out); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := os.Chmod(*out, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "chmod %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %d variables to %s; load it with ENV_FILE=%s\n", len(env), *out, *out)
}
