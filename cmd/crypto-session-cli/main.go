// Package main is the entry point for the crypto-session-cli application.
// It initializes the root command and registers the session-based file
// commands (encrypt-file, decrypt-file, digest-file), then executes the
// command-line interface.
package main

import (
	"fmt"
	"log"

	commands "github.com/MGTheTrain/crypto-session-service/cmd/crypto-session-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "crypto-session-cli",
		Short: "Session-based cryptographic operations CLI tool",
		Long: `crypto-session-cli is a command-line tool for session-based cryptographic operations.
Each invocation creates a one-shot session with the requested cipher and/or hash
transform, streams the input file through it and tears the session down again.
Supports aes-cbc, des-cbc, 3des-cbc and blowfish-cbc ciphers and
md5, sha1, sha256, sha384, sha512 and ripemd160 digests (plain or HMAC).`,
	}

	// Initialize all command groups BEFORE executing
	if err := commands.InitSessionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
