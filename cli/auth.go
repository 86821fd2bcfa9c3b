package cli

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

const keyringService = "facepointer"
const keyringUser = "server-token"

// tokenBytes is the amount of randomness in a generated server token.
const tokenBytes = 32

var rotateToken bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Server token management",
	Long:  `Manage the bearer token that protects 'facepointer server start --auth'. The token is kept in the OS keyring.`,
}

// generateToken returns a random hex token.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// loadOrCreateToken returns the stored token, creating one when none exists
// or when rotate is set.
func loadOrCreateToken(rotate bool) (string, error) {
	if !rotate {
		token, err := keyring.Get(keyringService, keyringUser)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("failed to read token from keyring: %w", err)
		}
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// storedToken returns the stored token without creating one.
func storedToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return "", fmt.Errorf("no server token found, run 'facepointer auth token' first")
	}
	return token, nil
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Display the server token, creating it if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadOrCreateToken(rotateToken)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the server token from the keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyring.Delete(keyringService, keyringUser); err != nil {
			fmt.Println("no server token stored")
			return nil
		}

		fmt.Println("Server token removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authTokenCmd, authClearCmd)
	authTokenCmd.Flags().BoolVar(&rotateToken, "rotate", false, "replace the stored token with a new one")
}
