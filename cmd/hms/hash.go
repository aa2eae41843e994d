package main

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmsv1/hospital-system/internal/core/ports"
	"github.com/hmsv1/hospital-system/internal/core/service"
	"github.com/hmsv1/hospital-system/internal/pkg/config"
)

// NewHashPasswordCmd creates the hash-password subcommand.
func NewHashPasswordCmd() *cobra.Command {
	var (
		scheme string
		cost   int
	)

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a stored-secret hash for a password read from stdin",
		Long: `Reads one password line from stdin and prints its hash, for seeding
accounts by hand. The password is never taken from arguments so it stays out
of shell history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password on stdin")
			}
			password := strings.TrimRight(line, "\r\n")

			var hasher ports.PasswordHasher
			switch scheme {
			case config.PasswordSchemeBcrypt:
				hasher = service.NewBcryptHasher(cost)
			case config.PasswordSchemeArgon2id:
				hasher = service.NewArgon2idHasher()
			default:
				return errors.New("scheme must be bcrypt or argon2id")
			}

			hash, err := hasher.Hash(password)
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", config.PasswordSchemeBcrypt, "hash scheme: bcrypt or argon2id")
	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")

	return cmd
}
