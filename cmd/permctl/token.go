package main

import (
	"fmt"
	"os"

	"peerperm/internal/application/auth"
	"peerperm/internal/config"

	"github.com/spf13/cobra"
)

var (
	tokenSecret  string
	tokenSubject string
	tokenTTL     int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin API token",
	Long:  `Generate a signed bearer token for the peerperm admin API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := tokenSecret
		if secret == "" {
			secret = os.Getenv("AUTH_SECRET")
		}

		service := auth.NewService(&config.AuthConfig{
			Enabled:  true,
			Secret:   secret,
			TokenTTL: tokenTTL,
		})
		token, err := service.GenerateToken(tokenSubject)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "HS256 signing secret (defaults to AUTH_SECRET)")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Token subject")
	tokenCmd.Flags().IntVar(&tokenTTL, "ttl", 3600, "Token lifetime in seconds")
}
