package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenderdesk/tenderdesk/internal/auth"
)

var (
	tokenSubject    string
	tokenEmail      string
	tokenName       string
	tokenUnverified bool
)

func init() {
	issueCmd.Flags().StringVar(&tokenSubject, "subject", "", "External id of the principal")
	issueCmd.Flags().StringVar(&tokenEmail, "email", "", "Email of the principal")
	issueCmd.Flags().StringVar(&tokenName, "name", "", "Display name")
	issueCmd.Flags().BoolVar(&tokenUnverified, "unverified", false, "Mark the email as unverified")
	_ = issueCmd.MarkFlagRequired("subject")
	_ = issueCmd.MarkFlagRequired("email")

	tokenCmd.AddCommand(issueCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Session token utilities",
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Sign a session token for local development",
	Long: `Sign a session token with the configured JWT secret, standing in for the
identity provider during local development.

Examples:
  curl -H "Authorization: Bearer $(tenderdesk token issue --subject u1 --email jan@acme.nl)" \
    -X POST localhost:8080/api/auth/login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryPeriod)
		token, err := tokens.Generate(auth.Principal{
			ExternalID:    tokenSubject,
			Email:         tokenEmail,
			EmailVerified: !tokenUnverified,
			Name:          tokenName,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
