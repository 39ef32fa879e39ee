package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenderdesk/tenderdesk/internal/service"
)

var (
	operatorEmail   string
	operatorName    string
	operatorDomains []string
)

func init() {
	provisionCmd.Flags().StringVar(&operatorEmail, "email", "", "Email of the first super admin; the user must have logged in once")
	provisionCmd.Flags().StringVar(&operatorName, "name", "", "Name of the operator company")
	provisionCmd.Flags().StringSliceVar(&operatorDomains, "domain", nil, "Email domain whose verified users join the operator company automatically")
	_ = provisionCmd.MarkFlagRequired("email")
	_ = provisionCmd.MarkFlagRequired("name")

	operatorCmd.AddCommand(provisionCmd)
}

var operatorCmd = &cobra.Command{
	Use:   "operator",
	Short: "Manage the platform operator company",
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the operator company with a super admin owner",
	Long: `Create the platform operator company. The given user becomes its owner
with the super_admin platform role. Verified users from the --domain email
domains join it automatically on their next login.

Examples:
  tenderdesk operator provision --email ops@tenderdesk.nl --name "TenderDesk" --domain tenderdesk.nl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.users.FindByEmail(ctx, operatorEmail)
		if err != nil {
			return fmt.Errorf("finding user %s: %w", operatorEmail, err)
		}

		out, err := a.companies.ProvisionOperator(ctx, user, service.CreateCompanyInput{
			Name:                operatorName,
			AllowedEmailDomains: operatorDomains,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Operator company %q created with tenant id %s\n", out.Company.Name, out.Company.TenantID)
		return nil
	},
}
