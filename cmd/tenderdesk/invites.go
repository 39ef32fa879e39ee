package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var gcOlderThan time.Duration

func init() {
	gcCmd.Flags().DurationVar(&gcOlderThan, "older-than", 30*24*time.Hour, "Delete invites that expired longer ago than this")
	invitesCmd.AddCommand(gcCmd)
}

var invitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "Maintain membership invites",
}

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Delete expired, unaccepted invites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.invites.GarbageCollect(ctx, gcOlderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired invites\n", n)
		return nil
	},
}
