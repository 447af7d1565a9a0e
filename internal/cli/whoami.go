package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/placepulse/placepulse/internal/adapter/driven/graphql"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.auth.State().IsAuthenticated {
			return errors.New("not logged in")
		}

		profile, err := a.client.Me(ctx)
		if errors.Is(err, graphql.ErrSessionExpired) {
			a.auth.Logout(ctx)
			return errors.New("session expired, please log in again")
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s <%s>\n", profile.Name, profile.Email)
		if profile.Location != "" {
			fmt.Fprintf(out, "location: %s\n", profile.Location)
		}
		if profile.Bio != "" {
			fmt.Fprintf(out, "bio: %s\n", profile.Bio)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
