package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/placepulse/placepulse/internal/domain/model"
)

var (
	loginEmail    string
	loginPassword string
	loginRemember bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and start a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		session, err := a.auth.Login(ctx, loginEmail, loginPassword, loginRemember)
		if err != nil {
			return formattedFormError(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", session.User.Name)
		if !loginRemember {
			fmt.Fprintln(cmd.OutOrStdout(), "session is not persisted; it ends with this process")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", true, "persist the session for future runs")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

// formattedFormError renders field-keyed validation errors one per line;
// anything else passes through unchanged.
func formattedFormError(err error) error {
	var fe *model.FormError
	if !errors.As(err, &fe) || fe.Kind != model.FormErrorFields {
		return err
	}
	return errors.New(fe.Error())
}
