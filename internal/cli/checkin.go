package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/placepulse/placepulse/internal/adapter/driven/graphql"
	"github.com/placepulse/placepulse/internal/domain/model"
)

var (
	checkinLat     float64
	checkinLng     float64
	checkinMessage string
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in at coordinates",
	Long: `Check in at the given coordinates. Without --lat/--lng the configured
default coordinates are used.`,
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

		lat, lng := checkinLat, checkinLng
		if !cmd.Flags().Changed("lat") {
			lat = a.cfg.DefaultLat
		}
		if !cmd.Flags().Changed("lng") {
			lng = a.cfg.DefaultLng
		}

		checkin, err := a.client.CheckIn(ctx, model.CheckInInput{
			Latitude:  lat,
			Longitude: lng,
			Content:   checkinMessage,
		})
		if errors.Is(err, graphql.ErrSessionExpired) {
			a.auth.Logout(ctx)
			return errors.New("session expired, please log in again")
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if checkin.Place != nil {
			fmt.Fprintf(out, "checked in at %s\n", checkin.Place.Name)
		} else {
			fmt.Fprintf(out, "checked in at %.6f, %.6f\n", checkin.Latitude, checkin.Longitude)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkinCmd)
	checkinCmd.Flags().Float64Var(&checkinLat, "lat", 0, "latitude")
	checkinCmd.Flags().Float64Var(&checkinLng, "lng", 0, "longitude")
	checkinCmd.Flags().StringVar(&checkinMessage, "message", "", "optional check-in note")
}
