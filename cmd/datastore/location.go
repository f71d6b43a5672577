package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/datastore/pkg/settings"
)

var (
	locLat       float64
	locLng       float64
	locSecondary bool
)

var addLocationCmd = &cobra.Command{
	Use:   "add-location",
	Short: "Append a known location",
	Long:  `Append a location to knownLocations, or to knownLocations2 with --secondary. Duplicates are kept.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runLocation(cmd.Context(), (*settings.Service).AddLocation, (*settings.Service).AddLocation2)
	},
}

var removeLocationCmd = &cobra.Command{
	Use:   "remove-location",
	Short: "Remove a known location",
	Long:  `Remove the first matching location. Removing a location that is not present changes nothing.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runLocation(cmd.Context(), (*settings.Service).RemoveLocation, (*settings.Service).RemoveLocation2)
	},
}

type locationOp func(*settings.Service, context.Context, settings.Location) (settings.Settings, error)

func runLocation(ctx context.Context, primary, secondary locationOp) {
	loc, err := settings.NewLocation(locLat, locLng)
	if err != nil {
		fatal("Invalid location", err)
	}

	op, name := primary, "knownLocations"
	if locSecondary {
		op, name = secondary, "knownLocations2"
	}

	svc := openSettings()
	defer svc.Close()

	updated, err := op(svc, ctx, loc)
	if err != nil {
		fatal("Error updating settings", err)
	}

	locs := updated.Locations
	if locSecondary {
		locs = updated.Locations2
	}
	fmt.Printf("%s: %d\n", name, locs.Len())
}

func init() {
	for _, cmd := range []*cobra.Command{addLocationCmd, removeLocationCmd} {
		cmd.Flags().Float64Var(&locLat, "lat", 0, "Latitude in degrees [-90, 90]")
		cmd.Flags().Float64Var(&locLng, "lng", 0, "Longitude in degrees [-180, 180]")
		cmd.Flags().BoolVar(&locSecondary, "secondary", false, "Use knownLocations2")
		_ = cmd.MarkFlagRequired("lat")
		_ = cmd.MarkFlagRequired("lng")
		rootCmd.AddCommand(cmd)
	}
}
