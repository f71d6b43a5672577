package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/datastore"
	"github.com/aretw0/datastore/pkg/settings"
)

var (
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Long:  `Print the current settings. Outputs a readable summary by default, or the JSON document with --json.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openSettings(datastore.WithReadOnly(true))
		defer svc.Close()

		current := svc.Current()
		if showJSON {
			if err := writeJSON(os.Stdout, current); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		printSettings(os.Stdout, svc.Store().Location(), current)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printSettings(w io.Writer, location string, s settings.Settings) {
	label := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	dim.Fprintln(w, location)
	label.Fprint(w, "language: ")
	fmt.Fprintln(w, color.GreenString(s.Language.String()))

	printLocations(w, label, "knownLocations", s.Locations)
	printLocations(w, label, "knownLocations2", s.Locations2)
}

func printLocations(w io.Writer, label *color.Color, name string, locs settings.Locations) {
	label.Fprintf(w, "%s: ", name)
	if locs.Len() == 0 {
		fmt.Fprintln(w, color.YellowString("(none)"))
		return
	}
	fmt.Fprintln(w, locs.Len())
	i := 0
	for loc := range locs.All() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, loc)
		i++
	}
}
