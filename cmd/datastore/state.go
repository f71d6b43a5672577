package main

import (
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/datastore"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the internal state of the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openSettings(datastore.WithReadOnly(true))
		defer svc.Close()

		var st introspection.Introspectable = svc.Store()
		if err := writeJSON(os.Stdout, st.State()); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
