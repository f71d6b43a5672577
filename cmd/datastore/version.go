package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/datastore"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of datastore",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("datastore version %s\n", strings.TrimSpace(datastore.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
