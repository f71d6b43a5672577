package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/datastore/pkg/settings"
)

var setLanguageCmd = &cobra.Command{
	Use:       "set-language [ENGLISH|GERMAN|SPANISH]",
	Short:     "Change the interface language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"ENGLISH", "GERMAN", "SPANISH"},
	Run: func(cmd *cobra.Command, args []string) {
		lang, err := settings.ParseLanguage(args[0])
		if err != nil {
			fatal("Invalid language", err)
		}

		svc := openSettings()
		defer svc.Close()

		updated, err := svc.SetLanguage(cmd.Context(), lang)
		if err != nil {
			fatal("Error updating settings", err)
		}
		fmt.Printf("language: %s\n", updated.Language)
	},
}

func init() {
	rootCmd.AddCommand(setLanguageCmd)
}
