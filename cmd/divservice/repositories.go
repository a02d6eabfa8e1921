package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func getRepositoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repositories",
		Short: "List the configured repositories",
		Long: `List the Diversity installations clients may select, as configured
in the 'repositories' section of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if len(cfg.Repositories) == 0 {
				fmt.Println("No repositories are configured.")
				return nil
			}
			for _, r := range cfg.Repositories {
				fmt.Printf("%s\t%s/%s\n", r.Name, r.Server, r.Catalog)
			}
			return nil
		},
	}
}
