package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/diversityworkbench/divservice/internal/iocache"
	"github.com/diversityworkbench/divservice/internal/iodb"
	"github.com/diversityworkbench/divservice/internal/iodiscovery"
	"github.com/diversityworkbench/divservice/pkg/ent"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	modulesRepo string
	modulesUser string
	modulesPass string
)

func getModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Scan a repository server for Workbench modules",
		Long: `Scan every catalog of a configured repository server and report
which Diversity Workbench module each one hosts.

A catalog is listed when the given login can open it and the catalog
identifies itself through its module marker function. Catalogs without
access or without a marker are skipped silently, the same way the
server skips them for clients.

Examples:
  divservice modules --repository "Diversity Collection" --user meyer --password secret`,
		RunE: runModules,
	}

	cmd.Flags().StringVar(&modulesRepo, "repository", "",
		"configured repository name to scan (required)")
	cmd.Flags().StringVar(&modulesUser, "user", "",
		"login name for the scan (required)")
	cmd.Flags().StringVar(&modulesPass, "password", "",
		"password for the scan (required)")
	_ = cmd.MarkFlagRequired("repository")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runModules(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	opener := iodb.NewOpener(iodb.NewConnector(), cfg)
	src, err := opener.OpenPrivate(ctx, ent.UserCredentials{
		LoginName:  modulesUser,
		Password:   modulesPass,
		Repository: modulesRepo,
	})
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer src.Close()

	// A one-shot scan has no use for cached results.
	disc := iodiscovery.New(iocache.NewMemory(), 0)
	modules, err := disc.Modules(ctx, src)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	types := make([]string, 0, len(modules))
	for t := range modules {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		fmt.Printf("%s:\n", t)
		for _, catalog := range modules[t] {
			fmt.Printf("  %s\n", catalog)
		}
	}
	if len(types) == 0 {
		fmt.Println("No modules found for this login.")
	}
	return nil
}
