package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	internal "github.com/cspforge/xcells/xcells"
	"github.com/cspforge/xcells/xcells/config"
	"github.com/cspforge/xcells/xcells/declare"
	"github.com/cspforge/xcells/xcells/declfile"
	"github.com/cspforge/xcells/xcells/domains"
	"github.com/cspforge/xcells/xcells/varrays"
)

var (
	configPath   string
	workers      int
	catchAllSpec string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   internal.DefaultAppName,
		Short: "Resolve variable-array declarations of CSP instance files",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	resolveCmd := &cobra.Command{
		Use:   "resolve <declarations.hcl>",
		Short: "Resolve a declarations file and print the variable table",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}
	resolveCmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = one per CPU core)")
	resolveCmd.Flags().StringVar(&catchAllSpec, "catch-all", "", "integer domain applied to cells left unassigned")
	rootCmd.AddCommand(resolveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	logger := internal.GetLogger()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}
	if workers > 0 {
		cfg.Resolver.Workers = workers
	}
	if catchAllSpec != "" {
		cfg.Resolver.CatchAllDomain = catchAllSpec
	}

	var catchAll domains.Domain
	if cfg.Resolver.CatchAllDomain != "" {
		catchAll, err = domains.ParseInt(cfg.Resolver.CatchAllDomain)
		if err != nil {
			logger.Error().Err(err).Msg("bad catch-all domain")
			return err
		}
	}

	decls, err := declfile.Load(args[0])
	if err != nil {
		logger.Error().Err(err).Str("file", args[0]).Msg("failed to load declarations")
		return err
	}

	resolver := declare.NewResolver(declare.ResolveOptions{
		Workers:  cfg.Resolver.Workers,
		CatchAll: catchAll,
	})
	registry, err := resolver.ResolveAll(cmd.Context(), decls)
	if err != nil {
		logger.Error().Err(err).Msg("resolution failed")
		return err
	}

	registry.Walk(func(store *varrays.FlatArrayStore) bool {
		fmt.Printf("%s  rank=%d cells=%d\n", store.String(), store.Rank(), store.Len())
		for _, entry := range store.Entries() {
			fmt.Printf("  %-20s %s\n", entry.Name(), entry.Domain().Describe())
		}
		return false
	})
	return nil
}
