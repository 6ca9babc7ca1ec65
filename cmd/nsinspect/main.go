/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command nsinspect validates a columnspace configuration file, lists the
// namespaces it declares and loads records from DynamoDB to show their
// namespace values.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/columnspace"
	"github.com/suparena/columnspace/config"
	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/datastore/ddb"
)

// storeFactory opens the data store used by the get command.
type storeFactory func(ctx context.Context, aws config.AWS, logger *zap.Logger) (datastore.DataStore, error)

func dynamoStore(ctx context.Context, aws config.AWS, logger *zap.Logger) (datastore.DataStore, error) {
	return ddb.NewDynamodbDataStore(ctx, aws.AccessKey, aws.SecretKey, aws.Region, aws.Table, ddb.WithLogger(logger))
}

type app struct {
	configPath string
	envFile    string
	verbose    bool

	out      io.Writer
	logger   *zap.Logger
	newStore storeFactory
}

func main() {
	if err := newRootCmd(os.Stdout, dynamoStore).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, newStore storeFactory) *cobra.Command {
	a := &app{out: out, newStore: newStore, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "nsinspect",
		Short:         "Inspect column namespaces declared in a configuration file",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "columnspace.yaml", "configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(a.namespacesCmd(), a.getCmd(), versionCmd())
	return root
}

func (a *app) initLogger() error {
	if !a.verbose {
		return nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) build() (map[string]*config.Model, error) {
	f, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	return f.Build(columnspace.WithLogger(a.logger))
}

func (a *app) namespacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces",
		Short: "List every namespace with its class and field mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.build()
			if err != nil {
				return err
			}
			for _, name := range sortedKeys(models) {
				s := models[name].Schema
				fmt.Fprintf(a.out, "%s\n", name)
				for _, ns := range columnspace.Namespaces(s) {
					fmt.Fprintf(a.out, "  %s (%s)\n", ns.Name, ns.Class.Name())
					for i, flat := range ns.FlatFields {
						fmt.Fprintf(a.out, "    %s -> %s\n", flat, ns.ShortNames[i])
					}
				}
			}
			return nil
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get SCHEMA KEY",
		Short: "Load a record and print its namespace values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaName, key := args[0], args[1]

			models, err := a.build()
			if err != nil {
				return err
			}
			m, ok := models[schemaName]
			if !ok {
				return fmt.Errorf("schema %q is not declared in %s", schemaName, a.configPath)
			}

			aws, err := config.LoadAWS(a.envFile)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store, err := a.newStore(ctx, aws, a.logger)
			if err != nil {
				return err
			}

			stores := columnspace.NewStores()
			if err := stores.RegisterDataStore(schemaName, store); err != nil {
				return err
			}
			rec, err := stores.Load(ctx, m.Schema, key)
			if err != nil {
				return err
			}

			for _, name := range sortedKeys(m.Accessors) {
				fmt.Fprintf(a.out, "%s: %s\n", name, m.Accessors[name].Get(rec))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&a.envFile, "env", ".env", "dotenv file with AWS settings")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := columnspace.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "columnspace nsinspect version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
