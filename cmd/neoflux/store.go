package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/neoflux-dev/neoflux/internal/config"
	"github.com/neoflux-dev/neoflux/internal/diag"
	"github.com/neoflux-dev/neoflux/pkg/features/store"
	"github.com/neoflux-dev/neoflux/pkg/persist"
)

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Move store snapshots between files and backends",
		Long: `Export JSON state into the configured snapshot backend, import it
back out, and manage stored snapshots.

The backend comes from neoflux.json:

  {"persist": {"backend": "dir", "dir": ".neoflux/snapshots"}}
  {"persist": {"backend": "s3", "bucket": "my-app-state", "prefix": "prod"}}`,
	}

	cmd.AddCommand(
		storeExportCmd(),
		storeImportCmd(),
		storeListCmd(),
		storeDeleteCmd(),
	)

	return cmd
}

func storeExportCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "export <key>",
		Short: "Save JSON state to the backend under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreExport(cmd.Context(), args[0], input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON state file (default stdin)")

	return cmd
}

func runStoreExport(ctx context.Context, key, input string) error {
	backend, err := openBackend(ctx)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var tree map[string]any
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return fmt.Errorf("parse state: %w", err)
	}

	if err := persist.SaveStore(ctx, backend, key, store.New(tree)); err != nil {
		return err
	}

	success("Exported %q", key)
	return nil
}

func storeImportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <key>",
		Short: "Load a snapshot from the backend as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreImport(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write JSON here (default stdout)")

	return cmd
}

func runStoreImport(ctx context.Context, key, output string) error {
	backend, err := openBackend(ctx)
	if err != nil {
		return err
	}

	s, err := persist.LoadStore(ctx, backend, key)
	if err != nil {
		if err == persist.ErrNotFound {
			return diag.New("P001", key).Wrap(err)
		}
		return err
	}

	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	success("Imported %q to %s", key, output)
	return nil
}

func storeListCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots in the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := backend.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				info("no snapshots")
				return nil
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list keys with this prefix")

	return cmd
}

func storeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a snapshot from the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openBackend(cmd.Context())
			if err != nil {
				return err
			}
			if err := backend.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			success("Deleted %q", args[0])
			return nil
		},
	}
}

// openBackend builds the snapshot backend named by neoflux.json.
func openBackend(ctx context.Context) (persist.Backend, error) {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return nil, err
	}

	switch cfg.Persist.Backend {
	case "dir":
		return persist.NewDirBackend(cfg.Persist.Dir)
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(awsCfg)
		return persist.NewS3Backend(client, cfg.Persist.Bucket, cfg.Persist.Prefix), nil
	default:
		return nil, diag.New("P002", cfg.Persist.Backend)
	}
}
