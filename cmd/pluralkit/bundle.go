package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kdsmith18542/pluralkit/internal/logging"
	"github.com/kdsmith18542/pluralkit/pluralize"
	"github.com/kdsmith18542/pluralkit/source"
)

func (a *app) bundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage rule bundles",
	}

	lint := &cobra.Command{
		Use:   "lint",
		Short: "Lint rule bundles for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return LintBundles(cmd.Context(), cmd.OutOrStdout(), a.v.GetString("dir"))
		},
	}
	lint.Flags().String("dir", "./rules", "Directory containing rule bundles")

	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Copy rule bundles from a rule source into a directory",
		Example: `  pluralkit bundle fetch --from s3://my-bucket/rules?region=eu-west-1 --dir ./rules
  pluralkit bundle fetch --from gs://my-bucket/rules --dir ./rules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := a.v.GetString("from")
			if from == "" {
				return fmt.Errorf("--from is required")
			}
			return FetchBundles(cmd.Context(), cmd.OutOrStdout(), from, a.v.GetString("dir"))
		},
	}
	fetch.Flags().String("from", "", "Rule source URI (directory, s3://, gs://, azblob://)")
	fetch.Flags().String("dir", "./rules", "Directory the bundles are written to")

	cmd.AddCommand(lint, fetch)
	return cmd
}

// LintBundles checks that every bundle under dir decodes and that all of its
// patterns compile.
func LintBundles(ctx context.Context, out io.Writer, dir string) error {
	src, err := source.NewLocal(dir)
	if err != nil {
		return fmt.Errorf("failed to read bundle directory: %w", err)
	}
	defer src.Close()

	names, err := bundleNames(ctx, src)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no TOML bundles found in %s", dir)
	}

	fmt.Fprintf(out, "Linting %d bundles...\n\n", len(names))

	failed := 0
	for _, name := range names {
		bundle, err := readBundle(ctx, src, name)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  ❌ %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(out, "  ✓ %s (%d entries)\n", name, bundle.Len())
	}
	fmt.Fprintln(out)

	if failed > 0 {
		return fmt.Errorf("linting found issues in %d bundles", failed)
	}
	fmt.Fprintln(out, "✓ All bundles passed linting!")
	return nil
}

// FetchBundles copies every bundle from the source at uri into dir. All
// bundles are validated before anything is written.
func FetchBundles(ctx context.Context, out io.Writer, uri, dir string) error {
	logger := logging.FromContext(ctx)

	src, err := source.Open(ctx, uri)
	if err != nil {
		return err
	}
	defer src.Close()

	names, err := bundleNames(ctx, src)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no TOML bundles found in %s", uri)
	}

	contents := make(map[string][]byte, len(names))
	for _, name := range names {
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			return fmt.Errorf("refusing to write bundle outside %s: %s", dir, name)
		}
		data, err := readAll(ctx, src, name)
		if err != nil {
			return err
		}
		bundle, err := pluralize.ParseBundle(data)
		if err == nil {
			err = bundle.Validate()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		contents[name] = data
	}

	for _, name := range names {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(target, contents[name], 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		logger.Debug("fetched bundle", "name", name, "bytes", len(contents[name]))
		fmt.Fprintf(out, "✓ %s\n", name)
	}

	fmt.Fprintf(out, "Fetched %d bundles into %s\n", len(names), dir)
	return nil
}

func bundleNames(ctx context.Context, src source.Source) ([]string, error) {
	all, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range all {
		if source.IsBundle(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

func readAll(ctx context.Context, src source.Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readBundle(ctx context.Context, src source.Source, name string) (*pluralize.Bundle, error) {
	data, err := readAll(ctx, src, name)
	if err != nil {
		return nil, err
	}
	bundle, err := pluralize.ParseBundle(data)
	if err != nil {
		return nil, err
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}
