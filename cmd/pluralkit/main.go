// Package main provides the pluralkit command-line tool.
//
// Features:
//   - Pluralize and singularize words from the shell
//   - Count-aware inflection ("3 cats", "1 cat")
//   - Locale rule bundles from a directory or an S3, GCS or Azure Blob bucket
//   - Bundle linting and fetching
//
// Usage:
//
//	pluralkit <command> [options]
//
// Examples:
//
//	# Inflect for a count
//	pluralkit inflect cat --count 3 --inclusive
//
//	# Use the French bundle from a bucket
//	pluralkit inflect croissant --rules s3://my-bucket/rules --locale fr
//
//	# Validate bundles before deploying them
//	pluralkit bundle lint --dir ./rules
//
// Every flag can also be set with a PLURALKIT_ environment variable
// (PLURALKIT_LOG_LEVEL=debug) or in a config file passed with --config.
//
// Installation:
//
//	go install github.com/kdsmith18542/pluralkit/cmd/pluralkit@latest
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
