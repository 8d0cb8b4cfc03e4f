package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdsmith18542/pluralkit/pluralize"
)

func (a *app) inflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inflect <word>",
		Short: "Inflect a word for a count",
		Example: `  pluralkit inflect cat --count 3 --inclusive
  pluralkit inflect person -n 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Pluralize(args[0], a.v.GetInt("count"), a.v.GetBool("inclusive")))
			return nil
		},
	}

	cmd.Flags().IntP("count", "n", 2, "Count the word is inflected for")
	cmd.Flags().BoolP("inclusive", "i", false, "Prefix the result with the count")
	return cmd
}

func (a *app) pluralCmd() *cobra.Command {
	return a.wordsCmd("plural <word>...", "Print the plural form of each word", (*pluralize.Engine).Plural)
}

func (a *app) singularCmd() *cobra.Command {
	return a.wordsCmd("singular <word>...", "Print the singular form of each word", (*pluralize.Engine).Singular)
}

// wordsCmd builds a command that maps every argument through fn, one per line.
func (a *app) wordsCmd(use, short string, fn func(*pluralize.Engine, string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			for _, word := range args {
				fmt.Fprintln(cmd.OutOrStdout(), fn(e, word))
			}
			return nil
		},
	}
}
