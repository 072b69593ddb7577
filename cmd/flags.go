package cmd

import (
	"github.com/gnames/brewdb/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

func replaceFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("replace") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("replace")
	return []config.Option{config.OptImportReplace(b)}
}

func formatFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("format") {
		return nil
	}
	s, _ := cmd.Flags().GetString("format")
	return []config.Option{config.OptImportFormat(s)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

func allFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("all") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("all")
	return []config.Option{config.OptMappingAll(b)}
}

func fuzzyFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("fuzzy") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("fuzzy")
	return []config.Option{config.OptMappingFuzzyRecipeName(b)}
}

func batchSizeFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("batch-size") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("batch-size")
	return []config.Option{config.OptDatabaseBatchSize(i)}
}

// applyFlags updates the config with flags set on the command line.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	var res []config.Option
	for _, v := range flags {
		res = append(res, v(cmd)...)
	}
	if len(res) > 0 {
		cfg.Update(res)
	}
}
