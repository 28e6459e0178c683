package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tracklink/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.WriteSample(targetPath, overwrite)
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use --overwrite to replace it)", err)
			}
			if err != nil {
				return err
			}

			// Load resolves the sample's relative paths the same way convert will.
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "  library export: %s\n", cfg.Paths.LibraryXML)
			fmt.Fprintf(out, "  Exportify CSVs: %s\n", cfg.Paths.CSVDir)
			fmt.Fprintf(out, "  playlists out:  %s\n", cfg.Paths.OutputDir)
			fmt.Fprintf(out, "  deep inspection: %s (%d file reads per run)\n", yesNo(cfg.Confirm.Enabled), cfg.Confirm.ReadBudget)
			fmt.Fprintln(out, "Edit [paths] if those locations differ, then run `tracklink convert`.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			encoded, err := cfg.Encode()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ctx.configSeen {
				fmt.Fprintf(out, "# source: %s\n", ctx.configPath)
			} else {
				fmt.Fprintf(out, "# source: defaults (%s not found)\n", ctx.configPath)
			}
			fmt.Fprintf(out, "# deep inspection: %s\n", yesNo(cfg.Confirm.Enabled))
			fmt.Fprint(out, encoded)
			return nil
		},
	}
}
