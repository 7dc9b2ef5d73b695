package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/p5embed/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize p5embed configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure p5embed and writes the config file (default .p5embed.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
