package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "p5embed",
	Short: "Share and embed p5.js sketches",
	Long: `p5embed serves a live p5.js sketch editor, stores sketches and hands
out iframe embed code for them. The same store is exposed to AI agents
over MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".p5embed.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
