package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "triagebot",
	Short: "Classify helpdesk tickets and post triage notes",
	Long: `Triagebot receives helpdesk webhook notifications, pulls the ticket
conversation from the Zendesk API, classifies it (keyword rules, LLM,
or LLM with semantic retrieval) and posts the classification back as an
internal note, optionally with a pre-written response template.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "triagebot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
