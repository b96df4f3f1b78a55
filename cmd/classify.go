package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/triagebot/internal/classifier"
	"github.com/ziadkadry99/triagebot/internal/config"
	"github.com/ziadkadry99/triagebot/internal/zendesk"
)

var (
	classifyStrategy string
	classifyStaffIDs string
	classifyDryRun   bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <ticket-id>",
	Short: "Classify a single ticket and post the result as a private note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticketID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ticket id %q", args[0])
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			cfg.Debug = true
		}
		if classifyStaffIDs != "" {
			cfg.StaffIDs = classifyStaffIDs
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		client := zendesk.NewClient(zendesk.Config{
			Subdomain: cfg.Zendesk.Subdomain,
			Email:     cfg.Zendesk.Email,
			APIToken:  cfg.Zendesk.APIToken,
		})

		cls, err := pickStrategy(cfg, classifyStrategy)
		if err != nil {
			return err
		}

		ctx := context.Background()
		conv, err := client.BuildConversation(ctx, ticketID, cfg.SupportStaffIDs())
		if err != nil {
			return fmt.Errorf("building conversation: %w", err)
		}
		if cfg.Debug {
			fmt.Fprintf(os.Stderr, "subject: %s, turns: %d, strategy: %s\n",
				conv.Subject, len(conv.Turns), cls.Name())
		}

		result, err := cls.Classify(ctx, conv.Subject, conv.Render())
		if err != nil {
			return fmt.Errorf("classifying: %w", err)
		}

		out, _ := json.MarshalIndent(map[string]any{
			"ticket_id":      ticketID,
			"classification": result.Classification,
			"confidence":     result.Confidence,
			"reasoning":      result.Reasoning,
		}, "", "  ")
		fmt.Println(string(out))

		if classifyDryRun {
			return nil
		}
		if err := client.AddPrivateComment(ctx, ticketID, result.NoteBody()); err != nil {
			return fmt.Errorf("posting private note: %w", err)
		}
		fmt.Println("Private note added to the ticket.")
		return nil
	},
}

// pickStrategy honors an explicit --strategy override, otherwise runs
// the configuration-driven selection.
func pickStrategy(cfg *config.Config, strategy string) (classifier.Classifier, error) {
	switch strategy {
	case "":
		return classifier.Choose(cfg), nil
	case "rules":
		return classifier.NewRuleBased(), nil
	case "llm":
		return classifier.NewLLMFromConfig(cfg)
	case "vector":
		return classifier.NewVectorLLMFromConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown strategy %q: must be rules, llm or vector", strategy)
	}
}

func init() {
	classifyCmd.Flags().StringVar(&classifyStrategy, "strategy", "", "force a strategy: rules, llm or vector")
	classifyCmd.Flags().StringVar(&classifyStaffIDs, "support-staff-ids", "", "comma-separated support staff user IDs")
	classifyCmd.Flags().BoolVar(&classifyDryRun, "dry-run", false, "print the classification without posting a note")
	rootCmd.AddCommand(classifyCmd)
}
