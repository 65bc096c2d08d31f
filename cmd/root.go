package cmd

import (
	"github.com/spf13/cobra"

	"github.com/talentscout/screener/internal/config"
)

var (
	cfgFile string

	// v holds defaults, TALENTSCOUT_* env bindings and the bound flags.
	v = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "talentscout",
	Short: "Conversational candidate screening",
	Long: `TalentScout runs a first-round screening interview: it collects the
candidate's details, asks technical questions about their stack and hands
recruiters a structured record with an emotional read of the conversation.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, "")
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is talentscout.yaml in the current directory)")
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database (overrides TALENTSCOUT_DB)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = v.BindPFlag("storage.db", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(versionCmd)
}
