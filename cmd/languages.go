package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentscout/screener/internal/langid"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages an interview can switch to",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := langid.NewCatalog(cfg.Interview.Languages)
		if err != nil {
			return fmt.Errorf("interview.languages: %w", err)
		}

		fmt.Printf("%-4s  %-4s  %-12s  %s\n", "", "Code", "Name", "Native")
		for _, l := range catalog.List() {
			def := " "
			if l.Code == cfg.Interview.DefaultLanguage {
				def = "*"
			}
			fmt.Printf("%s %-2s  %-4s  %-12s  %s\n", def, l.Flag, l.Code, l.Name, l.NativeName)
		}
		return nil
	},
}
