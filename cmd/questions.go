package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentscout/screener/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Work with technical question generation",
}

var questionsPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate technical questions for a tech stack (no session is stored)",
	Long: `Generate the technical questions a candidate with the given stack and
experience would be asked, and optionally answer them interactively.

This is a stateless developer tool for judging question quality. Without a
configured LLM provider it shows the offline placeholder set, unless
--require-llm is given.`,
	RunE: runQuestionsPreview,
}

func init() {
	questionsPreviewCmd.Flags().String("stack", "", "comma-separated technologies (required)")
	questionsPreviewCmd.Flags().Int("years", 0, "years of experience")
	questionsPreviewCmd.Flags().BoolP("interactive", "i", false, "answer each question at the prompt")
	questionsPreviewCmd.Flags().Bool("require-llm", false, "fail instead of showing placeholders when no provider is configured")
	_ = questionsPreviewCmd.MarkFlagRequired("stack")

	questionsCmd.AddCommand(questionsPreviewCmd)
}

func runQuestionsPreview(cmd *cobra.Command, args []string) error {
	stackVal, _ := cmd.Flags().GetString("stack")
	years, _ := cmd.Flags().GetInt("years")
	interactive, _ := cmd.Flags().GetBool("interactive")
	requireLLM, _ := cmd.Flags().GetBool("require-llm")

	var stack []string
	for _, t := range strings.Split(stackVal, ",") {
		if t = strings.TrimSpace(t); t != "" {
			stack = append(stack, t)
		}
	}
	if years < 0 {
		return fmt.Errorf("--years must not be negative")
	}

	return withRuntime(cmd, runtimeOptions{needLLM: requireLLM}, func(ctx context.Context, rt *runtime) error {
		gen := rt.questionSource()

		fmt.Printf("Stack: %s (%d years, %s)\n", strings.Join(stack, ", "), years, questions.LevelFor(years))
		if rt.provider == nil {
			fmt.Println("No LLM provider configured, showing the placeholder set.")
		}
		fmt.Println()

		qs, err := gen.Questions(ctx, stack, years)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		scanner := bufio.NewScanner(os.Stdin)
		var answered int
		for i, q := range qs {
			fmt.Printf("── Question %d/%d ──\n", i+1, len(qs))
			fmt.Println(q)

			if !interactive {
				fmt.Println()
				continue
			}

			fmt.Print("\nYour answer: ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				break
			}
			if strings.TrimSpace(scanner.Text()) == "" {
				fmt.Print("(skipped)\n\n")
				continue
			}
			answered++
			fmt.Println()
		}

		if interactive {
			fmt.Printf("── Answered %d/%d ──\n", answered, len(qs))
		}
		return nil
	})
}
