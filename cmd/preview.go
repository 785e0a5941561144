package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathplace/internal/adaptive"
	"github.com/abhisek/mathplace/internal/logging"
	"github.com/abhisek/mathplace/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Take a placement test in plain line mode (no database)",
	Long: `Generate and answer adaptive questions on stdin/stdout.

This is a developer tool for judging question quality and the difficulty
adjustments without the full-screen UI. Nothing is written to the database.
Type "?" or leave the answer blank to say you don't know.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("lower", "", "Lower bound difficulty (default from config)")
	previewCmd.Flags().String("upper", "", "Upper bound difficulty (default from config)")
	previewCmd.Flags().StringSlice("skills", nil, "Comma-separated skill list, easiest first; enables skill-list mode")
	previewCmd.Flags().Int("count", 5, "Number of questions to answer")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging, logging.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	settings := quizSettings(cfg)
	if v, _ := cmd.Flags().GetString("lower"); v != "" {
		settings.Lower = v
	}
	if v, _ := cmd.Flags().GetString("upper"); v != "" {
		settings.Upper = v
	}
	if skills, _ := cmd.Flags().GetStringSlice("skills"); len(skills) > 0 {
		settings.UseSkillsList = true
		settings.Skills = skills
	}
	count, _ := cmd.Flags().GetInt("count")

	ctx := cmd.Context()
	deps, err := buildGenerator(ctx, cfg, nil, log)
	if err != nil {
		return err
	}

	ctrl := quiz.NewController(deps.Generator, controllerTimeout(cfg), quiz.WithLogger(log))
	defer ctrl.Close()

	return previewLoop(ctx, ctrl, settings, count, os.Stdin, cmd.OutOrStdout())
}

// previewLoop runs count questions through ctrl, reading answers from in.
func previewLoop(ctx context.Context, ctrl *quiz.Controller, settings quiz.Settings, count int, in io.Reader, out io.Writer) error {
	t, err := ctrl.Start(settings)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Mode: %s\n", settings.Descriptor().Mode())
	fmt.Fprintf(out, "Generating question 1...\n\n")
	if err := ctrl.Run(ctx, t); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for i := 1; i <= count; i++ {
		sess := ctrl.Session()
		q := sess.Question

		fmt.Fprintf(out, "── Question %d/%d · %s ──\n", i, count, sess.Difficulty)
		fmt.Fprintln(out, q.Question)
		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}

		answer := strings.TrimSpace(scanner.Text())
		var eval quiz.Evaluation
		if answer == "" || answer == "?" {
			eval, t, err = ctrl.DontKnow()
		} else {
			eval, t, err = ctrl.Submit(answer)
		}
		if err != nil {
			return err
		}
		printEvaluation(out, eval, q.Explanation)

		if i == count {
			break
		}
		if err := ctrl.Run(ctx, t); err != nil {
			return err
		}
		if err := ctrl.Advance(); err != nil {
			return err
		}
	}

	if sess := ctrl.Session(); sess != nil {
		fmt.Fprintf(out, "── Summary: %d/%d correct, final level %q ──\n", sess.Correct, sess.Answered, sess.Difficulty)
	}
	ctrl.ReturnToSettings()
	return nil
}

func printEvaluation(out io.Writer, eval quiz.Evaluation, explanation string) {
	switch eval.Outcome {
	case adaptive.OutcomeCorrect:
		fmt.Fprintf(out, "Correct in %ds (%s). Streak %d.\n", eval.ResponseSeconds, eval.Result.Label(), eval.Result.Streak)
	case adaptive.OutcomeIncorrect:
		fmt.Fprintf(out, "Wrong. Answer: %s\n", eval.Expected)
	default:
		fmt.Fprintf(out, "Answer: %s\n", eval.Expected)
	}
	if explanation != "" {
		fmt.Fprintf(out, "Explanation: %s\n", explanation)
	}
	if eval.Selection.Instruction != "" {
		fmt.Fprintf(out, "Next: %s\n", eval.Selection.Instruction)
	}
	fmt.Fprintln(out)
}
