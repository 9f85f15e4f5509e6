package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ats-backend/internal/extract"
	"ats-backend/internal/scoring"
)

const stdinArg = "-"

var errBelowMinimum = errors.New("score below minimum")

func newScoreCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <file>...",
		Short: "Extract and score one or more resume files (PDF, DOCX or text; - reads text from stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, v, args)
		},
	}

	cmd.Flags().BoolP("pretty", "p", false, "indent the JSON output")
	cmd.Flags().Int("min-score", 0, "exit with an error when any overall score is below this value")
	_ = v.BindPFlag("pretty", cmd.Flags().Lookup("pretty"))
	_ = v.BindPFlag("min-score", cmd.Flags().Lookup("min-score"))
	return cmd
}

func runScore(cmd *cobra.Command, v *viper.Viper, args []string) error {
	extractor := extract.NewExtractor()
	scorer := scoring.NewScorer(nil)

	results := make([]scoring.ResumeAnalysis, 0, len(args))
	for _, arg := range args {
		text, name, err := readResume(cmd, extractor, arg)
		if err != nil {
			return err
		}
		results = append(results, scorer.Analyze(text, name))
	}

	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}
	if err := writeJSON(cmd.OutOrStdout(), payload, v.GetBool("pretty")); err != nil {
		return err
	}

	minScore := v.GetInt("min-score")
	for _, r := range results {
		if r.OverallScore < minScore {
			return fmt.Errorf("%w: %s scored %d, minimum %d", errBelowMinimum, r.Filename, r.OverallScore, minScore)
		}
	}
	return nil
}

func readResume(cmd *cobra.Command, extractor *extract.Extractor, arg string) (string, string, error) {
	if arg == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return extract.Clean(string(data)), "stdin.txt", nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", arg, err)
	}
	name := filepath.Base(arg)
	mimeType := extract.DetectMimeType(data, name)
	if !extract.Supported(mimeType) {
		return "", "", fmt.Errorf("%s: %w: %s", arg, extract.ErrUnsupportedType, mimeType)
	}
	text := extractor.Extract(cmd.Context(), data, mimeType, name)
	if text == "" {
		return "", "", fmt.Errorf("%s: could not extract text from document", arg)
	}
	return text, name, nil
}

func writeJSON(w io.Writer, payload any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(payload)
}
