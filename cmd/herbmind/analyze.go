package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/thebtf/herbmind/internal/analysis"
	"github.com/thebtf/herbmind/pkg/models"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		req    analysis.Request
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <description...>",
		Short: "Analyze a symptom description",
		Long: `Analyze a free-text symptom description and print safe remedy suggestions.

Examples:
  herbmind analyze "I have a mild headache since yesterday" --age 30
  herbmind analyze "nausea for 2 days" --age 40 --condition pregnancy --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeCatalog()

			if req.TopK <= 0 {
				req.TopK = a.cfg.TopK
			}
			req.Text = strings.Join(args, " ")
			svc := analysis.New(cat, analysis.Options{TopK: a.cfg.TopK, SeverityWindow: a.cfg.SeverityWindow})
			result, err := svc.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().IntVar(&req.Profile.Age, "age", 30, "Age in years (1-120)")
	cmd.Flags().StringSliceVar(&req.Profile.Conditions, "condition", nil, "Existing condition (repeatable)")
	cmd.Flags().StringSliceVar(&req.Profile.Medications, "medication", nil, "Current medication (repeatable)")
	cmd.Flags().IntVar(&req.TopK, "top-k", 0, "Maximum number of remedies")
	cmd.Flags().BoolVar(&req.IncludeGraph, "graph", false, "Include the relationship graph (JSON output)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(w io.Writer, r *analysis.Result) {
	switch r.Status {
	case analysis.StatusEmergency:
		fmt.Fprintln(w, "EMERGENCY: these symptoms may require immediate medical attention!")
		fmt.Fprintf(w, "Emergency indicators: %s\n", strings.Join(r.EmergencyFlags, ", "))
		fmt.Fprintln(w, r.Message)
		return
	case analysis.StatusNoResults:
		printSymptoms(w, r.Symptoms)
		fmt.Fprintln(w, r.Message)
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Disclaimer)
		return
	}

	printSymptoms(w, r.Symptoms)
	fmt.Fprintln(w, r.Message)
	for i, m := range r.Remedies {
		fmt.Fprintf(w, "\n%d. %s (%s), confidence %.2f\n", i+1, m.Name, m.ScientificName, m.ConfidenceScore)
		if m.TraditionalSystem != "" {
			fmt.Fprintf(w, "   Tradition: %s\n", m.TraditionalSystem)
		}
		for _, reason := range m.MatchReasons {
			fmt.Fprintf(w, "   - %s\n", reason)
		}
		if len(m.Preparation) > 0 {
			fmt.Fprintf(w, "   Preparation: %s\n", strings.Join(m.Preparation, "; "))
		}
		if m.Dosage != "" {
			fmt.Fprintf(w, "   Dosage: %s\n", m.Dosage)
		}
		if m.Safety != nil {
			for _, warning := range m.Safety.Warnings {
				fmt.Fprintf(w, "   Warning: %s\n", warning)
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Disclaimer)
}

func printSymptoms(w io.Writer, symptoms []models.SymptomObservation) {
	if len(symptoms) == 0 {
		fmt.Fprintln(w, "No symptoms recognized.")
		return
	}
	fmt.Fprintln(w, "Symptoms:")
	for _, s := range symptoms {
		fmt.Fprintf(w, "  - %s (%s, %s)\n", s.Name, s.Severity, s.Duration)
	}
}
