package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/config"
	"github.com/Yates-Labs/roam/internal/export"
	"github.com/Yates-Labs/roam/internal/itinerary"
	"github.com/Yates-Labs/roam/internal/orchestrator"
	"github.com/Yates-Labs/roam/internal/render"
	"github.com/Yates-Labs/roam/internal/session"
	"github.com/Yates-Labs/roam/internal/trip"
)

var (
	planInput    trip.Input
	planOut      string
	planExport   string
	planNoPDF    bool
	planProvider string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a day-by-day itinerary and save it as a PDF",
	Long: `Generate a day-by-day travel itinerary with a language model.

The itinerary is printed to the terminal and saved as a PDF named after the
destination. Scripts without an installed font (see "roam languages") fall
back to a Latin font with unsupported characters removed.

Required environment variables (depending on llm.provider):
  OPENAI_API_KEY     - OpenAI API key
  GEMINI_API_KEY     - Google Gemini API key

Examples:
  roam plan --destination Kyoto --days 3 --month April --budget Mid-range \
    --activity Cultural --activity "Food Tour" --companion Couple
  roam plan --destination Dhaka --days 2 --month December --budget Budget \
    --companion Solo --language Bengali --out dhaka.pdf
  roam plan ... --out - > trip.pdf
  roam plan ... --export toml --no-pdf`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	f := planCmd.Flags()
	f.StringVar(&planInput.Destination, "destination", "", "Where you are going")
	f.IntVar(&planInput.Days, "days", 3, fmt.Sprintf("Trip length in days (%d-%d)", trip.MinDays, trip.MaxDays))
	f.StringVar(&planInput.Month, "month", "", "Month of travel (e.g. April)")
	f.StringVar(&planInput.Budget, "budget", string(trip.BudgetMid), "Budget level: Budget, Mid-range or Luxury")
	f.StringArrayVar(&planInput.Activities, "activity", nil, "Preferred activity (repeatable): Adventure, Relaxation, Cultural, Sightseeing, Food Tour")
	f.StringVar(&planInput.Companion, "companion", string(trip.CompanionSolo), "Traveling with: Solo, Couple, Family or Friends")
	f.StringVar(&planInput.Language, "language", "English", "Language the itinerary is written in")
	f.StringVar(&planOut, "out", "", `PDF path (default: <Destination>_Itinerary.pdf, "-" writes to stdout)`)
	f.StringVar(&planExport, "export", "", "Also write the itinerary as json or toml next to the PDF")
	f.BoolVar(&planNoPDF, "no-pdf", false, "Skip rendering the PDF")
	f.StringVar(&planProvider, "provider", "", "Override llm.provider (openai or gemini)")
}

var (
	headerColor  = lipgloss.Color("#F780FF")
	bodyColor    = lipgloss.Color("#E9E9F4")
	mutedColor   = lipgloss.Color("#6272A4")
	warningColor = lipgloss.Color("#FFB86C")
	successColor = lipgloss.Color("#50FA7B")

	headerStyle  = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(bodyColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
)

var errTerminalOutput = errors.New(`refusing to write a PDF to a terminal; redirect stdout or pass --out <file>`)

// checkPDFOutput rejects writing binary PDF data to w when out is "-" and w
// is an interactive terminal.
func checkPDFOutput(out string, w io.Writer) error {
	if out == "-" && isTerminal(w) {
		return errTerminalOutput
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	if !planNoPDF {
		if err := checkPDFOutput(planOut, cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	var exportFormat export.Format
	if planExport != "" {
		f, err := export.ParseFormat(planExport)
		if err != nil {
			return err
		}
		exportFormat = f
	}

	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if planProvider != "" {
		cfg.LLM.Provider = strings.ToLower(planProvider)
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	orch, err := newOrchestrator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Styled output goes to stderr when stdout carries the PDF.
	var ui io.Writer = cmd.OutOrStdout()
	if planOut == "-" {
		ui = cmd.ErrOrStderr()
	}

	sess := session.New("cli")
	fmt.Fprintln(ui, mutedStyle.Render(fmt.Sprintf("→ Planning %d days in %s...", planInput.Days, planInput.Destination)))

	outcome, err := orch.Submit(ctx, sess, planInput)
	if err != nil {
		return err
	}

	fmt.Fprintln(ui)
	fmt.Fprintln(ui, headerStyle.Render("Itinerary:"))
	fmt.Fprintln(ui)
	fmt.Fprintln(ui, bodyStyle.Render(outcome.Text))
	fmt.Fprintln(ui)

	if !planNoPDF {
		if err := writeDocument(orch, sess, ui, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if planExport != "" {
		entry, _ := orch.Current(sess)
		name := strings.TrimSuffix(render.Filename(entry.Request.Destination), ".pdf") + "." + string(exportFormat)
		if err := writeFile(name, func(w io.Writer) error {
			return export.Write(entry, string(exportFormat), w)
		}); err != nil {
			return err
		}
		fmt.Fprintln(ui, successStyle.Render("✓ Exported "+name))
	}
	return nil
}

func writeDocument(orch *orchestrator.Orchestrator, sess *session.Session, ui, stdout io.Writer) error {
	doc, err := orch.Document(sess)
	if err != nil {
		return err
	}
	for _, w := range doc.Warnings {
		fmt.Fprintln(ui, warningStyle.Render("! "+w))
	}

	if planOut == "-" {
		_, err := stdout.Write(doc.Content)
		return err
	}

	path := planOut
	if path == "" {
		path = doc.Filename
	}
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(ui, successStyle.Render(fmt.Sprintf("✓ Saved %s (%s)", path, doc.Title)))
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// newOrchestrator wires the configured provider, generation client and
// renderer together.
func newOrchestrator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	llmConfig := cfg.LLM.Itinerary()
	llm, err := itinerary.NewLLM(ctx, llmConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM: %w", err)
	}

	client := itinerary.NewClient(llm, llmConfig, logger.Named("itinerary"))
	renderer := render.NewRenderer(cfg.Render.Renderer(), logger.Named("render"))
	return orchestrator.New(client, renderer, logger.Named("orchestrator")), nil
}
