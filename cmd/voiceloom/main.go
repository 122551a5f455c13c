package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmorland/voiceloom/internal/config"
	"github.com/jmorland/voiceloom/internal/database"
	"github.com/jmorland/voiceloom/internal/engine"
	"github.com/jmorland/voiceloom/internal/generate"
	"github.com/jmorland/voiceloom/internal/ingest"
	"github.com/jmorland/voiceloom/internal/server"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	userID     string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "voiceloom",
	Short:   "Personal writing-voice documentation assistant",
	Long:    "Voiceloom learns your writing voice from a sample and expands shorthand notes into documentation that sounds like you wrote it.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if userID == "" {
			userID = cfg.User.ID
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "User whose voice to use (default from config)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(confidenceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("voiceloom", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/voiceloom/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure the generator, then set a writing sample with: voiceloom sample set")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Users:")
		fmt.Printf("  With writing samples: %d\n", stats.Users)
		fmt.Println("\nGenerations:")
		fmt.Printf("  Total: %d\n", stats.Generations)
		fmt.Printf("  Rated: %d\n", stats.RatedGenerations)
		fmt.Printf("  Edited: %d\n", stats.EditedGenerations)
		fmt.Println("\nStyle evolutions:")
		fmt.Printf("  Total: %d\n", stats.Evolutions)

		state, err := db.GetConfidenceState(userID)
		if err != nil {
			return err
		}
		if state != nil {
			fmt.Printf("\nConfidence for %s: %.2f (%s), %d generations\n",
				userID, state.Score, state.Category, state.GenerationCount)
		}
		return nil
	},
}

// --- sample commands ---

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Manage the writing sample your voice is learned from",
}

var (
	sampleFile   string
	sampleURL    string
	sampleFeed   string
	sampleSource string
)

var sampleSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Set the writing sample from an argument, --file, or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readSampleText(args)
		if err != nil {
			return err
		}
		return applySample(text, strPtrOrNil(sampleSource))
	},
}

var sampleImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a writing sample from a web page (--url) or feed (--feed)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (sampleURL == "") == (sampleFeed == "") {
			return fmt.Errorf("exactly one of --url or --feed is required")
		}

		fetcher := ingest.NewFetcher(0)
		var text, source string
		var err error
		if sampleURL != "" {
			source = sampleURL
			text, err = fetcher.FromURL(sampleURL)
		} else {
			source = sampleFeed
			text, err = fetcher.FromFeed(sampleFeed)
		}
		if err != nil {
			return fmt.Errorf("importing sample: %w", err)
		}

		fmt.Printf("Imported %d characters from %s\n", len(text), source)
		return applySample(text, &source)
	},
}

var sampleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current writing sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		sample, err := db.GetWritingSample(userID)
		if err != nil {
			return err
		}
		if sample == nil {
			fmt.Printf("No writing sample for %s. Set one with: voiceloom sample set\n", userID)
			return nil
		}

		if sample.Source != nil && *sample.Source != "" {
			fmt.Printf("Source: %s\n", *sample.Source)
		}
		if sample.UpdatedAt != nil {
			fmt.Printf("Updated: %s\n", *sample.UpdatedAt)
		}
		fmt.Printf("Length: %d characters\n\n", len(sample.SampleText))
		fmt.Println(sample.SampleText)
		return nil
	},
}

func init() {
	sampleSetCmd.Flags().StringVarP(&sampleFile, "file", "f", "", "Read the sample from a file")
	sampleSetCmd.Flags().StringVar(&sampleSource, "source", "", "Record where the sample came from")
	sampleImportCmd.Flags().StringVar(&sampleURL, "url", "", "Import the readable content of a web page")
	sampleImportCmd.Flags().StringVar(&sampleFeed, "feed", "", "Import recent posts from an RSS/Atom feed")

	sampleCmd.AddCommand(sampleSetCmd)
	sampleCmd.AddCommand(sampleImportCmd)
	sampleCmd.AddCommand(sampleShowCmd)
}

func readSampleText(args []string) (string, error) {
	if len(args) == 1 && sampleFile != "" {
		return "", fmt.Errorf("pass the sample as an argument or --file, not both")
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if sampleFile != "" {
		data, err := os.ReadFile(sampleFile)
		if err != nil {
			return "", fmt.Errorf("reading sample file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading sample from stdin: %w", err)
	}
	return string(data), nil
}

// applySample stores the sample through the evolution path so prior
// confidence and the old sample are captured before the switch.
func applySample(text string, source *string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	eng := engine.New(db)

	trigger := "manual_update"
	existing, err := db.GetWritingSample(userID)
	if err != nil {
		return err
	}
	if existing == nil {
		trigger = "initial"
	}

	ev, state, err := eng.ApplyStyleEvolution(userID, ingest.Truncate(text), source, trigger)
	if err != nil {
		return fmt.Errorf("applying sample: %w", err)
	}

	fmt.Printf("Writing sample stored for %s.\n", userID)
	if ev.PreviousSample != nil {
		fmt.Printf("Confidence: %.2f -> %.2f (%d generations considered)\n",
			ev.ConfidenceBefore, ev.ConfidenceAfter, ev.RecordsConsidered)
	} else {
		fmt.Printf("Confidence: %.2f (%s)\n", state.Score, state.Category)
	}
	return nil
}

// --- profile command ---

var profileJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the vocabulary profile extracted from the writing sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := engine.New(db).Profile(userID)
		if err != nil {
			return err
		}

		if profileJSON {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Profile for %s (%d words analyzed)\n\n", userID, p.WordCount)
		fmt.Printf("  Sentence style: %s\n", p.SentenceStyle)
		fmt.Printf("  Vocabulary:     %s\n", p.VocabularyLevel)
		fmt.Printf("  Punctuation:    %s\n", p.PunctuationStyle)
		fmt.Printf("  Tone:           %s\n", p.Tone)
		printList("Action verbs", p.ActionVerbs)
		printList("Descriptors", p.Descriptors)
		printList("Transitions", p.Transitions)
		printList("Phrases", p.Phrases)
		printList("Expressions", p.NaturalExpressions)
		if p.TimePatterns.UsesSequentialTiming {
			fmt.Printf("  Time markers:   %s\n", strings.Join(p.TimePatterns.Markers, ", "))
		}
		if p.LowSignal {
			fmt.Println("\n  Note: the sample is short; extraction quality is reduced.")
		}
		return nil
	},
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %-15s %s\n", label+":", strings.Join(items, ", "))
}

func init() {
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the profile as JSON")
}

// --- preview / generate commands ---

var (
	genPrompt  string
	genContext string
	genSection string
	genTone    int
	genDetail  string
)

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&genPrompt, "prompt", "p", "", "Shorthand note to expand (required)")
	cmd.Flags().StringVar(&genContext, "context", "", "Task context for the note")
	cmd.Flags().IntVarP(&genTone, "tone", "t", -1, "Tone level 0-100 (default from config)")
	cmd.Flags().StringVarP(&genDetail, "detail", "d", "", "Detail level: brief, moderate, detailed, comprehensive")
	cmd.MarkFlagRequired("prompt")
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the composed instruction without calling the generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		instruction, err := engine.New(db).BuildInstruction(
			userID, genPrompt, genContext, effectiveTone(), effectiveDetail())
		if err != nil {
			return err
		}
		fmt.Println(instruction)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Expand a shorthand note into documentation in your voice",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		eng := engine.New(db)
		svc := generate.New(cfg, db, eng)

		result, err := svc.Generate(context.Background(), generate.Request{
			UserID:      userID,
			SectionID:   genSection,
			Prompt:      genPrompt,
			TaskContext: genContext,
			ToneLevel:   effectiveTone(),
			DetailLevel: effectiveDetail(),
		})
		if err != nil {
			return err
		}

		fmt.Println(result.Record.GeneratedText)
		fmt.Printf("\n---\nRecord %s | style match %.2f | confidence %.2f (%s)\n",
			result.Record.ID, result.Record.StyleMatch, result.State.Score, result.State.Category)
		fmt.Printf("Rate it with: voiceloom rate %s <1-5>\n", result.Record.ID)
		return nil
	},
}

func init() {
	addGenerationFlags(previewCmd)
	addGenerationFlags(generateCmd)
	generateCmd.Flags().StringVar(&genSection, "section", "", "Document section this text belongs to")
}

func effectiveTone() int {
	if genTone >= 0 {
		return genTone
	}
	return cfg.Defaults.ToneLevel
}

func effectiveDetail() string {
	if genDetail != "" {
		return genDetail
	}
	return cfg.Defaults.DetailLevel
}

// --- rate / edit commands ---

var rateFeedback string

var rateCmd = &cobra.Command{
	Use:   "rate [record-id] [1-5]",
	Short: "Rate a generated section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		satisfaction, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating: %s", args[1])
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := generate.New(cfg, db, engine.New(db))
		state, err := svc.Rate(args[0], satisfaction, rateFeedback)
		if err != nil {
			return err
		}

		fmt.Printf("Rated %s: %d/5. Confidence now %.2f (%s).\n",
			args[0], satisfaction, state.Score, state.Category)
		return nil
	},
}

var editFile string

var editCmd = &cobra.Command{
	Use:   "edit [record-id]",
	Short: "Attach your edited version of a generated section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editFile == "" {
			return fmt.Errorf("--file is required")
		}
		data, err := os.ReadFile(editFile)
		if err != nil {
			return fmt.Errorf("reading edited text: %w", err)
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := generate.New(cfg, db, engine.New(db))
		state, err := svc.SubmitEdit(args[0], string(data))
		if err != nil {
			return err
		}

		rec, err := db.GetGenerationRecord(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Edit recorded (%s). Confidence now %.2f (%s).\n",
			deref(rec.EditType), state.Score, state.Category)
		return nil
	},
}

func init() {
	rateCmd.Flags().StringVar(&rateFeedback, "feedback", "", "Optional free-text feedback")
	editCmd.Flags().StringVarP(&editFile, "file", "f", "", "File containing the edited text")
}

// --- confidence / history commands ---

var confidenceCmd = &cobra.Command{
	Use:   "confidence",
	Short: "Show style confidence and evolution history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		state, err := db.GetConfidenceState(userID)
		if err != nil {
			return err
		}
		if state == nil {
			fmt.Printf("No confidence state for %s yet. Set a sample and generate something first.\n", userID)
			return nil
		}

		fmt.Printf("Confidence for %s: %.2f (%s)\n", userID, state.Score, state.Category)
		fmt.Printf("Generations considered: %d\n", state.GenerationCount)

		evolutions, err := db.GetStyleEvolutions(userID)
		if err != nil {
			return err
		}
		if len(evolutions) > 0 {
			fmt.Println("\nStyle evolutions (newest first):")
			for _, ev := range evolutions {
				when := ""
				if ev.CreatedAt != nil {
					when = *ev.CreatedAt
				}
				fmt.Printf("  %s  %s  %.2f -> %.2f\n", when, ev.TriggerReason, ev.ConfidenceBefore, ev.ConfidenceAfter)
			}
		}
		return nil
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.GetRecentGenerations(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No generations yet.")
			return nil
		}

		for _, rec := range records {
			rating := "-"
			if rec.Satisfaction != nil {
				rating = fmt.Sprintf("%d/5", *rec.Satisfaction)
			}
			edited := ""
			if rec.EditType != nil {
				edited = " edited:" + *rec.EditType
			}
			prompt := rec.Prompt
			if len(prompt) > 50 {
				prompt = prompt[:50] + "..."
			}
			fmt.Printf("%s  match %.2f  rating %s%s  %s\n", rec.ID, rec.StyleMatch, rating, edited, prompt)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of records to show")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local review server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		svc := generate.New(cfg, db, engine.New(db))
		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, svc, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to run server on (default from config)")
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "voiceloom.db")
	return database.Open(dbPath)
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
