// Package main is the entry point for the midiscope CLI
package main

import (
	"fmt"
	"os"

	"github.com/james-see/midiscope/pkg/analysis"
	"github.com/james-see/midiscope/pkg/api"
	"github.com/james-see/midiscope/pkg/crosscheck"
	"github.com/james-see/midiscope/pkg/fixture"
	"github.com/james-see/midiscope/pkg/transcript"
	"github.com/james-see/midiscope/pkg/tui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	logLevel   string
	threshold  float64
	window     uint64
	outputFile string
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "midiscope",
	Short: "Decode Standard MIDI Files and name their chords",
	Long: `midiscope decodes Standard MIDI Files (format 0 and 1), lists their
events and notes with measure and beat positions, and names the chord
heard in each beat.

Examples:
  midiscope transcript song.mid
  midiscope chords song.mid --window 2
  midiscope verify song.mid
  midiscope demo -o demo.mid
  midiscope tui
  midiscope serve --port 8080`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

var eventsCmd = &cobra.Command{
	Use:   "events <input.mid>",
	Short: "List every decoded event",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(func(p *transcript.Printer, r *analysis.Report) string { return p.Events(r) }),
}

var notesCmd = &cobra.Command{
	Use:   "notes <input.mid>",
	Short: "List paired notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(func(p *transcript.Printer, r *analysis.Report) string { return p.Notes(r) }),
}

var chordsCmd = &cobra.Command{
	Use:   "chords <input.mid>",
	Short: "Name the chord of every window",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(func(p *transcript.Printer, r *analysis.Report) string { return p.Chords(r) }),
}

var transcriptCmd = &cobra.Command{
	Use:   "transcript <input.mid>",
	Short: "Print summary, events, notes and chords",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport(func(p *transcript.Printer, r *analysis.Report) string { return p.Transcript(r) }),
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the chord templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), transcript.NewPrinter(cmd.OutOrStdout()).Library())
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <input.mid>",
	Short: "Cross-check the decoding against gomidi",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a demo MIDI file",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(options())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Starting API server on port %d...\n", serverPort)
		return api.StartServer(serverPort)
	},
}

func init() {
	defaults := analysis.DefaultOptions()

	// Global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Float64VarP(&threshold, "threshold", "t", defaults.Threshold, "Largest chord template distance")
	rootCmd.PersistentFlags().Uint64VarP(&window, "window", "w", defaults.Window, "Chord window in beats")

	demoCmd.Flags().StringVarP(&outputFile, "output", "o", "demo.mid", "Output .mid file path")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(chordsCmd)
	rootCmd.AddCommand(transcriptCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	return nil
}

func options() analysis.Options {
	return analysis.Options{Threshold: threshold, Window: window}
}

func runReport(section func(*transcript.Printer, *analysis.Report) string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := analysis.New(options())
		if err != nil {
			return err
		}
		report, err := a.AnalyzeFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, err = fmt.Fprintln(out, section(transcript.NewPrinter(out), report))
		return err
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	res, err := crosscheck.Verify(data)
	if err != nil {
		return err
	}
	if res.OK() {
		fmt.Printf("%s: %d tracks, decoders agree\n", args[0], res.Ours.Tracks)
		return nil
	}
	for _, m := range res.Mismatches {
		fmt.Printf("mismatch: %s\n", m)
	}
	return fmt.Errorf("%s: %d mismatches", args[0], len(res.Mismatches))
}

func runDemo(cmd *cobra.Command, args []string) error {
	data, err := fixture.Build(fixture.Demo())
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outputFile)
	return nil
}
