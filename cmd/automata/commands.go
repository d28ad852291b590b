package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzurita/automaton"
	"github.com/mzurita/automaton/fileio"
	"github.com/mzurita/automaton/report"
)

var (
	verbose    bool
	outPath    string
	reportPath string
	outDir     string

	rootCmd = &cobra.Command{
		Use:   "automata",
		Short: "Transform finite automata: determinize, minimize, certify",
		Long: `automata loads finite automata from JSON, YAML or plain text files,
eliminates nondeterminism via the subset construction, minimizes
deterministic automata by partition refinement, and certifies results
with a product-automaton equivalence check.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	convertCmd = &cobra.Command{
		Use:   "convert <automaton-file>",
		Short: "Eliminate nondeterminism via the subset construction",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}

	minimizeCmd = &cobra.Command{
		Use:   "minimize <automaton-file>",
		Short: "Reduce a DFA to its minimal equivalent",
		Args:  cobra.ExactArgs(1),
		RunE:  runMinimize,
	}

	equivCmd = &cobra.Command{
		Use:   "equiv <dfa-file> <dfa-file>",
		Short: "Decide whether two DFAs accept the same language",
		Args:  cobra.ExactArgs(2),
		RunE:  runEquiv,
	}

	runCmd = &cobra.Command{
		Use:   "run <automaton-file> [string...]",
		Short: "Simulate input strings against an automaton",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSimulate,
	}

	renderCmd = &cobra.Command{
		Use:   "render <automaton-file>",
		Short: "Export an automaton as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}

	processCmd = &cobra.Command{
		Use:   "process <automaton-file>",
		Short: "Full pipeline: determinize if needed, minimize, certify",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	convertCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result automaton to this file")
	convertCmd.Flags().StringVar(&reportPath, "report", "", "write the conversion report to this file")
	minimizeCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result automaton to this file")
	minimizeCmd.Flags().StringVar(&reportPath, "report", "", "write the minimization report to this file")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the DOT graph to this file")
	processCmd.Flags().StringVar(&outDir, "out-dir", "results", "directory for result automata and reports")

	rootCmd.AddCommand(convertCmd, minimizeCmd, equivCmd, runCmd, renderCmd, processCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	nfa, err := fileio.Load(args[0])
	if err != nil {
		return err
	}
	dfa, trace, err := automaton.ConvertToDFA(nfa)
	if err != nil {
		return err
	}
	slog.Info("conversion finished",
		"source_states", nfa.NumStates(), "result_states", dfa.NumStates())

	if outPath != "" {
		if err := fileio.Save(dfa, outPath); err != nil {
			return err
		}
		slog.Info("result written", "path", outPath)
	}
	return emit(cmd, report.Conversion(nfa, dfa, trace), reportPath)
}

func runMinimize(cmd *cobra.Command, args []string) error {
	dfa, err := fileio.Load(args[0])
	if err != nil {
		return err
	}
	minimized, trace, err := automaton.MinimizeDFA(dfa)
	if err != nil {
		return err
	}
	slog.Info("minimization finished",
		"original_states", dfa.NumStates(), "minimized_states", minimized.NumStates())

	if outPath != "" {
		if err := fileio.Save(minimized, outPath); err != nil {
			return err
		}
		slog.Info("result written", "path", outPath)
	}
	return emit(cmd, report.Minimization(dfa, minimized, trace), reportPath)
}

func runEquiv(cmd *cobra.Command, args []string) error {
	left, err := fileio.Load(args[0])
	if err != nil {
		return err
	}
	right, err := fileio.Load(args[1])
	if err != nil {
		return err
	}
	equal, err := automaton.AreEquivalent(left, right)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.EquivalenceVerdict(equal))
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	a, err := fileio.Load(args[0])
	if err != nil {
		return err
	}
	for _, input := range args[1:] {
		verdict := "reject"
		if a.Accepts(input) {
			verdict = "accept"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q -> %s\n", input, verdict)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := fileio.Load(args[0])
	if err != nil {
		return err
	}
	return emit(cmd, report.DOT(a), outPath)
}

// runProcess mirrors the full pipeline: load, determinize when the input is
// nondeterministic, minimize, certify that the minimized automaton still
// accepts the same language, and write every stage plus its report.
func runProcess(cmd *cobra.Command, args []string) error {
	a, err := fileio.Load(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

	dfa := a
	if a.IsDeterministic() {
		slog.Info("input already deterministic, skipping conversion")
	} else {
		var trace *automaton.Trace
		dfa, trace, err = automaton.ConvertToDFA(a)
		if err != nil {
			return err
		}
		slog.Info("converted to DFA", "states", dfa.NumStates())
		if err := fileio.Save(dfa, filepath.Join(outDir, stem+".dfa.json")); err != nil {
			return err
		}
		conv := report.Conversion(a, dfa, trace)
		if err := os.WriteFile(filepath.Join(outDir, stem+".conversion.txt"), []byte(conv), 0o644); err != nil {
			return err
		}
	}

	minimized, minTrace, err := automaton.MinimizeDFA(dfa)
	if err != nil {
		return err
	}
	slog.Info("minimized", "states", minimized.NumStates())
	if err := fileio.Save(minimized, filepath.Join(outDir, stem+".min.json")); err != nil {
		return err
	}
	minReport := report.Minimization(dfa, minimized, minTrace)
	if err := os.WriteFile(filepath.Join(outDir, stem+".minimization.txt"), []byte(minReport), 0o644); err != nil {
		return err
	}

	equal, err := automaton.AreEquivalent(dfa, minimized)
	if err != nil {
		return err
	}
	if !equal {
		return fmt.Errorf("minimization changed the accepted language")
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.EquivalenceVerdict(equal))
	slog.Info("pipeline finished", "out_dir", outDir)
	return nil
}

// emit writes text to path when set, otherwise to the command's stdout.
func emit(cmd *cobra.Command, text, path string) error {
	if path != "" {
		return os.WriteFile(path, []byte(text), 0o644)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
