package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/tmsim/internal/automation"
	"github.com/san-kum/tmsim/internal/batch"
	"github.com/san-kum/tmsim/internal/config"
	"github.com/san-kum/tmsim/internal/experiment"
	"github.com/san-kum/tmsim/internal/machine"
	"github.com/san-kum/tmsim/internal/metrics"
	"github.com/san-kum/tmsim/internal/storage"
	"github.com/san-kum/tmsim/internal/tui"
	"github.com/san-kum/tmsim/internal/viz"
)

var (
	dataDir string
	verbose bool
	logJSON bool

	input       string
	maxSteps    int
	configFile  string
	showTrace   bool
	saveRun     bool
	metricsFile string
	workers     int
	outFile     string
	asSVG       bool
	svgScale    int
	trials      int
	maxLen      int
	alphabet    string
	seed        int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tmsim",
		Short:         "single-tape turing machine simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tmsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")

	runCmd := &cobra.Command{
		Use:   "run [machine]",
		Short: "run a machine to completion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMachine,
	}
	addMachineFlags(runCmd)
	runCmd.Flags().BoolVar(&showTrace, "trace", false, "print every step")
	runCmd.Flags().BoolVar(&saveRun, "save", true, "store the run and its trace")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this file")

	stepCmd := &cobra.Command{
		Use:   "step [machine]",
		Short: "step through a machine interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  stepMachine,
	}
	addMachineFlags(stepCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [machine] [input...]",
		Short: "run a machine over several inputs in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE:  batchRun,
	}
	batchCmd.Flags().IntVar(&maxSteps, "max-steps", machine.DefaultMaxSteps, "step ceiling")
	batchCmd.Flags().StringVar(&configFile, "config", "", "machine definition file (yaml)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")
	batchCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this file")

	machinesCmd := &cobra.Command{
		Use:   "machines",
		Short: "list built-in machines",
		RunE:  listMachines,
	}

	checkCmd := &cobra.Command{
		Use:   "check [machine]",
		Short: "validate a machine definition",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkMachine,
	}
	checkCmd.Flags().StringVar(&configFile, "config", "", "machine definition file (yaml)")

	dumpCmd := &cobra.Command{
		Use:   "dump [machine] [path]",
		Short: "write a built-in machine as yaml",
		Args:  cobra.ExactArgs(2),
		RunE:  dumpMachine,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "replay a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot head position and tape growth",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json or an svg space-time diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&asSVG, "svg", false, "export the trace as svg")
	exportCmd.Flags().IntVar(&svgScale, "scale", 8, "svg cell size in pixels")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario and check its expectations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRun, "save", true, "store steps marked save")

	fuzzCmd := &cobra.Command{
		Use:   "fuzz [machine]",
		Short: "run a machine on random inputs and tally outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fuzzMachine,
	}
	fuzzCmd.Flags().IntVar(&maxSteps, "max-steps", machine.DefaultMaxSteps, "step ceiling")
	fuzzCmd.Flags().StringVar(&configFile, "config", "", "machine definition file (yaml)")
	fuzzCmd.Flags().IntVarP(&trials, "trials", "n", 100, "number of inputs")
	fuzzCmd.Flags().IntVar(&maxLen, "max-len", 8, "longest input")
	fuzzCmd.Flags().StringVar(&alphabet, "alphabet", "01", "input characters")
	fuzzCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time)")

	rootCmd.AddCommand(runCmd, stepCmd, batchCmd, machinesCmd, checkCmd, dumpCmd,
		listCmd, showCmd, plotCmd, exportCmd, scenarioCmd, fuzzCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&input, "input", "i", "", "input string (default: the machine's example input)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", machine.DefaultMaxSteps, "step ceiling")
	cmd.Flags().StringVar(&configFile, "config", "", "machine definition file (yaml)")
}

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadDefinition resolves the machine from --config or a preset name.
func loadDefinition(args []string) (*config.Definition, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && configFile == "" {
		return nil, fmt.Errorf("machine name or --config required (available: %s)", strings.Join(config.ListPresets(), ", "))
	}
	def, err := config.Resolve(name, configFile)
	if err != nil {
		return nil, err
	}
	if def.Name == "" || def.Name == config.DefaultDefinition().Name {
		if name != "" {
			def.Name = name
		}
	}
	return def, nil
}

// newExperiment applies the CLI flags over the definition's settings.
func newExperiment(cmd *cobra.Command, def *config.Definition, logger *slog.Logger) (*experiment.Experiment, error) {
	opts := []machine.Option{machine.WithLogger(logger.With("machine", def.Name))}
	if cmd.Flags().Changed("max-steps") {
		opts = append(opts, machine.WithMaxSteps(maxSteps))
	}
	return experiment.New(def, opts...)
}

func runInput(cmd *cobra.Command, def *config.Definition) string {
	if cmd.Flags().Changed("input") {
		return input
	}
	return def.Input
}

func runMachine(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cmd, def, logger)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	exp.WithCollector(collector)

	in := runInput(cmd, def)
	fmt.Printf("running %s on %q\n", exp.Name(), in)
	start := time.Now()

	res, err := exp.Run(context.Background(), in)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if showTrace {
		if err := viz.WriteTrace(os.Stdout, res); err != nil {
			return err
		}
	} else if err := viz.WriteSummary(os.Stdout, res); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(def.Name, in, exp.Runner().MaxSteps(), res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if len(res.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, m := range metrics.Defaults() {
			fmt.Printf("  %s: %.0f\n", m.Name(), res.Metrics[m.Name()])
		}
	}

	if metricsFile != "" {
		if err := collector.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Debug("metrics written", "path", metricsFile)
	}

	return nil
}

func stepMachine(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cmd, def, newLogger())
	if err != nil {
		return err
	}

	r := exp.Runner()
	m := tui.New(def.Name, exp.Rules(), r.Start(runInput(cmd, def)), r.MaxSteps())
	return tui.Run(m)
}

func batchRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	def, err := loadDefinition(args[:1])
	if err != nil {
		return err
	}
	exp, err := newExperiment(cmd, def, logger)
	if err != nil {
		return err
	}

	inputs := args[1:]
	if len(inputs) == 0 {
		inputs = []string{def.Input}
	}

	results, err := batch.New(exp.Rules(), workers, exp.Options()...).
		WithMetrics(metrics.Defaults).
		Run(context.Background(), inputs)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INPUT\tOUTCOME\tSTEPS\tOUTPUT")
	for i, res := range results {
		collector.Record(def.Name, res)
		fmt.Fprintf(w, "%q\t%s\t%d\t%q\n", inputs[i], res.Outcome, res.Steps, res.Output())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if metricsFile != "" {
		return collector.WriteTextfile(metricsFile)
	}
	return nil
}

func listMachines(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRULES\tINPUT\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		def := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%q\t%s\n", name, len(def.Rules), def.Input, def.Description)
	}
	return w.Flush()
}

func checkMachine(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	rules, err := def.RuleSet()
	if err != nil {
		return err
	}
	if _, err := def.StartState(); err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return err
	}
	fmt.Printf("%s: %d rules, %d states, ok\n", def.Name, rules.Len(), len(rules.States()))
	return nil
}

func dumpMachine(cmd *cobra.Command, args []string) error {
	def := config.GetPreset(args[0])
	if def == nil {
		return &config.UnknownPresetError{Name: args[0], Available: config.ListPresets()}
	}
	def, err := def.Canonical()
	if err != nil {
		return err
	}
	if err := config.Save(args[1], def); err != nil {
		return err
	}
	fmt.Printf("wrote %s to %s\n", def.Name, args[1])
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	opts := []automation.Option{automation.WithLogger(newLogger())}
	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		opts = append(opts, automation.WithStore(st))
	}

	results, err := automation.RunScenario(context.Background(), sc, opts...)
	if err != nil {
		return err
	}

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMACHINE\tINPUT\tOUTCOME\tSTEPS\tSTATUS")
	for _, r := range results {
		status := "ok"
		if !r.Passed() {
			status = "FAIL: " + strings.Join(r.Failures, "; ")
			failed++
		}
		fmt.Fprintf(w, "%d\t%s\t%q\t%s\t%d\t%s\n", r.Index, r.Machine, r.Input, r.Result.Outcome, r.Result.Steps, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%s: %d of %d steps failed", sc.Name, failed, len(results))
	}
	return nil
}

func fuzzMachine(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cmd, def, newLogger())
	if err != nil {
		return err
	}

	results, err := automation.RunRandom(context.Background(), exp, automation.RandomConfig{
		Alphabet: alphabet,
		MaxLen:   maxLen,
		Trials:   trials,
		Seed:     seed,
	})
	if err != nil {
		return err
	}

	counts := automation.Tally(results)
	fmt.Printf("%s: %d random inputs over %q\n", def.Name, len(results), alphabet)
	for _, o := range []machine.Outcome{machine.Accepted, machine.RejectedExplicit, machine.RejectedImplicit, machine.StepLimitReached} {
		fmt.Printf("  %-20s %d\n", o.String()+":", counts[o])
	}
	return nil
}
