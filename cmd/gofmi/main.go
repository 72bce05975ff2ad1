package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/gofmi/internal/config"
	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/logging"
	"github.com/san-kum/gofmi/internal/master"
	"github.com/san-kum/gofmi/internal/models"
	"github.com/san-kum/gofmi/internal/store"
	"github.com/san-kum/gofmi/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	iface      string
	startTime  float64
	stopTime   float64
	stepSize   float64
	outputs    []string
	eventMode  bool
	earlyRet   bool
	verbose    bool
	svgDir     string
	sweepParam string
	sweepVals  []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gofmi",
		Short: "FMI 3.0 model runtime and co-simulation driver",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gofmi", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log instance diagnostics")

	simulateCmd := &cobra.Command{
		Use:   "simulate [model]",
		Short: "run a simulation and archive the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	simulateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	simulateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	simulateCmd.Flags().StringVar(&iface, "interface", "cs", "interface type (cs or me)")
	simulateCmd.Flags().Float64Var(&startTime, "start", 0.0, "start time")
	simulateCmd.Flags().Float64Var(&stopTime, "stop", config.DefaultStopTime, "stop time")
	simulateCmd.Flags().Float64Var(&stepSize, "dt", config.DefaultStepSize, "communication step size")
	simulateCmd.Flags().StringSliceVar(&outputs, "outputs", nil, "variables to record")
	simulateCmd.Flags().BoolVar(&eventMode, "event-mode", false, "instantiate with event mode (cs)")
	simulateCmd.Flags().BoolVar(&earlyRet, "early-return", false, "allow early return (cs)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a co-simulation with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().Float64Var(&startTime, "start", 0.0, "start time")
	liveCmd.Flags().Float64Var(&stopTime, "stop", config.DefaultStopTime, "stop time")
	liveCmd.Flags().Float64Var(&stepSize, "dt", config.DefaultStepSize, "communication step size")
	liveCmd.Flags().StringSliceVar(&outputs, "outputs", nil, "variables to record")
	liveCmd.Flags().BoolVar(&eventMode, "event-mode", false, "instantiate with event mode")
	liveCmd.Flags().BoolVar(&earlyRet, "early-return", false, "allow early return")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "run a parameter sweep of co-simulations in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter variable to vary")
	sweepCmd.Flags().Float64SliceVar(&sweepVals, "values", nil, "parameter values to run")
	sweepCmd.Flags().Float64Var(&startTime, "start", 0.0, "start time")
	sweepCmd.Flags().Float64Var(&stopTime, "stop", config.DefaultStopTime, "stop time")
	sweepCmd.Flags().Float64Var(&stepSize, "dt", config.DefaultStepSize, "communication step size")
	sweepCmd.Flags().StringSliceVar(&outputs, "outputs", nil, "variables to record")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list built-in models and their instantiation tokens",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgDir, "svg", "", "also write one SVG per signal into this directory")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	rootCmd.AddCommand(simulateCmd, liveCmd, sweepCmd, modelsCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges preset, config file, and flags, in that order of
// increasing precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("--preset requires a model argument")
		}
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Model = args[0]
	}
	if cmd.Flags().Changed("interface") {
		cfg.Interface = iface
	}
	if cmd.Flags().Changed("start") {
		cfg.StartTime = startTime
	}
	if cmd.Flags().Changed("stop") {
		cfg.StopTime = stopTime
	}
	if cmd.Flags().Changed("dt") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("outputs") {
		cfg.Outputs = outputs
	}
	if cmd.Flags().Changed("event-mode") {
		cfg.EventMode = eventMode
	}
	if cmd.Flags().Changed("early-return") {
		cfg.EarlyReturn = earlyRet
	}

	return cfg, cfg.Validate()
}

// newInstance constructs an instance per the run configuration, wiring the
// log callback when diagnostics were requested.
func newInstance(cfg *config.Config) (*instance.Instance, error) {
	registry := models.NewRegistry()
	m, err := registry.New(cfg.Model)
	if err != nil {
		return nil, err
	}
	token, err := registry.Token(cfg.Model)
	if err != nil {
		return nil, err
	}

	loggingOn := verbose || cfg.Logging.Enabled
	opts := instance.Options{
		ResourcePath:       cfg.ResourcePath,
		LoggingOn:          loggingOn,
		EventModeUsed:      cfg.EventMode,
		EarlyReturnAllowed: cfg.EarlyReturn,
	}
	if loggingOn {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logging.SetLogger(zl)
		opts.LogMessage = logging.Callback(zl, cfg.Model+"1")
	}

	var inst *instance.Instance
	switch cfg.Interface {
	case "me":
		inst, err = instance.NewModelExchange(cfg.Model+"1", token, m, opts)
	default:
		inst, err = instance.NewCoSimulation(cfg.Model+"1", token, m, opts)
	}
	if err != nil {
		return nil, err
	}

	if len(cfg.Logging.Categories) > 0 {
		if err := inst.SetDebugLogging(true, cfg.Logging.Categories); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	inst, err := newInstance(cfg)
	if err != nil {
		return err
	}

	runCfg := master.Config{
		StartTime: cfg.StartTime,
		StopTime:  cfg.StopTime,
		StepSize:  cfg.StepSize,
		Outputs:   cfg.Outputs,
	}

	fmt.Printf("running %s (%s)...\n", cfg.Model, cfg.Interface)
	start := time.Now()

	var result *master.Result
	if cfg.Interface == "me" {
		result, err = runModelExchange(inst, runCfg)
	} else {
		result, err = master.New(inst).Run(context.Background(), runCfg)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Model, cfg.Interface, runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Times))
	fmt.Printf("events: %d\n", result.Events)
	if result.Terminated {
		fmt.Println("terminated by model")
	}
	return nil
}

// runModelExchange drives a Model-Exchange instance with an external
// forward-Euler loop, stepping on the communication grid and handling
// indicator sign changes through event mode.
func runModelExchange(inst *instance.Instance, cfg master.Config) (*master.Result, error) {
	desc := inst.Descriptor()

	refs := make([]fmi.ValueReference, 0, len(cfg.Outputs))
outer:
	for _, name := range cfg.Outputs {
		for _, v := range desc.Variables {
			if v.Name == name {
				refs = append(refs, v.ValueReference)
				continue outer
			}
		}
		return nil, fmt.Errorf("model %s has no variable %q", desc.Name, name)
	}

	steps := int(math.Round((cfg.StopTime - cfg.StartTime) / cfg.StepSize))
	result := &master.Result{
		Times:   make([]float64, 0, steps+1),
		Signals: make(map[string][]float64, len(cfg.Outputs)),
	}

	record := func(t float64) error {
		values := make([]float64, len(refs))
		if err := inst.GetFloat64(refs, values); err != nil {
			return err
		}
		result.Times = append(result.Times, t)
		for i, name := range cfg.Outputs {
			result.Signals[name] = append(result.Signals[name], values[i])
		}
		return nil
	}

	settle := func() (bool, error) {
		result.Events++
		for {
			flags, err := inst.UpdateDiscreteStates()
			if err != nil {
				return false, err
			}
			if flags.TerminateSimulation {
				return true, nil
			}
			if !flags.DiscreteStatesNeedUpdate {
				return false, nil
			}
		}
	}

	stop := cfg.StopTime
	if err := inst.EnterInitializationMode(nil, cfg.StartTime, &stop); err != nil {
		return nil, err
	}
	if err := inst.ExitInitializationMode(); err != nil {
		return nil, err
	}
	terminated, err := settle()
	if err != nil {
		return nil, err
	}
	result.Events-- // the initial settle is not an event
	if terminated {
		result.Terminated = true
		return result, inst.Terminate()
	}
	if err := inst.EnterContinuousTimeMode(); err != nil {
		return nil, err
	}

	x := make([]float64, desc.StateCount)
	dx := make([]float64, desc.StateCount)
	z := make([]float64, desc.EventIndicatorCount)
	preZ := make([]float64, desc.EventIndicatorCount)
	if _, err := inst.GetEventIndicators(preZ); err != nil {
		return nil, err
	}

	if err := record(cfg.StartTime); err != nil {
		return nil, err
	}

	for i := 0; i < steps; i++ {
		t := cfg.StartTime + float64(i)*cfg.StepSize
		next := cfg.StartTime + float64(i+1)*cfg.StepSize
		h := next - t

		if err := inst.SetTime(t); err != nil {
			return nil, err
		}
		if err := inst.GetContinuousStates(x); err != nil {
			return nil, err
		}
		if err := inst.GetContinuousStateDerivatives(dx); err != nil {
			return nil, err
		}
		for j := range x {
			x[j] += dx[j] * h
		}
		if err := inst.SetContinuousStates(x); err != nil {
			return nil, err
		}
		if err := inst.SetTime(next); err != nil {
			return nil, err
		}
		if _, _, err := inst.CompletedIntegratorStep(true); err != nil {
			return nil, err
		}

		ok, err := inst.GetEventIndicators(z)
		if err != nil {
			return nil, err
		}
		stateEvent := false
		if ok {
			for j := range z {
				if (preZ[j] <= 0 && z[j] > 0) || (preZ[j] > 0 && z[j] <= 0) {
					stateEvent = true
					break
				}
			}
			copy(preZ, z)
		}
		if stateEvent {
			if err := inst.EnterEventMode(); err != nil {
				return nil, err
			}
			terminated, err := settle()
			if err != nil {
				return nil, err
			}
			if terminated {
				result.Terminated = true
				if err := record(next); err != nil {
					return nil, err
				}
				return result, inst.Terminate()
			}
			if err := inst.EnterContinuousTimeMode(); err != nil {
				return nil, err
			}
			if _, err := inst.GetEventIndicators(preZ); err != nil {
				return nil, err
			}
		}

		if err := record(next); err != nil {
			return nil, err
		}
	}

	result.StepsTaken = steps
	return result, inst.Terminate()
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepParam == "" || len(sweepVals) == 0 {
		return fmt.Errorf("sweep requires --param and --values")
	}
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Interface != "cs" {
		return fmt.Errorf("sweep drives the co-simulation interface; got %q", cfg.Interface)
	}

	variations := make([]master.Variation, len(sweepVals))
	for i, v := range sweepVals {
		variations[i] = master.Variation{
			Name:       fmt.Sprintf("%s=%g", sweepParam, v),
			Parameters: map[string]float64{sweepParam: v},
		}
	}

	batch := master.NewBatch(func() (*instance.Instance, error) { return newInstance(cfg) }, variations)

	runCfg := master.Config{
		StartTime: cfg.StartTime,
		StopTime:  cfg.StopTime,
		StepSize:  cfg.StepSize,
		Outputs:   cfg.Outputs,
	}

	fmt.Printf("sweeping %s over %s (%d runs)...\n", cfg.Model, sweepParam, len(variations))
	start := time.Now()
	results, err := batch.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "VARIATION\tEVENTS"
	for _, name := range cfg.Outputs {
		header += "\tFINAL " + name
	}
	fmt.Fprintln(w, header)
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%d", variations[i].Name, res.Events)
		for _, name := range cfg.Outputs {
			series := res.Signals[name]
			fmt.Fprintf(w, "\t%.6f", series[len(series)-1])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Interface != "cs" {
		return fmt.Errorf("live view drives the co-simulation interface; got %q", cfg.Interface)
	}

	inst, err := newInstance(cfg)
	if err != nil {
		return err
	}

	m, err := tui.NewModel(inst, master.Config{
		StartTime: cfg.StartTime,
		StopTime:  cfg.StopTime,
		StepSize:  cfg.StepSize,
		Outputs:   cfg.Outputs,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	registry := models.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tSTATES\tINDICATORS\tSTEP\tTOKEN")

	for _, name := range registry.List() {
		m, err := registry.New(name)
		if err != nil {
			return err
		}
		desc := m.Describe()
		token, err := registry.Token(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%s\n",
			name, desc.StateCount, desc.EventIndicatorCount, desc.FixedSolverStep, token)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tIFACE\tTIME\tSTOP\tDT\tEVENTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Model,
			run.Interface,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.StopTime,
			run.StepSize,
			run.Events,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, signals, err := st.LoadSignals(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(times))

	for name, series := range signals {
		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgDir != "" {
		if err := os.MkdirAll(svgDir, 0755); err != nil {
			return err
		}
		for name, series := range signals {
			svg := store.SignalToSVG(times, series, 800, 400, "#00ff88")
			path := filepath.Join(svgDir, fmt.Sprintf("%s_%s.svg", runID, name))
			if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, signals, err := st.LoadSignals(args[0])
	if err != nil {
		return err
	}

	result := &master.Result{
		Times:      times,
		Signals:    signals,
		Events:     meta.Events,
		Terminated: meta.Terminated,
	}
	cfg := master.Config{StartTime: meta.StartTime, StopTime: meta.StopTime, StepSize: meta.StepSize}
	return store.ExportJSONStdout(meta.Model, meta.Interface, cfg, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, signals, err := st.LoadSignals(args[0])
	if err != nil {
		return err
	}
	result := &master.Result{Times: times, Signals: signals}
	return store.WriteCSV(os.Stdout, result)
}
