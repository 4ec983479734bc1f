package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynresp/internal/analysis"
	"github.com/san-kum/dynresp/internal/config"
	"github.com/san-kum/dynresp/internal/dynamo"
	"github.com/san-kum/dynresp/internal/export"
	"github.com/san-kum/dynresp/internal/metrics"
	"github.com/san-kum/dynresp/internal/optim"
	"github.com/san-kum/dynresp/internal/physics"
	"github.com/san-kum/dynresp/internal/storage"
	"github.com/san-kum/dynresp/internal/viz"
)

var (
	dataDir string
	// System parameters
	mass      float64
	damping   float64
	stiffness float64
	load      float64
	// Window
	step       float64
	windowMode string
	// Plot options
	title     string
	style     string
	width     int
	height    int
	noGrid    bool
	svgPath   string
	svgWidth  int
	svgHeight int
	// Config file
	configFile string
	// Preset name
	preset string
	noSave bool
	noPlot bool
	// Sweep
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	sweepMetric string
)

// main registers the dynresp commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dynresp",
		Short: "step response of a damped single-degree-of-freedom system",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynresp", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evaluate, plot and archive a step response",
		Args:  cobra.NoArgs,
		RunE:  runResponse,
	}
	addSystemFlags(runCmd)
	addPlotFlags(runCmd)
	runCmd.Flags().Float64Var(&step, "step", dynamo.DefaultStep, "sampling interval [s]")
	runCmd.Flags().StringVar(&windowMode, "window", config.WindowLiteral, "time window: literal (half of 2π s) or natural (half of 2π/ωn)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset system")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "do not draw the terminal chart")

	modalCmd := &cobra.Command{
		Use:   "modal",
		Short: "print modal properties",
		Args:  cobra.NoArgs,
		RunE:  printModal,
	}
	addSystemFlags(modalCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	crosscheckCmd := &cobra.Command{
		Use:   "crosscheck",
		Short: "compare the closed-form curve with the exact damped spring motion",
		Args:  cobra.NoArgs,
		RunE:  crosscheck,
	}
	addSystemFlags(crosscheckCmd)
	crosscheckCmd.Flags().Float64Var(&step, "step", dynamo.DefaultStep, "sampling interval [s]")
	crosscheckCmd.Flags().StringVar(&windowMode, "window", config.WindowLiteral, "time window: literal or natural")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one system parameter and rank runs by a metric",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	addSystemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", optim.Damping, "parameter to sweep: mass, damping, stiffness or load")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.9, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 20, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "amplification", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available preset systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tM\tC\tK\tP0")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", name, p.Mass, p.Damping, p.Stiffness, p.Load)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, modalCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, crosscheckCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&mass, "mass", "m", config.DefaultMass, "mass [kg]")
	cmd.Flags().Float64VarP(&damping, "damping", "c", config.DefaultDamping, "damping coefficient [N·s/m]")
	cmd.Flags().Float64VarP(&stiffness, "stiffness", "k", config.DefaultStiffness, "stiffness [N/m]")
	cmd.Flags().Float64VarP(&load, "load", "p", config.DefaultLoad, "constant load p0 [N]")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&title, "title", viz.DefaultTitle, "chart title")
	cmd.Flags().StringVar(&style, "style", config.StyleLine, "terminal chart style: line or braille")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "chart width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "chart height")
	cmd.Flags().BoolVar(&noGrid, "no-grid", false, "disable grid")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write the chart to this SVG file")
	cmd.Flags().IntVar(&svgWidth, "svg-width", 800, "SVG width in pixels")
	cmd.Flags().IntVar(&svgHeight, "svg-height", 500, "SVG height in pixels")
}

// resolveConfig layers defaults, the preset, the config file and any
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// Without a preset or config file the flag defaults define the system.
	flags := cmd.Flags()
	fromFlags := preset == "" && configFile == ""
	if fromFlags || flags.Changed("mass") {
		cfg.System.Mass = mass
	}
	if fromFlags || flags.Changed("damping") {
		cfg.System.Damping = damping
	}
	if fromFlags || flags.Changed("stiffness") {
		cfg.System.Stiffness = stiffness
	}
	if fromFlags || flags.Changed("load") {
		cfg.System.Load = load
	}
	if flags.Changed("step") {
		cfg.Window.Step = step
	}
	if flags.Changed("window") {
		cfg.Window.Mode = windowMode
	}
	if flags.Changed("title") {
		cfg.Plot.Title = title
	}
	if flags.Changed("style") {
		cfg.Plot.Style = style
	}
	if flags.Changed("width") {
		cfg.Plot.Width = width
	}
	if flags.Changed("height") {
		cfg.Plot.Height = height
	}
	if flags.Changed("no-grid") {
		cfg.Plot.Grid = !noGrid
	}
	if flags.Changed("svg") {
		cfg.Plot.SVG = svgPath
	}

	return cfg, nil
}

func terminalPlotter(plotStyle string, w, h int) (viz.Plotter, error) {
	switch plotStyle {
	case "", config.StyleLine:
		return viz.NewTerminal(os.Stdout, w, h), nil
	case config.StyleBraille:
		return viz.NewBraille(os.Stdout, w, h), nil
	default:
		return nil, fmt.Errorf("unknown style: %s (available: %s, %s)", plotStyle, config.StyleLine, config.StyleBraille)
	}
}

func plotChart(chart viz.Chart, plot config.PlotConfig, toTerminal bool) error {
	var plotters []viz.Plotter
	if toTerminal {
		p, err := terminalPlotter(plot.Style, plot.Width, plot.Height)
		if err != nil {
			return err
		}
		plotters = append(plotters, p)
	}
	if plot.SVG != "" {
		plotters = append(plotters, export.NewSVG(plot.SVG, svgWidth, svgHeight))
	}

	for _, p := range plotters {
		if err := p.Plot(chart); err != nil {
			return err
		}
	}
	if plot.SVG != "" {
		fmt.Printf("svg: %s\n", plot.SVG)
	}
	return nil
}

func printModalProperties(p dynamo.SystemParameters, m dynamo.ModalProperties) {
	fmt.Println(viz.HeaderStyle.Render("system"))
	fmt.Println(viz.Field("mass", p.Mass, "kg"))
	fmt.Println(viz.Field("damping", p.Damping, "N·s/m"))
	fmt.Println(viz.Field("stiffness", p.Stiffness, "N/m"))
	fmt.Println(viz.Field("load", p.Load, "N"))
	fmt.Println(viz.HeaderStyle.Render("modal properties"))
	fmt.Println(viz.Field("natural frequency", m.NaturalFrequency, "rad/s"))
	fmt.Println(viz.Field("critical damping", m.CriticalDamping, "N·s/m"))
	fmt.Println(viz.Field("damping ratio", m.DampingRatio, ""))
	fmt.Println(viz.Field("damped frequency", m.DampedFrequency, "rad/s"))
	fmt.Println(viz.Field("natural period", m.NaturalPeriod(), "s"))
}

func runResponse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	osc, err := physics.NewOscillator(cfg.Params())
	if err != nil {
		return err
	}

	win, err := cfg.ResolveWindow(osc.Modal)
	if err != nil {
		return err
	}

	resp, err := osc.Response(win)
	if err != nil {
		return err
	}

	ms := metrics.Defaults(osc)
	values := metrics.Collect(resp.Samples, ms...)

	printModalProperties(resp.Params, resp.Modal)
	fmt.Println(viz.HeaderStyle.Render("response"))
	fmt.Println(viz.Field("static displacement", resp.Static, "m"))
	fmt.Println(viz.Field("window", win.Stop, "s"))
	fmt.Println(viz.Field("samples", float64(len(resp.Samples)), ""))
	for _, m := range ms {
		fmt.Println(viz.Field(m.Name(), values[m.Name()], ""))
	}
	fmt.Println()

	chart := viz.NewChart(cfg.Plot.Title, resp.Samples)
	chart.Grid = cfg.Plot.Grid
	if err := plotChart(chart, cfg.Plot, !noPlot); err != nil {
		return err
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(resp, values)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)

	return nil
}

func printModal(cmd *cobra.Command, args []string) error {
	p := dynamo.SystemParameters{Mass: mass, Damping: damping, Stiffness: stiffness, Load: load}
	m, err := physics.Modal(p)
	if err != nil {
		return err
	}
	printModalProperties(p, m)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tM\tC\tK\tP0\tZETA\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%.4f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Mass,
			run.Params.Damping,
			run.Params.Stiffness,
			run.Params.Load,
			run.Modal.DampingRatio,
			run.Samples,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s: no samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	chart := viz.NewChart(title, samples)
	chart.Grid = !noGrid
	return plotChart(chart, config.PlotConfig{
		Title:  title,
		Style:  style,
		Width:  width,
		Height: height,
		Grid:   !noGrid,
		SVG:    svgPath,
	}, true)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.U
	}
	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (displacement)"),
	)
	fmt.Println(graph)
	fmt.Println()

	dominant := analysis.DominantFrequency(samples)
	fmt.Println(viz.Field("dominant frequency", dominant, "rad/s"))
	fmt.Println(viz.Field("natural frequency", meta.Modal.NaturalFrequency, "rad/s"))
	fmt.Println(viz.Field("damped frequency", meta.Modal.DampedFrequency, "rad/s"))
	if dominant > 0 {
		fmt.Println(viz.Field("period", 2*math.Pi/dominant, "s"))
	}
	span := samples[len(samples)-1].T - samples[0].T
	if span > 0 && meta.Modal.NaturalFrequency > 0 && span < meta.Modal.NaturalPeriod() {
		fmt.Println(viz.Subtle.Render("window is shorter than one natural period; spectral estimate is coarse"))
	}

	return nil
}

func crosscheck(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.System = dynamo.SystemParameters{Mass: mass, Damping: damping, Stiffness: stiffness, Load: load}
	cfg.Window = config.WindowConfig{Mode: windowMode, Step: step}

	osc, err := physics.NewOscillator(cfg.Params())
	if err != nil {
		return err
	}
	win, err := cfg.ResolveWindow(osc.Modal)
	if err != nil {
		return err
	}
	resp, err := osc.Response(win)
	if err != nil {
		return err
	}
	exact, err := analysis.ExactTrajectory(resp.Params, resp.Modal, win)
	if err != nil {
		return err
	}

	dev := analysis.Compare(resp.Samples, exact)
	fmt.Println(viz.HeaderStyle.Render("closed form vs exact damped spring"))
	fmt.Println(viz.Field("damping ratio", resp.Modal.DampingRatio, ""))
	fmt.Println(viz.Field("max deviation", dev.Max, "m"))
	fmt.Println(viz.Field("at time", dev.MaxAt, "s"))
	fmt.Println(viz.Field("rms deviation", dev.RMS, "m"))
	fmt.Println(viz.Field("points", float64(dev.Points), ""))
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	base := dynamo.SystemParameters{Mass: mass, Damping: damping, Stiffness: stiffness, Load: load}
	g, err := optim.NewGridSearch(base, dynamo.DefaultWindow(),
		[]string{sweepParam},
		[][]float64{optim.Linspace(sweepFrom, sweepTo, sweepPoints)},
	)
	if err != nil {
		return err
	}

	points, best := g.Search(sweepMetric)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "M\tC\tK\tP0\t%s\n", sweepMetric)
	for i, p := range points {
		value := "-"
		if p.Err != nil {
			value = viz.ErrorStyle.Render(p.Err.Error())
		} else if v, ok := p.Metrics[sweepMetric]; ok {
			value = fmt.Sprintf("%.6g", v)
		}
		marker := ""
		if i == best {
			marker = " *"
		}
		fmt.Fprintf(w, "%g\t%g\t%g\t%g\t%s%s\n", p.Params.Mass, p.Params.Damping, p.Params.Stiffness, p.Params.Load, value, marker)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best < 0 {
		return fmt.Errorf("no evaluable system for metric %s", sweepMetric)
	}
	return nil
}
