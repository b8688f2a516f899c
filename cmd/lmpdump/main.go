package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lmpdump/internal/analysis"
	"github.com/san-kum/lmpdump/internal/config"
	"github.com/san-kum/lmpdump/internal/dump"
	"github.com/san-kum/lmpdump/internal/export"
	"github.com/san-kum/lmpdump/internal/histo"
	"github.com/san-kum/lmpdump/internal/lmpinput"
	"github.com/san-kum/lmpdump/internal/metrics"
	"github.com/san-kum/lmpdump/internal/storage"
	"github.com/san-kum/lmpdump/internal/viz"
)

var (
	configFile string
	dataDir    string
	prefix     string
	component  string
	verbose    bool
	theme      string

	bins      int
	stride    int
	normalize bool
	plotTerm  bool
	pngFile   string
	svgFile   string
	saveRun   bool

	format     string
	outFile    string
	withValues bool

	blocks int

	preset      string
	paramsFile  string
	listPresets bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "lmpdump",
		Short:        "LAMMPS dump analysis",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "tool config file (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "run store directory")
	pf.StringVar(&prefix, "prefix", dump.DefaultPrefix, "dump file name prefix")
	pf.StringVar(&component, "component", config.DefaultComponent, "column collected per file (x y z vx vy vz fx fy fz etot)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log skipped files to stderr")
	pf.StringVar(&theme, "theme", "", fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	energyCmd := &cobra.Command{
		Use:   "energy [dir]",
		Short: "total energy per dump file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  energyCommand,
	}
	energyCmd.Flags().BoolVar(&plotTerm, "plot", false, "plot the series in the terminal")
	energyCmd.Flags().StringVar(&pngFile, "png", "", "write an energy plot (png, svg or pdf by extension)")
	energyCmd.Flags().BoolVar(&saveRun, "save", false, "record the result in the run store")

	histCmd := &cobra.Command{
		Use:   "hist [dir]",
		Short: "velocity histogram over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  histCommand,
	}
	histCmd.Flags().IntVar(&bins, "bins", histo.DefaultBins, "number of bins")
	histCmd.Flags().IntVar(&stride, "stride", histo.DefaultStride, "use every n-th file")
	histCmd.Flags().BoolVar(&normalize, "normalize", false, "scale every row to sum to one")
	histCmd.Flags().StringVar(&pngFile, "png", "", "write a heat map (png, svg or pdf by extension)")
	histCmd.Flags().StringVar(&svgFile, "svg", "", "write the 3D rendering as svg")

	viewCmd := &cobra.Command{
		Use:   "view [dir]",
		Short: "interactive 3D histogram viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewCommand,
	}
	viewCmd.Flags().IntVar(&bins, "bins", histo.DefaultBins, "number of bins")
	viewCmd.Flags().IntVar(&stride, "stride", histo.DefaultStride, "use every n-th file")

	exportCmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "export the aggregate as csv or json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCommand,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&withValues, "values", false, "include per-file column values (json)")

	inputCmd := &cobra.Command{
		Use:   "input",
		Short: "render a LAMMPS input script",
		Args:  cobra.NoArgs,
		RunE:  inputCommand,
	}
	inputCmd.Flags().StringVar(&preset, "preset", "", fmt.Sprintf("start from a preset (%s)", strings.Join(lmpinput.ListPresets(), ", ")))
	inputCmd.Flags().StringVar(&paramsFile, "params", "", "params file (yaml), applied over the preset")
	inputCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	inputCmd.Flags().BoolVar(&listPresets, "list", false, "list presets and exit")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  runsCommand,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showCommand,
	}
	showCmd.Flags().StringVar(&svgFile, "svg", "", "write the energy series as svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "energy spectrum and block-averaged error of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeCommand,
	}
	analyzeCmd.Flags().IntVar(&blocks, "blocks", 5, "number of blocks for the error estimate")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return config.Write(os.Stdout, cfg)
		},
	}

	rootCmd.AddCommand(energyCmd, histCmd, viewCmd, exportCmd, inputCmd, runsCmd, showCmd, analyzeCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the config file, LMPDUMP_* variables and
// flags, later sources winning.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("prefix") {
		cfg.Prefix = prefix
	}
	if flags.Changed("component") {
		cfg.Component = component
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("bins") {
		cfg.Bins = bins
	}
	if flags.Changed("stride") {
		cfg.Stride = stride
	}
	if theme != "" {
		viz.SetTheme(theme)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	var w io.Writer = io.Discard
	if cfg.Verbose {
		w = os.Stderr
	}
	return log.New(w, "lmpdump: ", 0)
}

// loadAggregate loads the dumps in the directory named by args, or the
// configured one, ordered by timestep.
func loadAggregate(cfg *config.Config, args []string) (*dump.Aggregate, string, error) {
	dir := cfg.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	c, err := dump.ParseComponent(cfg.Component)
	if err != nil {
		return nil, dir, err
	}
	logger := newLogger(cfg)

	agg, err := dump.LoadDir(dir, cfg.Prefix, dump.WithComponent(c), dump.WithLogger(logger))
	if err != nil {
		return nil, dir, err
	}
	agg.SortByTimestep()
	logger.Printf("loaded %d files from %s", agg.Len(), dir)
	return agg, dir, nil
}

func energyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	agg, dir, err := loadAggregate(cfg, args)
	if err != nil {
		return err
	}
	if agg.Len() == 0 {
		fmt.Printf("no usable dump files in %s\n", dir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTEP\tENERGY\tATOMS\tFILE")
	for i, e := range agg.Energies {
		ts := "-"
		if e.Timestep != nil {
			ts = fmt.Sprintf("%d", *e.Timestep)
		}
		fmt.Fprintf(w, "%s\t%.6f\t%d\t%s\n", ts, e.Total, len(agg.Velocities[i]), e.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	results := metrics.Evaluate(agg, metrics.Default()...)
	fmt.Println()
	printMetrics(results)

	if plotTerm && agg.Len() > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(agg.Totals(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		))
	}

	if pngFile != "" {
		p, err := export.EnergyPlot(agg)
		if err != nil {
			return err
		}
		if err := export.SavePlot(p, pngFile); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", pngFile)
	}

	if saveRun {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(dir, cfg.Prefix, agg, results)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}
	return nil
}

func printMetrics(results map[string]float64) {
	for _, m := range metrics.Default() {
		v, ok := results[m.Name()]
		if !ok {
			continue
		}
		fmt.Println(viz.MetricLabel.Render(m.Name()) + viz.MetricValue.Render(fmt.Sprintf("%.6g", v)))
	}
}

func buildMatrix(cfg *config.Config, args []string) (*histo.Matrix, *dump.Aggregate, error) {
	agg, _, err := loadAggregate(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	m, err := histo.FromAggregate(agg, cfg.Bins, cfg.Stride)
	if err != nil {
		return nil, nil, err
	}
	return m, agg, nil
}

func histCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, agg, err := buildMatrix(cfg, args)
	if err != nil {
		return err
	}
	if normalize {
		m = m.Normalized()
	}

	rows, cols := m.Dims()
	fmt.Println(viz.Title(fmt.Sprintf("%s distribution", cfg.Component)))
	fmt.Printf("%d of %d files, %d bins over [%.4g, %.4g]\n\n", rows, agg.Len(), cols, m.Dividers[0], m.Dividers[cols])

	canvas := viz.RenderBars(m, viz.NewCamera(), 60, 22)
	fmt.Println(lipgloss.NewStyle().Foreground(viz.CurrentTheme.Primary).Render(canvas.String()))

	if pngFile != "" {
		p, err := export.HistogramPlot(m, cfg.Component)
		if err != nil {
			return err
		}
		if err := export.SavePlot(p, pngFile); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}

	if svgFile != "" {
		svg := export.CanvasToSVG(canvas, 4, string(viz.CurrentTheme.Primary))
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func viewCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, agg, err := buildMatrix(cfg, args)
	if err != nil {
		return err
	}
	return viz.Run(m, agg.Totals(), cfg.Component)
}

func exportCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	agg, _, err := loadAggregate(cfg, args)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(out, agg)
	case "json":
		return export.WriteJSON(out, agg, metrics.Evaluate(agg, metrics.Default()...), withValues)
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
}

func inputCommand(cmd *cobra.Command, args []string) error {
	if listPresets {
		fmt.Println("presets:")
		for _, name := range lmpinput.ListPresets() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	p := lmpinput.Defaults()
	if preset != "" {
		var err error
		if p, err = lmpinput.GetPreset(preset); err != nil {
			return fmt.Errorf("%w (available: %v)", err, lmpinput.ListPresets())
		}
	}

	if paramsFile != "" {
		f, err := os.Open(paramsFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if p, err = lmpinput.Decode(f, p); err != nil {
			return fmt.Errorf("%s: %w", paramsFile, err)
		}
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return lmpinput.Render(out, p)
}

func runsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDIR\tCOMPONENT\tFILES\tMEAN ENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dir,
			run.Component,
			run.Files,
			run.Metrics["energy_mean"],
		)
	}

	return w.Flush()
}

func showCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runID := args[0]
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dir: %s (%s*)\n", meta.Dir, meta.Prefix)
	fmt.Printf("files: %d\n\n", meta.Files)
	printMetrics(meta.Metrics)

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		if p.Timestep != nil {
			xs[i] = float64(*p.Timestep)
		}
		ys[i] = p.Total
	}

	if len(ys) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ys,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		))
	}

	if svgFile != "" {
		svg := export.SeriesToSVG(xs, ys, 800, 400, string(viz.CurrentTheme.Primary))
		if svg == "" {
			return fmt.Errorf("need at least two points for svg")
		}
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runID := args[0]
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}

	series := make([]float64, len(points))
	timesteps := make([]int64, 0, len(points))
	for i, p := range points {
		series[i] = p.Total
		if p.Timestep != nil {
			timesteps = append(timesteps, *p.Timestep)
		}
	}

	ps, err := analysis.Spectrum(series)
	if err != nil {
		return err
	}

	fmt.Printf("energy analysis: %s\n", meta.ID)
	fmt.Printf("dir: %s\n\n", meta.Dir)

	plotData := ps[1:]
	if len(plotData) > 1 {
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (total energy)"),
		))
		fmt.Println()
	}

	spacing := analysis.Spacing(timesteps)
	if _, freq := analysis.Dominant(ps, len(series), spacing); freq > 0 {
		fmt.Printf("dominant frequency: %.4g per timestep\n", freq)
		fmt.Printf("period: %.4g timesteps\n", 1/freq)
	}

	mean, stderr, err := analysis.BlockAverage(series, blocks)
	if err != nil {
		fmt.Printf("block average: %v\n", err)
		return nil
	}
	fmt.Printf("mean energy: %.6g +/- %.3g (%d blocks)\n", mean, stderr, blocks)
	return nil
}
