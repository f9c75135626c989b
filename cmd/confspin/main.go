package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/mwillard/confspin/internal/config"
	"github.com/mwillard/confspin/internal/mol"
	"github.com/mwillard/confspin/internal/potential"
	"github.com/mwillard/confspin/internal/spin"
	"github.com/mwillard/confspin/internal/store"
	"github.com/mwillard/confspin/internal/tui"
	"github.com/spf13/cobra"
)

var (
	stepSize    float64
	rotStepSize float64
	conformers  int
	attempts    int
	beta        float64
	seed        int64
	epsilon     float64
	potKind     string
	annealStart float64
	annealOver  int
	configFile  string
	preset      string
	trajectory  string
	compress    bool
	summaryPath string
	plotPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "confspin",
		Short: "host-guest conformer search by rigid-body Monte Carlo",
	}

	runCmd := &cobra.Command{
		Use:   "run [host.xyz] [guest.xyz...]",
		Short: "run conformer search",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runSearch,
	}
	addSearchFlags(runCmd)
	runCmd.Flags().StringVar(&trajectory, "out", "conformers.xyz", "trajectory output path")
	runCmd.Flags().BoolVar(&compress, "gzip", false, "gzip the trajectory")
	runCmd.Flags().StringVar(&summaryPath, "summary", "", "write a JSON run summary")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "write an energy trace image (png/svg/pdf)")

	liveCmd := &cobra.Command{
		Use:   "live [host.xyz] [guest.xyz...]",
		Short: "run conformer search with a live terminal view",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runLive,
	}
	addSearchFlags(liveCmd)
	liveCmd.Flags().StringVar(&trajectory, "out", "", "trajectory output path (optional)")
	liveCmd.Flags().BoolVar(&compress, "gzip", false, "gzip the trajectory")

	describeCmd := &cobra.Command{
		Use:   "describe [file.xyz...]",
		Short: "summarize XYZ inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  describeFiles,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, describeCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&stepSize, "step", config.DefaultStepSize, "max translation per move (angstrom)")
	cmd.Flags().Float64Var(&rotStepSize, "rot-step", config.DefaultRotationStepSize, "max rotation per move (radians)")
	cmd.Flags().IntVar(&conformers, "conformers", config.DefaultNumConformers, "accepted conformers to collect")
	cmd.Flags().IntVar(&attempts, "attempts", 0, "proposal budget (0 = 100x conformers)")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "inverse temperature")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "pair potential strength")
	cmd.Flags().StringVar(&potKind, "potential", "lj", "potential: lj or annealed")
	cmd.Flags().Float64Var(&annealStart, "anneal-start", 0.1, "initial epsilon fraction (annealed)")
	cmd.Flags().IntVar(&annealOver, "anneal-over", 1000, "evaluations to reach full strength (annealed)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and CLI flags, in that order
// of increasing precedence. An explicitly set flag always wins.
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

	if cmd.Flags().Changed("step") {
		cfg.Spinner.StepSize = stepSize
	}
	if cmd.Flags().Changed("rot-step") {
		cfg.Spinner.RotationStepSize = rotStepSize
	}
	if cmd.Flags().Changed("conformers") {
		cfg.Spinner.NumConformers = conformers
	}
	if cmd.Flags().Changed("attempts") {
		cfg.Spinner.MaxAttempts = attempts
	}
	if cmd.Flags().Changed("beta") {
		cfg.Spinner.Beta = beta
	}
	if cmd.Flags().Changed("seed") {
		cfg.Spinner.Seed = &seed
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Potential.Epsilon = epsilon
	}
	if cmd.Flags().Changed("potential") {
		cfg.Potential.Type = potKind
	}
	if cmd.Flags().Changed("anneal-start") {
		cfg.Potential.AnnealStart = annealStart
	}
	if cmd.Flags().Changed("anneal-over") {
		cfg.Potential.AnnealOver = annealOver
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Trajectory = trajectory
	}
	if cmd.Flags().Changed("gzip") {
		cfg.Output.Compress = compress
	}
	if cmd.Flags().Changed("summary") {
		cfg.Output.Summary = summaryPath
	}
	if cmd.Flags().Changed("plot") {
		cfg.Output.Plot = plotPath
	}

	return cfg, nil
}

func buildPotential(cfg *config.Config) (mol.Potential, error) {
	switch cfg.Potential.Type {
	case "", "lj":
		return potential.NewLennardJones(cfg.Potential.Epsilon), nil
	case "annealed":
		ramp := potential.LinearRamp(cfg.Potential.AnnealStart, cfg.Potential.AnnealOver)
		return potential.NewAnnealed(cfg.Potential.Epsilon, ramp), nil
	default:
		return nil, fmt.Errorf("unknown potential: %s", cfg.Potential.Type)
	}
}

func loadAssembly(host string, guests []string, pot mol.Potential) (*mol.SupraMolecule, error) {
	components := make([]*mol.Molecule, 0, 1+len(guests))
	h, err := mol.ReadXYZFile(host)
	if err != nil {
		return nil, fmt.Errorf("reading host %s: %w", host, err)
	}
	components = append(components, h)
	for _, path := range guests {
		g, err := mol.ReadXYZFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading guest %s: %w", path, err)
		}
		components = append(components, g)
	}
	return mol.NewSupraMolecule(components, pot)
}

func startSearch(cmd *cobra.Command, args []string) (*config.Config, *spin.Search, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	pot, err := buildPotential(cfg)
	if err != nil {
		return nil, nil, err
	}

	assembly, err := loadAssembly(args[0], args[1:], pot)
	if err != nil {
		return nil, nil, err
	}

	sp, err := spin.New(spin.Config{
		StepSize:         cfg.Spinner.StepSize,
		RotationStepSize: cfg.Spinner.RotationStepSize,
		NumConformers:    cfg.Spinner.NumConformers,
		MaxAttempts:      cfg.Spinner.MaxAttempts,
		Beta:             cfg.Spinner.Beta,
		Seed:             cfg.Spinner.Seed,
		Movable:          cfg.Spinner.Movable,
	}, pot)
	if err != nil {
		return nil, nil, err
	}

	search, err := sp.Start(assembly)
	if err != nil {
		return nil, nil, err
	}
	return cfg, search, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, search, err := startSearch(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("searching: host %s, %d guest(s)\n", args[0], len(args)-1)
	start := time.Now()

	tw, err := store.NewTrajectoryWriter(cfg.Output.Trajectory, cfg.Output.Compress)
	if err != nil {
		return err
	}

	accepted := make([]*mol.SupraMolecule, 0, cfg.Spinner.NumConformers)
	for c := range search.All() {
		if err := tw.WriteFrame(c); err != nil {
			tw.Close()
			return err
		}
		accepted = append(accepted, c)
	}
	if err := tw.Close(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	stats := search.Stats()
	summary := store.NewSummary(args[0], args[1:], search.Initial(), accepted, stats)

	fmt.Printf("completed in %v\n\n", elapsed)

	energies := summary.Energies()
	if len(energies) > 1 {
		fmt.Println(asciigraph.Plot(energies,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("energy per accepted conformer"),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "conformers\t%d/%d\n", len(accepted), cfg.Spinner.NumConformers)
	fmt.Fprintf(w, "proposals\t%d\n", stats.Proposals)
	if stats.Proposals > 0 {
		fmt.Fprintf(w, "acceptance\t%.1f%%\n", 100*float64(stats.Accepted)/float64(stats.Proposals))
	}
	fmt.Fprintf(w, "initial energy\t%.6f\n", search.Initial().Energy())
	if final := search.FinalConformer(); final != nil {
		fmt.Fprintf(w, "final energy\t%.6f\n", final.Energy())
	}
	fmt.Fprintf(w, "trajectory\t%s (%d frames)\n", cfg.Output.Trajectory, tw.Frames())
	if stats.Exhausted {
		fmt.Fprintf(w, "note\tattempt budget exhausted before %d conformers\n", cfg.Spinner.NumConformers)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if cfg.Output.Summary != "" {
		if err := summary.WriteJSON(cfg.Output.Summary); err != nil {
			return err
		}
		fmt.Printf("summary: %s\n", cfg.Output.Summary)
	}
	if cfg.Output.Plot != "" {
		if err := store.EnergyPlot(cfg.Output.Plot, energies); err != nil {
			return err
		}
		fmt.Printf("plot: %s\n", cfg.Output.Plot)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, search, err := startSearch(cmd, args)
	if err != nil {
		return err
	}

	m := tui.New(search, cfg.Spinner.NumConformers)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}

	if cfg.Output.Trajectory == "" {
		return nil
	}
	fm, ok := final.(tui.Model)
	if !ok {
		return nil
	}

	tw, err := store.NewTrajectoryWriter(cfg.Output.Trajectory, cfg.Output.Compress)
	if err != nil {
		return err
	}
	for _, c := range fm.Accepted() {
		if err := tw.WriteFrame(c); err != nil {
			tw.Close()
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	fmt.Printf("trajectory: %s (%d frames)\n", cfg.Output.Trajectory, tw.Frames())
	return nil
}

func describeFiles(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tATOMS\tCENTROID")
	for _, path := range args {
		m, err := mol.ReadXYZFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		c, err := m.Centroid()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(w, "%s\t%d\t(%.3f, %.3f, %.3f)\n", path, m.NumAtoms(), c[0], c[1], c[2])
	}
	return w.Flush()
}
