package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/game"
	"github.com/pthm-cable/swarm/sim"
	"github.com/pthm-cable/swarm/tui"
)

var (
	configPath  string
	seed        int64
	count       int
	logStats    bool
	statsWindow float64
	outputDir   string

	maxTicks       int
	stepsPerUpdate int
)

var (
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	summaryLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(14)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "swarm",
		Short: "particle swarm that forms text",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to config.yaml (empty = use defaults)")
	pf.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	pf.IntVar(&count, "count", 0, "particle count (0 = use config)")
	pf.BoolVar(&logStats, "log-stats", false, "output window stats via slog")
	pf.Float64Var(&statsWindow, "stats-window", 0, "stats window size in seconds (0 = use config)")
	pf.StringVar(&outputDir, "output-dir", "", "output directory for CSV logs, config and snapshots")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a raylib window",
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "stop after N ticks (0 = unlimited)")

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run without graphics and print a summary",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().IntVar(&maxTicks, "max-ticks", 1200, "stop after N ticks")
	headlessCmd.Flags().IntVar(&stepsPerUpdate, "steps-per-update", 1, "simulation ticks per update call")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal on a braille canvas",
		RunE:  runTUI,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Cfg().YAML()
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	rootCmd.AddCommand(windowCmd, headlessCmd, tuiCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config and installs the JSON logger.
func setup() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}
	return nil
}

func options() sim.Options {
	return sim.Options{
		Seed:           seed,
		Count:          count,
		OutputDir:      outputDir,
		LogStats:       logStats,
		StatsWindow:    statsWindow,
		StepsPerUpdate: stepsPerUpdate,
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swarm")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, options())
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	r, err := sim.New(config.Cfg(), options())
	if err != nil {
		return err
	}
	defer r.Close()

	slog.Info("starting headless simulation",
		"seed", r.Seed(),
		"max_ticks", maxTicks,
		"steps_per_update", r.StepsPerUpdate(),
	)

	for int(r.Tick()) < maxTicks {
		r.Update()
	}
	slog.Info("max ticks reached", "tick", r.Tick())

	printSummary(r)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Logs would draw over the alt screen.
	slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelError})))

	cfg := config.Cfg()
	opts := options()
	opts.Width = float32(cfg.Screen.Width)
	opts.Height = float32(cfg.Screen.Height)

	r, err := sim.New(cfg, opts)
	if err != nil {
		return err
	}
	defer r.Close()
	return tui.Run(r)
}

// printSummary writes final counts and the forming history chart.
func printSummary(r *sim.Runner) {
	st := r.Substrate().Stats()
	perf := r.Perf()

	fmt.Println(summaryTitle.Render("swarm summary"))
	line := func(label string, value any) {
		fmt.Println(summaryLabel.Render(label) + fmt.Sprint(value))
	}
	line("seed", r.Seed())
	line("ticks", r.Tick())
	line("message", r.Message())
	line("particles", st.Particles)
	line("forming", st.Forming)
	line("floating", st.Floating)
	line("targets", st.TextCoords)
	line("perf", perf.Summary())

	if hist := r.FormingHistory(); len(hist) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(hist,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("forming fraction per window"),
		))
	}
}
