package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fumin/vqs"
	"github.com/fumin/vqs/config"
	"github.com/fumin/vqs/plot"
)

const (
	fnameFidelity = "vqs_exact_vs_variational.svg"
	fnameParams   = "vqs_parameter_evolution.svg"
	fnameBloch    = "vqs_state_trajectory_bloch.svg"

	logPeriod = 5 * time.Second
)

type flags struct {
	tmax       float64
	dt         float64
	configPath string
	outDir     string
	noPlots    bool
	verbose    bool
}

func newCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "run",
		Short:         "Run a tiny variational quantum simulator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return errors.Wrap(err, "")
			}
			return run(cmd.OutOrStdout(), cfg, f.verbose)
		},
	}
	cmd.Flags().Float64Var(&f.tmax, "tmax", config.DefaultTMax, "final time value")
	cmd.Flags().Float64Var(&f.dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML config file, flags given explicitly override it")
	cmd.Flags().StringVar(&f.outDir, "out", config.DefaultOutputDir, "directory for SVG plots")
	cmd.Flags().BoolVar(&f.noPlots, "no-plots", false, "skip writing SVG plots")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log integration progress")
	return cmd
}

func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		var err error
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return nil, errors.Wrap(err, "")
		}
	}

	if f.configPath == "" || cmd.Flags().Changed("tmax") {
		cfg.TMax = f.tmax
	}
	if f.configPath == "" || cmd.Flags().Changed("dt") {
		cfg.Dt = f.dt
	}
	if f.configPath == "" || cmd.Flags().Changed("out") {
		cfg.OutputDir = f.outDir
	}
	if f.noPlots {
		cfg.Plots = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return cfg, nil
}

func run(w io.Writer, cfg *config.Config, verbose bool) error {
	opt := cfg.RunOptions()
	if verbose {
		opt = opt.Logger(log.Default(), logPeriod)
	}
	r, err := vqs.RunFullSimulation(cfg.TMax, cfg.Dt, opt)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("%f %f", cfg.TMax, cfg.Dt))
	}
	s, err := r.Summary()
	if err != nil {
		return errors.Wrap(err, "")
	}

	var written []string
	if cfg.Plots {
		written, err = writePlots(cfg.OutputDir, r)
		if err != nil {
			return errors.Wrap(err, "")
		}
	}

	fmt.Fprintf(w, "Variational Quantum Simulation complete!\n")
	fmt.Fprintf(w, "Time grid: 0 -> %g with dt=%g\n", cfg.TMax, cfg.Dt)
	fmt.Fprintf(w, "Average fidelity vs exact: %.4f\n", s.Mean)
	fmt.Fprintf(w, "Worst-case fidelity: %.4f\n", s.Min)
	if len(r.Fidelities) > 1 {
		graph := asciigraph.Plot(r.Fidelities,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("fidelity vs time"),
		)
		fmt.Fprintln(w, graph)
	}
	if len(written) > 0 {
		fmt.Fprintf(w, "SVG plots saved in %s/:\n", cfg.OutputDir)
		for _, name := range written {
			fmt.Fprintf(w, " - %s\n", name)
		}
	}
	return nil
}

func writePlots(dir string, r vqs.Result) ([]string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "")
	}
	plots := []struct {
		name string
		svg  string
	}{
		{name: fnameFidelity, svg: plot.Fidelity(r.Times, r.Fidelities)},
		{name: fnameParams, svg: plot.ParameterEvolution(r.Times, r.ParamHistory)},
		{name: fnameBloch, svg: plot.BlochTrajectory(r.VariationalStates)},
	}
	names := make([]string, 0, len(plots))
	for _, p := range plots {
		if err := os.WriteFile(filepath.Join(dir, p.name), []byte(p.svg), 0644); err != nil {
			return nil, errors.Wrap(err, "")
		}
		names = append(names, p.name)
	}
	return names, nil
}

func main() {
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	return newCommand().Execute()
}
