package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/jchodera/openmmtools/internal/config"
	"github.com/jchodera/openmmtools/internal/integrator"
	"github.com/jchodera/openmmtools/internal/report"
	"github.com/jchodera/openmmtools/internal/system"
	"github.com/jchodera/openmmtools/internal/tui"
	"github.com/jchodera/openmmtools/internal/verify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	live        bool
	temperature float64
	seed        int64
	steps       int
	timestepFs  float64
	maxEnergy   float64
	moves       int
	systems     []string
	integrators []string
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "mmcheck",
		Short: "verification harness for molecular dynamics integrators",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mmcheck", "report directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "temperature (K)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().StringSliceVar(&systems, "system", nil, "restrict to named systems")
	rootCmd.PersistentFlags().StringSliceVar(&integrators, "integrator", nil, "restrict to named integrators")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the full verification suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return runChecks(cfg, verify.Suite(cfg))
		},
	}
	runCmd.Flags().BoolVar(&live, "live", false, "live status view")

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "run the stability checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return runChecks(cfg, verify.StabilityChecks(cfg))
		},
	}
	stabilityCmd.Flags().IntVar(&steps, "steps", config.DefaultStabilitySteps, "integration steps per check")
	stabilityCmd.Flags().Float64Var(&timestepFs, "timestep-fs", config.DefaultTimestepFs, "timestep (fs)")
	stabilityCmd.Flags().Float64Var(&maxEnergy, "max-energy", 0, "fail above this potential (kJ/mol, 0 = finiteness only)")

	reversibilityCmd := &cobra.Command{
		Use:   "reversibility",
		Short: "run the bitwise reversibility checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return runChecks(cfg, verify.ReversibilityChecks(cfg))
		},
	}
	reversibilityCmd.Flags().IntVar(&steps, "steps", 1, "forward steps before velocity negation")
	reversibilityCmd.Flags().Float64Var(&timestepFs, "timestep-fs", config.DefaultTimestepFs, "timestep (fs)")

	hmcCmd := &cobra.Command{
		Use:   "hmc",
		Short: "run the Monte Carlo acceptance checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return runChecks(cfg, verify.AcceptanceChecks(cfg))
		},
	}
	hmcCmd.Flags().IntVar(&moves, "moves", config.DefaultHMCMoves, "trial moves")
	hmcCmd.Flags().Float64Var(&timestepFs, "timestep-fs", config.DefaultHMCTimestepFs, "timestep (fs)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list systems, integrators and stored runs",
		RunE:  listAll,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [check_label]",
		Short: "plot the potential trace of a stability check",
		Args:  cobra.ExactArgs(2),
		RunE:  plotTrace,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, stabilityCmd, reversibilityCmd, hmcCmd, listCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves the effective config: preset, then config file, then
// any explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	if cmd.Flags().Changed("temperature") || cfg.Temperature == 0 {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("steps") {
		cfg.Stability.Steps = steps
		cfg.Reversibility.Steps = steps
	}
	if cmd.Flags().Changed("timestep-fs") {
		cfg.Stability.TimestepFs = timestepFs
		cfg.Reversibility.TimestepFs = timestepFs
		cfg.HMC.TimestepFs = timestepFs
	}
	if cmd.Flags().Changed("max-energy") {
		cfg.Stability.MaxEnergy = maxEnergy
	}
	if cmd.Flags().Changed("moves") {
		cfg.HMC.Moves = moves
	}
	if len(systems) > 0 {
		cfg.Systems = systems
	}
	if len(integrators) > 0 {
		cfg.Integrators = integrators
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runChecks(cfg *config.Config, checks []verify.Check) error {
	if len(checks) == 0 {
		return fmt.Errorf("no checks match the given filters")
	}

	var results []tui.Result
	if live {
		var err error
		results, err = tui.Run(checks)
		if err != nil {
			return err
		}
	} else {
		for _, check := range checks {
			start := time.Now()
			out, err := check.Run()
			res := tui.Result{Label: check.Label, Err: err, Outcome: out, Duration: time.Since(start)}
			results = append(results, res)
			printResult(res)
		}
	}

	st := report.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	stored := make([]report.CheckResult, 0, len(results))
	failed := 0
	for _, r := range results {
		cr := report.CheckResult{
			Label:    r.Label,
			Passed:   r.Err == nil,
			Duration: r.Duration,
		}
		if r.Err != nil {
			cr.Detail = r.Err.Error()
			failed++
		}
		if r.Outcome != nil {
			cr.Trace = r.Outcome.PotentialTrace
		}
		stored = append(stored, cr)
	}

	runID, err := st.Save(cfg.Temperature, cfg.Seed, stored)
	if err != nil {
		return err
	}

	fmt.Printf("\nrun id: %s\n", runID)
	fmt.Printf("%d checks, %s, %s\n",
		len(results),
		tui.PassStyle.Render(fmt.Sprintf("%d passed", len(results)-failed)),
		tui.FailStyle.Render(fmt.Sprintf("%d failed", failed)))

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

func printResult(r tui.Result) {
	if r.Err == nil {
		fmt.Printf("%s %s %s\n",
			tui.PassStyle.Render("✓"),
			r.Label,
			tui.Subtle.Render(r.Duration.Round(time.Millisecond).String()))
		return
	}
	fmt.Printf("%s %s\n", tui.FailStyle.Render("✗"), r.Label)
	logrus.WithField("check", r.Label).Error(r.Err)
}

func listAll(cmd *cobra.Command, args []string) error {
	fmt.Println("systems:")
	for _, name := range system.Names() {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println("\nintegrators:")
	for _, name := range integrator.Names() {
		fmt.Printf("  %s\n", name)
	}

	st := report.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println("\nruns:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTIME\tTEMP\tPASSED\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(w, "  %s\t%s\t%.0fK\t%d\t%d\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Temperature, r.Passed, r.Failed)
	}
	return w.Flush()
}

func plotTrace(cmd *cobra.Command, args []string) error {
	st := report.New(dataDir)
	trace, err := st.LoadTrace(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to load trace: %w", err)
	}
	if len(trace) == 0 {
		return fmt.Errorf("trace %s in run %s is empty", args[1], args[0])
	}

	fmt.Println(asciigraph.Plot(trace,
		asciigraph.Height(15),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s: potential energy (kJ/mol) per step", args[1]))))
	return nil
}
