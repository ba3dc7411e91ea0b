// Command microunit-example is a demo test binary: a handful of cases
// registered against the default engine, run through a small CLI that can
// merge a YAML run-configuration file with command-line flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/microunit/microunit"
	"github.com/microunit/microunit/config"
)

type cliParams struct {
	configFile     string
	list           bool
	filter         string
	shuffle        bool
	seed           int64
	repeat         int
	runDisabled    bool
	breakOnFailure bool
	noTimes        bool
	logFile        string
}

func main() {
	var p cliParams
	cmd := &cobra.Command{
		Use:           "microunit-example",
		Short:         "demo test binary for the microunit engine",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := p.runArgs(cmd)
			if err != nil {
				return err
			}
			os.Exit(microunit.RunTests(runArgs, nil, microunit.Hooks{}))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&p.configFile, "config", "c", "", "YAML run-configuration file")
	fl.BoolVar(&p.list, "list", false, "list registered tests instead of running them")
	fl.StringVar(&p.filter, "filter", "", "run only tests matching the pattern(s)")
	fl.BoolVar(&p.shuffle, "shuffle", false, "randomize the test order")
	fl.Int64Var(&p.seed, "seed", 0, "seed for --shuffle (0 uses the clock)")
	fl.IntVar(&p.repeat, "repeat", 1, "repeat the whole run this many times")
	fl.BoolVar(&p.runDisabled, "run-disabled", false, "run tests with the DISABLED_ name prefix")
	fl.BoolVar(&p.breakOnFailure, "break-on-failure", false, "trap into the debugger on assertion failure")
	fl.BoolVar(&p.noTimes, "no-times", false, "suppress elapsed times in the report")
	fl.StringVar(&p.logFile, "logfile", "", "write the report to this file instead of stdout")

	if err := cmd.Execute(); err != nil {
		os.Exit(2)
	}
}

// runArgs merges the config file with explicit flags (flags win) and
// renders the result as a microunit command line.
func (p *cliParams) runArgs(cmd *cobra.Command) ([]string, error) {
	if p.configFile != "" {
		cfg, err := config.Load(p.configFile)
		if err != nil {
			return nil, err
		}
		fl := cmd.Flags()
		if !fl.Changed("filter") {
			p.filter = cfg.Filter
		}
		if !fl.Changed("shuffle") {
			p.shuffle = cfg.Shuffle
		}
		if !fl.Changed("seed") {
			p.seed = cfg.Seed
		}
		if !fl.Changed("repeat") && cfg.Repeat > 0 {
			p.repeat = cfg.Repeat
		}
		if !fl.Changed("run-disabled") {
			p.runDisabled = cfg.AlsoRunDisabled
		}
		if !fl.Changed("break-on-failure") {
			p.breakOnFailure = cfg.BreakOnFailure
		}
		if !fl.Changed("no-times") && cfg.PrintTime != nil {
			p.noTimes = !*cfg.PrintTime
		}
		if !fl.Changed("logfile") {
			p.logFile = cfg.LogFile
		}
	}

	args := []string{"microunit-example"}
	if p.list {
		args = append(args, "--test_list_tests")
	}
	if p.filter != "" {
		args = append(args, "--test_filter="+p.filter)
	}
	if p.runDisabled {
		args = append(args, "--test_also_run_disabled_tests")
	}
	if p.repeat > 1 {
		args = append(args, fmt.Sprintf("--test_repeat=%d", p.repeat))
	}
	if p.shuffle {
		args = append(args, "--test_shuffle")
	}
	if p.seed != 0 {
		args = append(args, fmt.Sprintf("--test_random_seed=%d", p.seed))
	}
	if p.noTimes {
		args = append(args, "--test_print_time=0")
	}
	if p.breakOnFailure {
		args = append(args, "--test_break_on_failure")
	}
	if p.logFile != "" {
		args = append(args, "--test_logfile="+p.logFile)
	}
	return args, nil
}
