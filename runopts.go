package microunit

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/microunit/microunit/framework/engine"
)

// parseRunOptions maps the command line onto engine options. It returns a
// cleanup function that closes the log file, if one was opened, and false
// when the command line does not parse.
func parseRunOptions(args []string, out *io.Writer) (engine.Options, func(), bool) {
	var opts engine.Options
	var logFile string
	printTime := true
	cleanup := func() {}

	fs := flag.NewFlagSet("microunit", flag.ContinueOnError)
	fs.BoolVar(&opts.ListOnly, "test_list_tests", false, "list registered tests instead of running them")
	fs.StringVar(&opts.Filter, "test_filter", "", "run only tests matching the pattern(s)")
	fs.BoolVar(&opts.AlsoRunDisabled, "test_also_run_disabled_tests", false, "run tests with the DISABLED_ name prefix")
	fs.IntVar(&opts.Repeat, "test_repeat", 1, "repeat the whole run this many times")
	fs.BoolVar(&opts.Shuffle, "test_shuffle", false, "randomize the test order")
	fs.Int64Var(&opts.Seed, "test_random_seed", 0, "seed for --test_shuffle (0 uses the clock)")
	fs.BoolVar(&printTime, "test_print_time", true, "print elapsed time per test")
	fs.BoolVar(&opts.BreakOnFailure, "test_break_on_failure", false, "trap into the debugger on assertion failure")
	fs.StringVar(&logFile, "test_logfile", "", "write the report to this file instead of stdout")

	progArgs := args
	if len(progArgs) > 0 {
		progArgs = progArgs[1:]
	}
	if err := fs.Parse(progArgs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return opts, cleanup, false
	}
	opts.NoPrintTime = !printTime
	opts.Args = fs.Args()

	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
			return opts, cleanup, false
		}
		*out = f
		cleanup = func() { _ = f.Close() }
	}
	return opts, cleanup, true
}
