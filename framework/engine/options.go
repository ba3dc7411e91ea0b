package engine

// Options selects what a run executes and how it reports. The engine itself
// never parses command lines; the invocation surface maps flags or
// configuration files onto this struct.
type Options struct {
	// Args is passed through to the BeforeAllTest hook.
	Args []string

	// ListOnly prints the catalog instead of running it.
	ListOnly bool

	// Filter selects cases by full name. Patterns may use '?' and '*'
	// and are joined with ':'; a pattern starting with '-' excludes the
	// names it matches. Empty means run everything.
	Filter string

	// AlsoRunDisabled runs cases carrying the DISABLED_ name prefix
	// instead of only counting them.
	AlsoRunDisabled bool

	// Repeat runs the whole selection this many times. Values below 1
	// mean a single iteration.
	Repeat int

	// Shuffle permutes the run order with a key stream seeded by Seed.
	Shuffle bool

	// Seed seeds the shuffle key stream. Zero derives a seed from the
	// clock, so runs are only reproducible with an explicit seed.
	Seed int64

	// NoPrintTime suppresses per-case and total elapsed times.
	NoPrintTime bool

	// BreakOnFailure traps into the debugger on the first failed
	// assertion of a case.
	BreakOnFailure bool
}

// Hooks are optional callbacks bracketing the stages of a run. Any slot may
// be nil. Hooks run on the goroutine driving the engine and must not call
// back into assertions.
type Hooks struct {
	BeforeAllTest func(args []string)
	AfterAllTest  func()

	BeforeSetup func(fixture string)
	AfterSetup  func(fixture string, err error)

	BeforeTeardown func(fixture string)
	AfterTeardown  func(fixture string, err error)

	BeforeTest func(fixture, name string)
	AfterTest  func(fixture, name string, failed bool)
}
