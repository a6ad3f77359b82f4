package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segalloc/alloc"
	"github.com/joshuapare/segalloc/provider"
)

var (
	benchOps        int
	benchSeed       int64
	benchMin        int
	benchMax        int
	benchLive       int
	benchProvider   string
	benchLimit      int64
	benchUnit       int
	benchBlockUnits int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 100000, "Number of alloc/free operations")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&benchMin, "min", 1, "Minimum allocation size in bytes")
	cmd.Flags().IntVar(&benchMax, "max", 1024, "Maximum allocation size in bytes")
	cmd.Flags().IntVar(&benchLive, "live", 4096, "Maximum number of live allocations")
	cmd.Flags().StringVar(&benchProvider, "provider", "heap", "Base provider: heap or mmap")
	cmd.Flags().Int64Var(&benchLimit, "limit", 0, "Provider byte budget (0 = unlimited)")
	cmd.Flags().IntVar(&benchUnit, "unit", alloc.ConfigDefault.UnitSize, "Unit size in bytes")
	cmd.Flags().IntVar(&benchBlockUnits, "block-units", alloc.ConfigDefault.BlockUnits, "Block capacity in units")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a seeded random allocation workload",
		Long: `The bench command runs a reproducible random mix of allocations and frees
and reports allocator statistics. The live set is capped by --live; when it is
full the next operation is always a free.

Example:
  segallocctl bench
  segallocctl bench --ops 1000000 --max 65536 --provider mmap
  segallocctl bench --limit 1048576 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

// benchResult is the JSON form of a bench run.
type benchResult struct {
	Config    string      `json:"config"`
	Provider  string      `json:"provider"`
	Ops       int         `json:"ops"`
	Seed      int64       `json:"seed"`
	Failures  int         `json:"failures"`
	PeakLive  int         `json:"peakLive"`
	PeakBytes int64       `json:"peakBytes"`
	ElapsedNS int64       `json:"elapsedNs"`
	Stats     alloc.Stats `json:"stats"`
}

func newBaseProvider() (provider.Provider, error) {
	var p provider.Provider
	switch benchProvider {
	case "heap":
		p = provider.NewHeap()
	case "mmap":
		m, err := provider.NewMmap()
		if err != nil {
			return nil, err
		}
		p = m
	default:
		return nil, fmt.Errorf("unknown provider %q (want heap or mmap)", benchProvider)
	}
	if benchLimit > 0 {
		p = provider.NewLimited(p, benchLimit)
	}
	return p, nil
}

func runBench() error {
	if benchMin < 1 || benchMax < benchMin {
		return fmt.Errorf("invalid size range [%d, %d]", benchMin, benchMax)
	}
	if benchLive < 1 {
		return fmt.Errorf("--live must be positive")
	}

	p, err := newBaseProvider()
	if err != nil {
		return err
	}
	cfg := alloc.Config{
		Name:       "bench",
		UnitSize:   benchUnit,
		BlockUnits: benchBlockUnits,
		Logger:     newLogger(),
	}
	a, err := alloc.New(p, &cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	printVerbose("Running %d ops, sizes %d..%d, live <= %d, provider %s\n",
		benchOps, benchMin, benchMax, benchLive, benchProvider)

	rng := rand.New(rand.NewSource(benchSeed))
	live := make([]alloc.Ref, 0, benchLive)
	res := benchResult{
		Config:   cfg.Name,
		Provider: benchProvider,
		Ops:      benchOps,
		Seed:     benchSeed,
	}

	start := time.Now()
	for range benchOps {
		if len(live) == benchLive || (len(live) > 0 && rng.Intn(2) == 0) {
			j := rng.Intn(len(live))
			if err := a.Free(live[j]); err != nil {
				return fmt.Errorf("free %s: %w", live[j], err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}

		size := benchMin + rng.Intn(benchMax-benchMin+1)
		ref, _, err := a.Alloc(size)
		if errors.Is(err, alloc.ErrOutOfMemory) {
			// Budget exhaustion is part of the workload when --limit is set.
			res.Failures++
			continue
		}
		if err != nil {
			return fmt.Errorf("alloc %d: %w", size, err)
		}
		live = append(live, ref)
		res.PeakLive = max(res.PeakLive, len(live))
		res.PeakBytes = max(res.PeakBytes, a.Stats().ProviderBytes)
	}
	res.ElapsedNS = time.Since(start).Nanoseconds()

	if err := a.Validate(); err != nil {
		return err
	}
	res.Stats = a.Stats()

	if jsonOut {
		return printJSON(res)
	}

	s := res.Stats
	elapsed := time.Duration(res.ElapsedNS)
	printInfo("Config:           %s (%d-byte units, %d units per block)\n", cfg.Name, cfg.UnitSize, cfg.BlockUnits)
	printInfo("Operations:       %d in %v (%d ns/op)\n", res.Ops, elapsed, res.ElapsedNS/int64(max(res.Ops, 1)))
	printInfo("Allocs / frees:   %d / %d\n", s.AllocCalls, s.FreeCalls)
	printInfo("Direct:           %d allocs, %d frees\n", s.DirectAllocs, s.DirectFrees)
	printInfo("Blocks:           %d created, %d destroyed, %d live\n", s.BlocksCreated, s.BlocksDestroyed, s.LiveBlocks)
	printInfo("Splits:           %d\n", s.SplitCount)
	printInfo("Coalesces:        %d forward, %d backward\n", s.CoalesceForward, s.CoalesceBackward)
	printInfo("Peak live:        %d allocations, %d provider bytes\n", res.PeakLive, res.PeakBytes)
	printInfo("Live now:         %d chunks, %d bytes in use, %d provider bytes\n", s.LiveChunks, s.BytesInUse, s.ProviderBytes)
	printInfo("Free chunks:      %d (%d units)\n", s.FreeChunks, s.FreeUnits)
	if res.Failures > 0 || s.OutOfMemory > 0 {
		printInfo("Out of memory:    %d\n", res.Failures)
	}
	return nil
}
