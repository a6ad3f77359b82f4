package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segalloc/alloc"
	"github.com/joshuapare/segalloc/provider"
)

func init() {
	rootCmd.AddCommand(newScenarioCmd())
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run the three-allocation coalescing walkthrough",
		Long: `The scenario command allocates 16, 32 and 48 bytes on an empty allocator,
then frees the middle, first and last allocations, printing the block map after
every step. The final free coalesces the whole block and returns it to the
provider.

Example:
  segallocctl scenario
  segallocctl scenario --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario()
		},
	}
	return cmd
}

// scenarioStep is one recorded step of the walkthrough.
type scenarioStep struct {
	Action string          `json:"action"`
	Ref    string          `json:"ref"`
	Map    json.RawMessage `json:"map"`
}

func runScenario() error {
	heap := provider.NewHeap()
	cfg := alloc.ConfigDefault
	cfg.Logger = newLogger()
	a, err := alloc.New(heap, &cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var steps []scenarioStep
	record := func(action string, ref alloc.Ref) error {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("after %s: %w", action, err)
		}
		m, err := snapshot(a)
		if err != nil {
			return err
		}
		steps = append(steps, scenarioStep{Action: action, Ref: ref.String(), Map: m})
		return nil
	}

	refs := make([]alloc.Ref, 0, 3)
	for _, size := range []int{16, 32, 48} {
		ref, _, err := a.Alloc(size)
		if err != nil {
			return fmt.Errorf("alloc %d: %w", size, err)
		}
		refs = append(refs, ref)
		if err := record(fmt.Sprintf("alloc %d", size), ref); err != nil {
			return err
		}
	}

	for _, i := range []int{1, 0, 2} {
		if err := a.Free(refs[i]); err != nil {
			return fmt.Errorf("free %s: %w", refs[i], err)
		}
		if err := record("free "+refs[i].String(), refs[i]); err != nil {
			return err
		}
	}

	outstanding, regions := heap.Outstanding()

	if jsonOut {
		return printJSON(map[string]interface{}{
			"steps":           steps,
			"providerBytes":   outstanding,
			"providerRegions": regions,
			"blocksCreated":   a.Stats().BlocksCreated,
			"blocksDestroyed": a.Stats().BlocksDestroyed,
		})
	}

	for _, s := range steps {
		layout, err := renderLayout(s.Map)
		if err != nil {
			return err
		}
		printInfo("%s -> %s\n%s", s.Action, s.Ref, layout)
	}
	st := a.Stats()
	printInfo("\nblocks created %d, destroyed %d; provider holds %d bytes in %d regions\n",
		st.BlocksCreated, st.BlocksDestroyed, outstanding, regions)
	return nil
}
