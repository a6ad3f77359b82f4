package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBenchCommand(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "default heap",
			setup:       func() { benchOps = 5000 },
			wantContain: []string{"Operations:", "Blocks:", "Coalesces:"},
		},
		{
			name: "direct path",
			setup: func() {
				benchOps = 500
				benchMax = 100000
			},
			wantContain: []string{"Direct:"},
		},
		{
			name: "small blocks",
			setup: func() {
				benchOps = 2000
				benchUnit = 32
				benchBlockUnits = 128
			},
			wantContain: []string{"32-byte units, 128 units per block"},
		},
		{
			name: "limited",
			setup: func() {
				benchOps = 2000
				benchLimit = 16 << 10 // smaller than one block
			},
			wantContain: []string{"Out of memory:"},
		},
		{
			name:    "bad provider",
			setup:   func() { benchProvider = "disk" },
			wantErr: true,
		},
		{
			name:    "bad range",
			setup:   func() { benchMin, benchMax = 10, 5 },
			wantErr: true,
		},
		{
			name:    "bad config",
			setup:   func() { benchUnit = 24 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			defer resetFlags()
			tt.setup()

			output, err := captureOutput(t, runBench)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runBench() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q\nOutput:\n%s", want, output)
				}
			}
		})
	}
}

func TestBenchCommand_JSONIsDeterministic(t *testing.T) {
	run := func() benchResult {
		resetFlags()
		defer resetFlags()
		jsonOut = true
		benchOps = 3000
		benchSeed = 99

		output, err := captureOutput(t, runBench)
		if err != nil {
			t.Fatalf("runBench() error = %v", err)
		}
		assertJSON(t, output)

		var res benchResult
		if err := json.Unmarshal([]byte(output), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return res
	}

	a, b := run(), run()
	a.ElapsedNS, b.ElapsedNS = 0, 0
	if a != b {
		t.Errorf("same seed, different results:\n%+v\n%+v", a, b)
	}
	if a.Stats.AllocCalls == 0 || a.Stats.FreeCalls == 0 {
		t.Errorf("workload did nothing: %+v", a.Stats)
	}
}
