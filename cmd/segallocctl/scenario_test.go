package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestScenarioCommand(t *testing.T) {
	resetFlags()
	defer resetFlags()

	output, err := captureOutput(t, runScenario)
	if err != nil {
		t.Fatalf("runScenario() error = %v", err)
	}

	wantInOrder := []string{
		"alloc 16 -> 1:0x0",
		"[1U][2047F]",
		"[1U][2U][2045F]",
		"[1U][2U][3U][2042F]",
		"[1U][2F][3U][2042F]",
		"[3F][3U][2042F]",
		"(no blocks)",
		"blocks created 1, destroyed 1; provider holds 0 bytes in 0 regions",
	}
	rest := output
	for _, want := range wantInOrder {
		i := strings.Index(rest, want)
		if i < 0 {
			t.Fatalf("output missing %q (in order)\nOutput:\n%s", want, output)
		}
		rest = rest[i+len(want):]
	}
}

func TestScenarioCommand_JSON(t *testing.T) {
	resetFlags()
	defer resetFlags()
	jsonOut = true

	output, err := captureOutput(t, runScenario)
	if err != nil {
		t.Fatalf("runScenario() error = %v", err)
	}
	assertJSON(t, output)

	var result struct {
		Steps []struct {
			Action string   `json:"action"`
			Map    allocMap `json:"map"`
		} `json:"steps"`
		ProviderBytes   int64 `json:"providerBytes"`
		BlocksDestroyed int   `json:"blocksDestroyed"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Steps) != 6 {
		t.Fatalf("got %d steps, want 6", len(result.Steps))
	}
	third := result.Steps[2].Map
	if len(third.Blocks) != 1 || len(third.Blocks[0].Chunks) != 4 {
		t.Fatalf("after third alloc: %+v", third.Blocks)
	}
	if got := len(result.Steps[5].Map.Blocks); got != 0 {
		t.Errorf("blocks after last free = %d, want 0", got)
	}
	if result.ProviderBytes != 0 || result.BlocksDestroyed != 1 {
		t.Errorf("providerBytes = %d, blocksDestroyed = %d", result.ProviderBytes, result.BlocksDestroyed)
	}
}
