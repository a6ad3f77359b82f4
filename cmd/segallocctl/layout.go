package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshuapare/segalloc/alloc"
)

// allocMap mirrors the JSON written by Allocator.WriteMap.
type allocMap struct {
	Config struct {
		Name       string `json:"name"`
		UnitSize   int    `json:"unitSize"`
		BlockUnits int    `json:"blockUnits"`
	} `json:"config"`
	Blocks []struct {
		ID     int `json:"id"`
		Bytes  int `json:"bytes"`
		Chunks []struct {
			Offset int  `json:"offset"`
			Units  int  `json:"units"`
			Used   bool `json:"used"`
		} `json:"chunks"`
	} `json:"blocks"`
	Buckets []struct {
		Units  int `json:"units"`
		Chunks int `json:"chunks"`
	} `json:"buckets"`
	Direct []struct {
		ID    int `json:"id"`
		Bytes int `json:"bytes"`
	} `json:"direct"`
}

// snapshot captures the allocator map as raw JSON.
func snapshot(a *alloc.Allocator) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := a.WriteMap(&buf); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// renderLayout formats a map as one line per block:
//
//	block 1: [1U][2F][3U][2042F]
func renderLayout(raw json.RawMessage) (string, error) {
	var m allocMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("failed to decode map: %w", err)
	}

	var sb strings.Builder
	if len(m.Blocks) == 0 {
		sb.WriteString("  (no blocks)\n")
	}
	for _, b := range m.Blocks {
		fmt.Fprintf(&sb, "  block %d: ", b.ID)
		for _, c := range b.Chunks {
			state := "F"
			if c.Used {
				state = "U"
			}
			fmt.Fprintf(&sb, "[%d%s]", c.Units, state)
		}
		sb.WriteString("\n")
	}
	for _, d := range m.Direct {
		fmt.Fprintf(&sb, "  direct %d: %d bytes\n", d.ID, d.Bytes)
	}
	if len(m.Buckets) > 0 {
		sb.WriteString("  buckets:")
		for _, bk := range m.Buckets {
			fmt.Fprintf(&sb, " %d×%d", bk.Units, bk.Chunks)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
