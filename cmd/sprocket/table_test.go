package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsRaggedRows(t *testing.T) {
	out := renderTable([]string{"Check", "Status", "Detail"}, [][]string{
		{"FFmpeg", "ok"},
	})
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "Detail")
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) < 4 {
		t.Fatalf("expected framed header and row, got:\n%s", out)
	}
}

func TestRenderTableWithoutHeaders(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}); got != "" {
		t.Fatalf("expected empty render without headers, got %q", got)
	}
}
