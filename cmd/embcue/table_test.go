package main

import (
	"strings"
	"testing"
	"time"
)

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		d          time.Duration
		dashIfZero bool
		want       string
	}{
		{0, false, "0:00.000"},
		{0, true, "-"},
		{2*time.Second + 200*time.Millisecond, false, "0:02.200"},
		{3*time.Minute + 30*time.Second, true, "3:30.000"},
		{61 * time.Minute, false, "61:00.000"},
	}

	for _, tt := range tests {
		if got := formatOffset(tt.d, tt.dashIfZero); got != tt.want {
			t.Errorf("formatOffset(%v, %v) = %q, want %q", tt.d, tt.dashIfZero, got, tt.want)
		}
	}
}

func TestRenderTablePiped(t *testing.T) {
	// Test binaries run with stdout redirected, so the plain branch is
	// the one exercised here.
	out := renderTable(
		[]string{"#", "Title"},
		[][]string{{"01", "Opening"}, {"02", "Closing"}},
		[]columnAlignment{alignRight, alignLeft},
	)

	want := "#\tTitle\n01\tOpening\n02\tClosing\n"
	if out != want {
		t.Errorf("renderTable = %q, want %q", out, want)
	}
	if strings.Contains(out, "│") {
		t.Error("piped output contains table borders")
	}
}
