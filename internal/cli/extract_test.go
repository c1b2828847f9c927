package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/swatchkit/swatch/internal/extract"
)

func testResult() extract.Result {
	return extract.Result{
		Colors: []extract.ColorResult{
			{Hex: "#ff0000", RGB: "rgb(255, 0, 0)", R: 255, Percentage: "60.0"},
			{Hex: "#0000ff", RGB: "rgb(0, 0, 255)", B: 255, Percentage: "40.0"},
		},
		Duration: 1500 * time.Microsecond,
	}
}

func TestFormatResultText(t *testing.T) {
	out, err := formatResult(testResult(), "text", false)
	if err != nil {
		t.Fatalf("formatResult() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "#ff0000") || !strings.Contains(lines[0], "60.0%") {
		t.Errorf("line 1 = %q, want hex and percentage", lines[0])
	}
	if !strings.Contains(lines[1], "rgb(0, 0, 255)") {
		t.Errorf("line 2 = %q, want rgb string", lines[1])
	}
}

func TestFormatResultHexAndRGB(t *testing.T) {
	hex, err := formatResult(testResult(), "hex", false)
	if err != nil {
		t.Fatalf("formatResult(hex) error = %v", err)
	}
	if hex != "#ff0000\n#0000ff\n" {
		t.Errorf("hex output = %q", hex)
	}

	rgb, err := formatResult(testResult(), "rgb", false)
	if err != nil {
		t.Fatalf("formatResult(rgb) error = %v", err)
	}
	if rgb != "rgb(255, 0, 0)\nrgb(0, 0, 255)\n" {
		t.Errorf("rgb output = %q", rgb)
	}
}

func TestFormatResultJSON(t *testing.T) {
	out, err := formatResult(testResult(), "json", false)
	if err != nil {
		t.Fatalf("formatResult() error = %v", err)
	}

	var doc resultJSON
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Count != 2 {
		t.Errorf("count = %d, want 2", doc.Count)
	}
	if doc.DurationMS != 1.5 {
		t.Errorf("duration_ms = %v, want 1.5", doc.DurationMS)
	}
	if len(doc.Colors) != 2 || doc.Colors[0].Hex != "#ff0000" {
		t.Errorf("colors = %+v", doc.Colors)
	}
}

func TestFormatResultJSONEmpty(t *testing.T) {
	out, err := formatResult(extract.Result{}, "json", false)
	if err != nil {
		t.Fatalf("formatResult() error = %v", err)
	}
	if !strings.Contains(out, `"colors": []`) {
		t.Errorf("empty result should encode colors as [], got %q", out)
	}
}

func TestFormatResultTable(t *testing.T) {
	out, err := formatResult(testResult(), "table", false)
	if err != nil {
		t.Fatalf("formatResult() error = %v", err)
	}
	for _, want := range []string{"RANK", "HEX", "RGB", "SHARE", "#ff0000", "60.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatResultUnsupported(t *testing.T) {
	if _, err := formatResult(testResult(), "yaml", false); err == nil {
		t.Error("formatResult() error = nil for unsupported format")
	}
}

func TestSeedModeFlag(t *testing.T) {
	var f seedModeFlag
	if err := f.Set("manual"); err != nil {
		t.Errorf("Set(manual) error = %v", err)
	}
	if f.String() != "manual" {
		t.Errorf("String() = %q, want %q", f.String(), "manual")
	}
	if err := f.Set("bogus"); err == nil {
		t.Error("Set(bogus) error = nil, want error")
	}
}

func TestColorPreviewContrast(t *testing.T) {
	dark := extract.ColorResult{Hex: "#000000"}
	light := extract.ColorResult{Hex: "#ffffff", R: 255, G: 255, B: 255}

	if got := colorPreview(dark, 9); !strings.Contains(got, ansiFgPrefix+"255;255;255") {
		t.Errorf("dark swatch should use white text, got %q", got)
	}
	if got := colorPreview(light, 9); !strings.Contains(got, ansiFgPrefix+"0;0;0") {
		t.Errorf("light swatch should use black text, got %q", got)
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"A", "LONGER"})
	table.AddRow([]string{"xxxx", "y"})
	table.AddRow([]string{"z"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], "xxxx") {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Columns align on the widest cell.
	if strings.Index(lines[0], "LONGER") != strings.Index(lines[1], "y") {
		t.Errorf("columns misaligned:\n%s", out)
	}
}
