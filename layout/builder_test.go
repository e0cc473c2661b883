package layout

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/txt2img/highlight"
)

func buildOpts() BuildOptions {
	return BuildOptions{
		Measurer:   stubMeasurer{},
		Width:      DefaultWidth,
		Margin:     DefaultMargin,
		Foreground: Black,
		Background: White,
	}
}

func TestBuildSingleLine(t *testing.T) {
	res, err := Build("hello world", buildOpts())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(res.Lines))
	}
	// 宽度 = "hello world" 的粗体宽度 + margin；高度 = 一行粗体高度 + margin。
	if res.Width != 11*7+6 || res.Height != 13+6 {
		t.Fatalf("unexpected canvas %gx%g", res.Width, res.Height)
	}
	want := []Run{{Text: "hello world", X: 3, Y: 3, Style: Regular, Color: Black}}
	if diff := cmp.Diff(want, res.Lines[0].Runs); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMultipleLinesAdvanceOffset(t *testing.T) {
	opts := buildOpts()
	opts.Width = 10
	res, err := Build("the quick\nbrown fox jumps", opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(res.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(res.Lines))
	}
	for i, ln := range res.Lines {
		if want := 3 + float64(i)*13; ln.Y != want {
			t.Errorf("line %d Y = %g, want %g", i, ln.Y, want)
		}
		if len(ln.Runs) != 1 || ln.Runs[0].Text != ln.Content {
			t.Errorf("line %d should be drawn as one run, got %+v", i, ln.Runs)
		}
	}
	if res.Width != 9*7+6 || res.Height != 3*13+6 {
		t.Fatalf("unexpected canvas %gx%g", res.Width, res.Height)
	}
}

func TestBuildHighlightRuns(t *testing.T) {
	opts := buildOpts()
	opts.Highlights = highlight.Parse("red-#ff0000 red-#00ff00", nil)
	res, err := Build("red apple red banana", opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	red := Color{R: 255}
	green := Color{G: 255}
	want := []Run{
		{Text: "red", X: 3, Y: 3, Style: Bold, Color: red},
		{Text: "apple", X: 3 + 4*7, Y: 3, Style: Regular, Color: Black},
		{Text: "red", X: 3 + 4*7 + 6*6, Y: 3, Style: Bold, Color: green},
		{Text: "banana", X: 3 + 4*7 + 6*6 + 4*7, Y: 3, Style: Regular, Color: Black},
	}
	if diff := cmp.Diff(want, res.Lines[0].Runs); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#ff0000", "#00ff00"}, res.UsedColors); diff != "" {
		t.Fatalf("used colors mismatch (-want +got):\n%s", diff)
	}
}

// 画布尺寸只取决于粗体度量，与是否配置高亮无关。
func TestBuildCanvasSizeIgnoresHighlights(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 12)
	plain, err := Build(text, buildOpts())
	if err != nil {
		t.Fatal(err)
	}
	opts := buildOpts()
	opts.Highlights = highlight.Parse("ipsum-#336699", nil)
	highlighted, err := Build(text, opts)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Width != highlighted.Width || plain.Height != highlighted.Height {
		t.Fatalf("canvas differs: %gx%g vs %gx%g", plain.Width, plain.Height, highlighted.Width, highlighted.Height)
	}
	for _, ln := range highlighted.Lines {
		last := ln.Runs[len(ln.Runs)-1]
		if end := last.X + float64(len(last.Text))*7; end > highlighted.Width {
			t.Fatalf("run %q overflows canvas: %g > %g", last.Text, end, highlighted.Width)
		}
	}
}

func TestBuildInvalidHighlightColorFallsBack(t *testing.T) {
	var buf bytes.Buffer
	opts := buildOpts()
	opts.Foreground = Color{R: 10, G: 20, B: 30}
	opts.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	opts.Highlights = highlight.Parse("odd-#zzzzzz", nil)
	res, err := Build("an odd odd word", opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range res.Lines[0].Runs {
		if r.Color != opts.Foreground {
			t.Fatalf("run %q should use foreground, got %+v", r.Text, r.Color)
		}
	}
	if res.Lines[0].Runs[1].Style != Bold {
		t.Fatal("highlighted word should still be bold")
	}
	if n := strings.Count(buf.String(), "高亮颜色无效"); n != 1 {
		t.Fatalf("expected one warning, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), opts.Foreground.Hex()) {
		t.Fatalf("warning should name the fallback color %s:\n%s", opts.Foreground.Hex(), buf.String())
	}
}

func TestBuildLegacyWhitespace(t *testing.T) {
	opts := buildOpts()
	opts.LegacyWhitespace = true
	res, err := Build("a   b", opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Lines[0].Content != "a  b" {
		t.Fatalf("legacy normaliser should keep part of the run, got %q", res.Lines[0].Content)
	}
}

func TestBuildEmptyText(t *testing.T) {
	res, err := Build(" \n ", buildOpts())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 0 || res.Width != 6 || res.Height != 6 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build("x", BuildOptions{}); err == nil {
		t.Fatal("expected error without measurer")
	}
	opts := buildOpts()
	opts.Margin = -1
	if _, err := Build("x", opts); err == nil {
		t.Fatal("expected error for negative margin")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	opts := buildOpts()
	opts.Width = 12
	opts.Highlights = highlight.Parse("red-#ff0000 red-#00ff00 apple-#00ff00", nil)
	text := "red apple and a red cherry, red wine and red apple pie"
	a, err := Build(text, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(text, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	opts := buildOpts()
	opts.Highlights = highlight.Parse("world-#0000ff", nil)
	res, err := Build("hello world", opts)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "debug", "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("WriteDebugJSON error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Lines []struct {
			Runs []struct {
				Text  string `json:"text"`
				Style string `json:"style"`
			} `json:"runs"`
		} `json:"lines"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	runs := decoded.Lines[0].Runs
	if runs[0].Style != "regular" || runs[1].Text != "world" || runs[1].Style != "bold" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}
