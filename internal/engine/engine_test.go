package engine

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/img2roi/internal/csvio"
	"github.com/ivlev/img2roi/internal/report"
	"github.com/ivlev/img2roi/internal/roi"
	"github.com/ivlev/img2roi/internal/source"
)

// writeGray writes a PNG whose pixel in row y has gray level y, so every cell
// of that row has intensity 3*y.
func writeGray(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(y)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readProfile(t *testing.T, path string) roi.Profile {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	p, err := csvio.ReadProfile(f)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return p
}

func TestProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writeGray(t, path, 4, 8)

	res, err := NewReader(&roi.RowCount{N: 4}).Process(path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Band != (roi.Band{Top: 2, Bottom: 5}) {
		t.Errorf("unexpected band %v", res.Band)
	}
	// rows 2..5 -> 3*(2+3+4+5)
	for j, v := range res.Profile {
		if v != 42 {
			t.Errorf("column %d: got %d, want 42", j, v)
		}
	}
}

func TestProcess_DefaultPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writeGray(t, path, 2, 10)

	res, err := NewReader(nil).Process(path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Band != (roi.Band{Top: 4, Bottom: 6}) {
		t.Errorf("expected the 0.4..0.6 band, got %v", res.Band)
	}
	if res.Profile[0] != 3*(4+5+6) {
		t.Errorf("unexpected profile %v", res.Profile)
	}
}

func TestProcess_Errors(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.png")
	writeGray(t, small, 3, 3)

	if _, err := NewReader(nil).Process(filepath.Join(dir, "missing.jpg")); !errors.Is(err, source.ErrDecode) {
		t.Errorf("missing file: expected ErrDecode, got %v", err)
	}
	if _, err := NewReader(&roi.RowCount{N: 4}).Process(small); !errors.Is(err, roi.ErrState) {
		t.Errorf("rows > height: expected ErrState, got %v", err)
	}
	if _, err := NewReader(nil).Reduce("none", nil); !errors.Is(err, roi.ErrState) {
		t.Errorf("nil grid: expected ErrState, got %v", err)
	}
}

func TestRun_ContinuesAfterMissingFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	missing := filepath.Join(dir, "second.jpg")
	third := filepath.Join(dir, "third.png")
	writeGray(t, first, 5, 6)
	writeGray(t, third, 7, 6)

	sink := &report.Collector{}
	runner := NewRunner(NewReader(&roi.RowCount{N: 2}), sink)
	runner.Out = &bytes.Buffer{}

	sum := runner.Run([]string{first, missing, third})

	if sum.Processed != 2 || sum.Failed != 1 {
		t.Fatalf("expected 2 ok / 1 failed, got %+v", sum)
	}
	entries := sink.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one reported error, got %v", entries)
	}
	if entries[0].Title != TitleRead || !strings.Contains(entries[0].Message, "second.jpg") {
		t.Errorf("unexpected report %+v", entries[0])
	}

	if p := readProfile(t, filepath.Join(dir, "first.csv")); len(p) != 5 {
		t.Errorf("first.csv: expected 5 values, got %d", len(p))
	}
	if p := readProfile(t, filepath.Join(dir, "third.csv")); len(p) != 7 {
		t.Errorf("third.csv: expected 7 values, got %d", len(p))
	}
	if _, err := os.Stat(filepath.Join(dir, "second.csv")); !os.IsNotExist(err) {
		t.Error("no output expected for the missing file")
	}
}

func TestRun_ReportsStateAndWriteErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.png")
	writeGray(t, short, 2, 2)

	sink := &report.Collector{}
	runner := NewRunner(NewReader(&roi.RowCount{N: 3}), sink)
	runner.Out = nil
	sum := runner.Run([]string{short})
	if sum.Failed != 1 || sink.Entries()[0].Title != TitleReader {
		t.Errorf("expected a reader error, got %+v %v", sum, sink.Entries())
	}

	// A regular file where the output directory should be makes every write fail.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	sink = &report.Collector{}
	runner = NewRunner(NewReader(nil), sink)
	runner.Out = nil
	runner.OutputDir = blocker
	sum = runner.Run([]string{short})
	if sum.Failed != 1 {
		t.Fatalf("expected write failure, got %+v", sum)
	}
	last := sink.Entries()[len(sink.Entries())-1]
	if last.Title != TitleWrite {
		t.Errorf("expected %q, got %+v", TitleWrite, last)
	}
}

func TestRun_WriteArrayAndStats(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "shot.png")
	writeGray(t, img, 3, 4)
	outDir := filepath.Join(dir, "csv")

	var out bytes.Buffer
	runner := NewRunner(NewReader(nil), &report.Collector{})
	runner.Out = &out
	runner.OutputDir = outDir
	runner.WriteArray = true
	runner.ShowStats = true

	sum := runner.Run([]string{img})
	if sum.Processed != 1 || len(sum.Outputs) != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	for _, name := range []string{"shot.csv", "shot_array.csv"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if !strings.Contains(out.String(), "PERFORMANCE REPORT") {
		t.Errorf("expected a performance report, got %q", out.String())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path, dir string
		want      string
	}{
		{"a/photo.jpg", "", "a/photo.csv"},
		{"a/photo.jpeg", "", "a/photo.csv"},
		{"a/PHOTO.JPG", "", "a/PHOTO.csv"},
		{"a/scan.png", "", "a/scan.csv"},
		{"a/photo.jpg", "out", filepath.Join("out", "photo.csv")},
		{"noext", "", "noext.csv"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.path, tt.dir); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.path, tt.dir, got, tt.want)
		}
	}
}

func TestArrayPath(t *testing.T) {
	if got := ArrayPath("out/photo.csv"); got != "out/photo_array.csv" {
		t.Errorf("got %q", got)
	}
}

func TestWriteBoth_RejectsSharedPath(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "img.png")
	writeGray(t, img, 4, 4)
	res, err := NewReader(nil).Process(img)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	out := filepath.Join(dir, "out.csv")
	tests := []struct {
		name      string
		arrayPath string
		roiPath   string
	}{
		{"identical", out, out},
		{"unclean", filepath.Join(dir, "sub", "..", "out.csv"), out},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := res.WriteBoth(tt.arrayPath, tt.roiPath); !errors.Is(err, csvio.ErrWrite) {
				t.Fatalf("expected ErrWrite, got %v", err)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("nothing should be written, stat: %v", err)
			}
		})
	}
}

func TestRun_RefusesToOverwriteEarlierOutput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		files  []string
		outDir string
	}{
		{"same base name in two directories", []string{filepath.Join(dir, "a", "img.png"), filepath.Join(dir, "b", "img.png")}, filepath.Join(dir, "out")},
		{"same stem with two extensions", []string{filepath.Join(dir, "c", "shot.png"), filepath.Join(dir, "c", "shot.jpg")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, f := range tt.files {
				if err := os.MkdirAll(filepath.Dir(f), 0755); err != nil {
					t.Fatal(err)
				}
				writeGray(t, f, 3+i, 4)
			}

			sink := &report.Collector{}
			runner := NewRunner(NewReader(nil), sink)
			runner.Out = nil
			runner.OutputDir = tt.outDir
			sum := runner.Run(tt.files)

			if sum.Processed != 1 || sum.Failed != 1 {
				t.Fatalf("expected 1 ok / 1 failed, got %+v", sum)
			}
			entries := sink.Entries()
			if len(entries) != 1 || entries[0].Title != TitleWrite {
				t.Fatalf("expected one write error, got %v", entries)
			}
			if p := readProfile(t, sum.Outputs[0]); len(p) != 3 {
				t.Errorf("first output was overwritten: %d values", len(p))
			}
		})
	}
}
