// Package engine runs images through decode, reduction and CSV output.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/img2roi/internal/csvio"
	"github.com/ivlev/img2roi/internal/report"
	"github.com/ivlev/img2roi/internal/source"
	"github.com/ivlev/img2roi/internal/system"
)

// Error titles shown by the sink.
const (
	TitleRead   = "File Reading Error"
	TitleWrite  = "File Writing Error"
	TitleReader = "Intensity Reader Error"
)

// Runner processes a batch of images one at a time.
type Runner struct {
	Reader     *Reader
	Sink       report.Sink
	Out        io.Writer
	OutputDir  string
	WriteArray bool
	ShowStats  bool
}

// NewRunner returns a runner that writes progress to stdout. A nil sink
// reports through the standard logger.
func NewRunner(r *Reader, sink report.Sink) *Runner {
	if sink == nil {
		sink = report.NewLogSink(nil)
	}
	return &Runner{Reader: r, Sink: sink, Out: os.Stdout}
}

// Summary counts the outcome of a batch.
type Summary struct {
	Processed int
	Failed    int
	Outputs   []string
	Elapsed   time.Duration
}

// Run processes every file in order. A failing file is reported to the sink
// and skipped; the rest of the batch still runs.
func (rn *Runner) Run(files []string) Summary {
	startTime := time.Now()
	out := rn.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintf(out, "[*] Images: %d | Band: %s\n", len(files), rn.Reader.Policy().Name())
	if rn.OutputDir != "" {
		if err := os.MkdirAll(rn.OutputDir, 0755); err != nil {
			rn.Sink.Display(TitleWrite, fmt.Sprintf("could not create %s: %v", rn.OutputDir, err))
		}
	}

	var sum Summary
	written := make(map[string]string)
	for i, path := range files {
		outputs, err := rn.processFile(path, written)
		if err != nil {
			sum.Failed++
			rn.Sink.Display(errorTitle(err), err.Error())
			continue
		}
		sum.Processed++
		sum.Outputs = append(sum.Outputs, outputs...)
		fmt.Fprintf(out, "[>] Ready: %d/%d %s\n", i+1, len(files), outputs[0])
	}
	sum.Elapsed = time.Since(startTime)

	if rn.ShowStats {
		rn.printReport(out, sum)
	}
	return sum
}

// processFile decodes and writes one image. written maps every output already
// produced in this batch to its source image; an image whose outputs collide
// with an earlier one is refused rather than overwriting it.
func (rn *Runner) processFile(path string, written map[string]string) ([]string, error) {
	outputs := []string{OutputPath(path, rn.OutputDir)}
	if rn.WriteArray {
		outputs = append(outputs, ArrayPath(outputs[0]))
	}
	for _, o := range outputs {
		if prev, ok := written[outputKey(o)]; ok {
			return nil, fmt.Errorf("%w: %s: output %s already written for %s", csvio.ErrWrite, path, o, prev)
		}
	}

	res, err := rn.Reader.Process(path)
	if err != nil {
		return nil, err
	}
	if rn.WriteArray {
		err = res.WriteBoth(outputs[1], outputs[0])
	} else {
		err = res.WriteProfileCSV(outputs[0])
	}
	if err != nil {
		return nil, err
	}

	for _, o := range outputs {
		written[outputKey(o)] = path
	}
	return outputs, nil
}

func outputKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (rn *Runner) printReport(out io.Writer, sum Summary) {
	total := sum.Processed + sum.Failed
	ips := 0.0
	if sum.Elapsed > 0 {
		ips = float64(total) / sum.Elapsed.Seconds()
	}
	fmt.Fprintf(out,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Images: %d (ok %d, failed %d)\n"+
			"Total Time: %.2fs\n"+
			"Images/s: %.2f\n",
		total, sum.Processed, sum.Failed, sum.Elapsed.Seconds(), ips,
	)
	snap, err := system.TakeSnapshot()
	if err != nil {
		fmt.Fprintf(out, "[!] Memory stats unavailable: %v\n", err)
	} else {
		fmt.Fprintf(out, "%s\n", snap)
	}
	fmt.Fprint(out, "----------------------------\n")
}

func errorTitle(err error) string {
	switch {
	case errors.Is(err, source.ErrDecode):
		return TitleRead
	case errors.Is(err, csvio.ErrWrite):
		return TitleWrite
	default:
		return TitleReader
	}
}

// OutputPath maps an image path to its profile CSV. A .jpg or .jpeg suffix is
// replaced by .csv; other files lose their extension. A non-empty dir
// relocates the file there.
func OutputPath(path, dir string) string {
	var base string
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".jpeg"):
		base = path[:len(path)-len(".jpeg")]
	case strings.HasSuffix(lower, ".jpg"):
		base = path[:len(path)-len(".jpg")]
	default:
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}
	out := base + ".csv"
	if dir != "" {
		out = filepath.Join(dir, filepath.Base(out))
	}
	return out
}

// ArrayPath derives the full-grid CSV path from a profile CSV path.
func ArrayPath(profilePath string) string {
	return strings.TrimSuffix(profilePath, ".csv") + "_array.csv"
}
