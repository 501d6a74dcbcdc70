package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

// job pairs an input component with the path its conversion is written to.
// An empty output means stdout.
type job struct {
	input  string
	output string
}

type jobResult struct {
	job     job
	content string
	changed bool
	err     error
}

type planOptions struct {
	out    string
	outDir string
	stdout bool
}

const (
	defaultInput  = "input.txt"
	defaultOutput = "output.txt"
)

// planJobs resolves where every input is written. Without inputs the legacy
// input.txt -> output.txt pair is used.
func planJobs(inputs []string, opts planOptions) ([]job, error) {
	if len(inputs) == 0 {
		inputs = []string{defaultInput}
		if opts.out == "" && opts.outDir == "" && !opts.stdout {
			opts.out = defaultOutput
		}
	}
	if opts.out != "" && len(inputs) > 1 {
		return nil, errors.New("convert: --out accepts a single input; use --out-dir for several")
	}
	if opts.stdout && (opts.out != "" || opts.outDir != "") {
		return nil, errors.New("convert: --stdout cannot be combined with --out or --out-dir")
	}

	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		var output string
		switch {
		case opts.stdout:
		case opts.out != "":
			output = opts.out
		case opts.outDir != "":
			output = filepath.Join(opts.outDir, filepath.Base(input))
		default:
			return nil, fmt.Errorf("convert: no destination for %s; pass --out, --out-dir, or --stdout", input)
		}
		if output != "" {
			if prev, dup := seen[output]; dup {
				return nil, fmt.Errorf("convert: %s and %s would both be written to %s", prev, input, output)
			}
			seen[output] = input
		}
		jobs = append(jobs, job{input: input, output: output})
	}
	return jobs, nil
}

// renderFunc picks what is written for a converted document.
type renderFunc func(orchestrator.Result) string

func renderDocument(res orchestrator.Result) string { return res.Document }

// renderScript writes only the generated script block. Documents that were
// not converted fall back to their original text.
func renderScript(res orchestrator.Result) string {
	if !res.Changed {
		return res.Document
	}
	return "<script>\n" + res.Script + "\n</script>\n"
}

// runJobs converts every job with at most limit conversions in flight. A
// failing file is recorded in its result and does not stop the others; only
// cancellation aborts the batch.
func runJobs(ctx context.Context, orch *orchestrator.Orchestrator, jobs []job, limit int, render renderFunc) ([]jobResult, error) {
	if render == nil {
		render = renderDocument
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]jobResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))

	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := orch.Convert(gctx, orchestrator.Request{Source: sfc.SourceFromFile(j.input)})
			if errors.Is(err, context.Canceled) {
				return err
			}
			results[i] = jobResult{job: j, changed: res.Changed, err: err}
			if err != nil {
				return nil
			}
			results[i].content = render(res)
			if j.output != "" {
				results[i].err = writeOutput(j.output, results[i].content)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("convert: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("convert: write %s: %w", path, err)
	}
	return nil
}
