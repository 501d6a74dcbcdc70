package main

import (
	"context"
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted signals the user aborted a prompt (e.g., Ctrl+C).
var errAborted = errors.New("prompt: aborted")

// confirmer asks yes/no questions. The survey implementation needs a real
// terminal, so tests substitute a stub.
type confirmer interface {
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

type surveyConfirmer struct{}

func (surveyConfirmer) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

// filterOverwrites drops jobs whose destination exists and the user declined
// to replace. force skips the question; without a confirmer existing files are
// replaced, matching the non-interactive behaviour.
func filterOverwrites(ctx context.Context, jobs []job, force bool, ask confirmer) ([]job, []job, error) {
	if force || ask == nil {
		return jobs, nil, nil
	}
	kept := make([]job, 0, len(jobs))
	var skipped []job
	for _, j := range jobs {
		if j.output == "" || !fileExists(j.output) {
			kept = append(kept, j)
			continue
		}
		ok, err := ask.Confirm(ctx, "Overwrite "+j.output+"?", false)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			kept = append(kept, j)
		} else {
			skipped = append(skipped, j)
		}
	}
	return kept, skipped, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
