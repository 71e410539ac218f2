// Package batch hyphenates many ISBNs on a bounded worker pool.
package batch

import (
	"context"
	"errors"

	"github.com/brogergvhs/isbnrange/internal/isbn"
	"github.com/brogergvhs/isbnrange/internal/ui"

	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusFallback Status = "fallback"
	StatusNotFound Status = "not_found"
	StatusInvalid  Status = "invalid"
)

const defaultWorkers = 4

// Resolver is satisfied by *isbn.Resolver and *isbn.Lazy.
type Resolver interface {
	Resolve(isbn string) (isbn.Location, error)
}

// Progress receives one Increment per finished input.
type Progress interface {
	SetTotal(total int64)
	Increment()
}

type Options struct {
	Workers  int
	Progress Progress
	Stats    *ui.Stats
}

type Result struct {
	Input  string
	Output string
	// Group is the agency name, empty unless a group matched.
	Group  string
	Status Status
	Err    error
}

// Run resolves every input and returns the results in input order. Malformed
// and unmatched inputs are reported per result; only a failure of the
// resolver itself (such as a table that did not load) or ctx ending aborts
// the run.
func Run(ctx context.Context, r Resolver, inputs []string, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if opts.Progress != nil {
		opts.Progress.SetTotal(int64(len(inputs)))
	}

	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}

		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := resolveOne(r, in)
			if err != nil {
				return err
			}
			results[i] = res
			count(opts.Stats, res.Status)

			if opts.Progress != nil {
				opts.Progress.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}

func resolveOne(r Resolver, in string) (Result, error) {
	res := Result{Input: in}

	loc, err := r.Resolve(in)
	switch {
	case err == nil:
	case errors.Is(err, isbn.ErrGroupNotFound):
		res.Output, res.Status, res.Err = string(loc.Digits), StatusNotFound, err
		return res, nil
	case isbn.IsInputError(err):
		res.Status, res.Err = StatusInvalid, err
		return res, nil
	default:
		return res, err
	}

	res.Output = loc.Hyphenated()
	res.Group = loc.Group.Agency
	res.Status = StatusOK
	if _, _, ok := loc.Split(); !ok {
		res.Status = StatusFallback
	}

	return res, nil
}

func count(s *ui.Stats, status Status) {
	if s == nil {
		return
	}

	switch status {
	case StatusOK:
		s.Hyphenated.Add(1)
	case StatusFallback:
		s.Fallback.Add(1)
	case StatusNotFound:
		s.NotFound.Add(1)
	case StatusInvalid:
		s.Invalid.Add(1)
	}
}
