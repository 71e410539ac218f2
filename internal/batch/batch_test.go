package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/brogergvhs/isbnrange/internal/isbn"
	"github.com/brogergvhs/isbnrange/internal/rangetable"
	"github.com/brogergvhs/isbnrange/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadResolver(t *testing.T) *isbn.Resolver {
	t.Helper()

	table, err := rangetable.LoadFile("../rangetable/testdata/ranges.json")
	require.NoError(t, err)
	return isbn.NewResolver(table)
}

type countingProgress struct {
	total atomic.Int64
	done  atomic.Int64
}

func (p *countingProgress) SetTotal(n int64) { p.total.Store(n) }
func (p *countingProgress) Increment()       { p.done.Add(1) }

func TestRunClassifiesAndKeepsOrder(t *testing.T) {
	inputs := []string{
		"9780306406157",
		"12345",
		"9786510000000",
		"9786990000000",
		"ISBN-10: 0-8044-2957-X",
	}

	var stats ui.Stats
	progress := &countingProgress{}

	results, err := Run(context.Background(), loadResolver(t), inputs, Options{
		Workers:  3,
		Progress: progress,
		Stats:    &stats,
	})
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	want := []struct {
		output string
		status Status
	}{
		{"978-0-306-40615-7", StatusOK},
		{"", StatusInvalid},
		{"978-65-1000000-0", StatusFallback},
		{"9786990000000", StatusNotFound},
		{"0-8044-2957-X", StatusOK},
	}
	for i, w := range want {
		assert.Equal(t, inputs[i], results[i].Input)
		assert.Equal(t, w.output, results[i].Output, inputs[i])
		assert.Equal(t, w.status, results[i].Status, inputs[i])
	}

	assert.Equal(t, "English language", results[0].Group)
	assert.Empty(t, results[3].Group)
	assert.ErrorIs(t, results[1].Err, isbn.ErrInvalidLength)
	assert.ErrorIs(t, results[3].Err, isbn.ErrGroupNotFound)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, int64(len(inputs)), progress.total.Load())
	assert.Equal(t, int64(len(inputs)), progress.done.Load())

	assert.Equal(t, int64(2), stats.Hyphenated.Load())
	assert.Equal(t, int64(1), stats.Fallback.Load())
	assert.Equal(t, int64(1), stats.NotFound.Load())
	assert.Equal(t, int64(1), stats.Invalid.Load())
	assert.Equal(t, int64(5), stats.Total())
}

func TestRunManyInputsSingleWorker(t *testing.T) {
	inputs := make([]string, 200)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("978030640%03d7", i)
	}

	results, err := Run(context.Background(), loadResolver(t), inputs, Options{Workers: 1})
	require.NoError(t, err)

	for i, r := range results {
		assert.Equal(t, inputs[i], r.Input)
		assert.Equal(t, inputs[i], isbn.StripHyphens(r.Output))
	}
}

func TestRunStopsOnLoadFailure(t *testing.T) {
	boom := errors.New("table missing")
	lazy := isbn.LoadAsync(func() (*rangetable.Table, error) { return nil, boom })

	_, err := Run(context.Background(), lazy, []string{"9780306406157", "9781000000000"}, Options{})
	assert.ErrorIs(t, err, boom)
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, loadResolver(t), []string{"9780306406157"}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 1)
}
