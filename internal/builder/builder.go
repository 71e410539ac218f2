package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brogergvhs/isbnrange/internal/rangetable"
	"github.com/brogergvhs/isbnrange/internal/ui"
)

type Builder struct {
	source Source
	log    *ui.Logger
}

func New(source Source, log *ui.Logger) *Builder {
	if log == nil {
		log = ui.NopLogger()
	}

	return &Builder{
		source: source,
		log:    log.Component("builder"),
	}
}

// Build reads the source document and returns the validated table. It never
// touches the artifact; see Publish.
func (b *Builder) Build(ctx context.Context) (*rangetable.Table, Metadata, error) {
	start := time.Now()
	b.log.Debugf("Opening range message from %s", b.source.Name())

	rc, err := b.source.Open(ctx)
	if err != nil {
		return nil, Metadata{}, stageErr(StageFetch, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			b.log.Debugf("Warning: failed to close %s: %v", b.source.Name(), cerr)
		}
	}()

	groups, meta, err := parseMessage(rc, b.log)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, meta, stageErr(StageFetch, errors.Join(ctxErr, err))
		}
		return nil, meta, stageErr(StageParse, err)
	}

	table, err := rangetable.New(groups)
	if err != nil {
		return nil, meta, stageErr(StageValidate, err)
	}

	b.log.Info("range message parsed",
		ui.FieldSource, b.source.Name(),
		"serial", meta.SerialNumber,
		"date", meta.Date,
		"groups", meta.Groups,
		"ranges", meta.Ranges,
		"skipped", meta.Skipped,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return table, meta, nil
}

// String summarizes the message for the build report.
func (m Metadata) String() string {
	return fmt.Sprintf("%s #%s (%s): %d groups, %d ranges, %d unassigned rules skipped",
		orDash(m.Source), orDash(m.SerialNumber), orDash(m.Date), m.Groups, m.Ranges, m.Skipped)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
