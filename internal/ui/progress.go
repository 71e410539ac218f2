package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/isbnrange/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Unit selects how a bar renders its counters.
type Unit int

const (
	UnitItems Unit = iota
	UnitBytes
)

type MPBProgressManager struct {
	p *mpb.Progress
}

// NewProgressManager renders bars to out. A nil out discards rendering.
func NewProgressManager(out io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

func (pm *MPBProgressManager) Register(prefix string, unit Unit) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
		unit:   unit,
	}
	h.initBar()
	return h
}

type ProgressHandle struct {
	pm     *MPBProgressManager
	prefix string
	unit   Unit
	bar    *mpb.Bar

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	counter := decor.CountersNoUnit(" | %d/%d", decor.WCSyncWidth)
	if h.unit == UnitBytes {
		counter = decor.Any(func(s decor.Statistics) string {
			if s.Total <= 0 {
				return " | " + util.HumanBytes(s.Current)
			}
			return fmt.Sprintf(" | %s/%s", util.HumanBytes(s.Current), util.HumanBytes(s.Total))
		}, decor.WCSyncWidth)
	}

	h.bar = h.pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			counter,
			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

// SetTotal sets the expected count. Zero or negative leaves it open.
func (h *ProgressHandle) SetTotal(total int64) {
	if h.final.Load() || total <= 0 {
		return
	}

	h.bar.SetTotal(total, false)
}

func (h *ProgressHandle) SetCurrent(n int64) {
	if h.final.Load() {
		return
	}

	h.bar.SetCurrent(n)
}

func (h *ProgressHandle) Increment() {
	if h.final.Load() {
		return
	}

	h.bar.Increment()
}

// MarkDone completes the bar at whatever count it reached.
func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetTotal(-1, true)
}
