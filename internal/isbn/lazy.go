package isbn

import (
	"context"
	"errors"
	"fmt"

	"github.com/brogergvhs/isbnrange/internal/rangetable"
)

// Lazy is a Resolver whose table loads in the background. Every call blocks
// until loading has finished; a failed load is returned by every call.
type Lazy struct {
	ready chan struct{}
	res   *Resolver
	err   error
}

// LoadAsync starts load in its own goroutine and returns immediately.
func LoadAsync(load func() (*rangetable.Table, error)) *Lazy {
	l := &Lazy{ready: make(chan struct{})}

	go func() {
		defer close(l.ready)

		t, err := load()
		if err == nil && t == nil {
			err = errors.New("loader returned no table")
		}
		if err != nil {
			l.err = fmt.Errorf("load range table: %w", err)
			return
		}
		l.res = NewResolver(t)
	}()

	return l
}

// Wait blocks until the table is ready or ctx is done.
func (l *Lazy) Wait(ctx context.Context) (*Resolver, error) {
	select {
	case <-l.ready:
		return l.res, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Lazy) resolver() (*Resolver, error) {
	<-l.ready
	return l.res, l.err
}

func (l *Lazy) Resolve(isbn string) (Location, error) {
	r, err := l.resolver()
	if err != nil {
		return Location{}, err
	}

	return r.Resolve(isbn)
}

func (l *Lazy) Hyphenate(isbn string) (string, error) {
	r, err := l.resolver()
	if err != nil {
		return "", err
	}

	return r.Hyphenate(isbn)
}

func (l *Lazy) GroupName(isbn string) (string, bool) {
	r, err := l.resolver()
	if err != nil {
		return "", false
	}

	return r.GroupName(isbn)
}
