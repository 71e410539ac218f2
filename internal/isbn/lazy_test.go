package isbn

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/isbnrange/internal/rangetable"
)

func TestLazyBlocksUntilLoaded(t *testing.T) {
	release := make(chan struct{})
	l := LoadAsync(func() (*rangetable.Table, error) {
		<-release
		return rangetable.LoadFile("../rangetable/testdata/ranges.json")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := l.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	done := make(chan string, 1)
	go func() {
		out, _ := l.Hyphenate("9780306406157")
		done <- out
	}()

	select {
	case <-done:
		t.Fatal("Hyphenate returned before the table was loaded")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)

	select {
	case out := <-done:
		assert.Equal(t, "978-0-306-40615-7", out)
	case <-time.After(2 * time.Second):
		t.Fatal("Hyphenate did not return after the table was loaded")
	}

	name, ok := l.GroupName("9780306406157")
	assert.True(t, ok)
	assert.Equal(t, "English language", name)
}

func TestLazyLoadFailure(t *testing.T) {
	boom := errors.New("boom")
	l := LoadAsync(func() (*rangetable.Table, error) {
		return nil, boom
	})

	_, err := l.Wait(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = l.Hyphenate("9780306406157")
	assert.ErrorIs(t, err, boom)

	_, err = l.Resolve("9780306406157")
	assert.ErrorIs(t, err, boom)

	_, ok := l.GroupName("9780306406157")
	assert.False(t, ok)
}

func TestLazyNilTable(t *testing.T) {
	l := LoadAsync(func() (*rangetable.Table, error) {
		return nil, nil
	})

	_, err := l.Wait(context.Background())
	assert.Error(t, err)
}

func TestLazyConcurrentCallers(t *testing.T) {
	l := LoadAsync(func() (*rangetable.Table, error) {
		return rangetable.LoadFile("../rangetable/testdata/ranges.json")
	})

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = l.Hyphenate("0306406152")
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "0-306-40615-2", got)
	}
}
