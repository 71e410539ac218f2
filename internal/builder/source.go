package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Source yields one RangeMessage document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs.
	Name() string
}

// ProgressFunc receives bytes read so far and the expected total, or -1 when
// the server sent no length.
type ProgressFunc func(done, total int64)

// HTTPSource downloads the document with a single GET.
type HTTPSource struct {
	Client   *http.Client
	URL      string
	Progress ProgressFunc
}

func (s *HTTPSource) Name() string {
	return s.URL
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/xml,text/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", s.URL, resp.StatusCode)
	}

	if s.Progress == nil {
		return resp.Body, nil
	}

	s.Progress(0, resp.ContentLength)
	return &progressReader{
		ReadCloser: resp.Body,
		total:      resp.ContentLength,
		report:     s.Progress,
	}, nil
}

type progressReader struct {
	io.ReadCloser
	done   int64
	total  int64
	report ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	if n > 0 {
		r.done += int64(n)
		r.report(r.done, r.total)
	}
	return n, err
}

// FileSource reads a previously downloaded document.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}
