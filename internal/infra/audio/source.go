package audio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format is the container format of a media reference.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// formatOf guesses the format from the reference's extension. Remote
// references without an extension are assumed to be mp3 previews.
func formatOf(src string) Format {
	p := src
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	if strings.EqualFold(path.Ext(p), ".wav") {
		return FormatWAV
	}
	return FormatMP3
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// open returns a seekable reader for a local path or an http(s) URL.
// Remote media is buffered in memory.
func open(ctx context.Context, client *http.Client, src string) (io.ReadSeekCloser, error) {
	if src == "" {
		return nil, ErrNothingLoaded
	}
	if !isRemote(src) {
		f, err := os.Open(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open media: %s", src)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid media url: %s", src)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch media: %s", src)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("failed to fetch media: %s: status %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read media: %s", src)
	}
	return nopCloser{bytes.NewReader(data)}, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
