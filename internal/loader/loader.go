package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

// Loader implements sfc.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level vuemigrate package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ sfc.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options sfc.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a component from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src sfc.Source) (sfc.Document, error) {
	if src == nil {
		return sfc.Document{}, errors.New("sfc loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case sfc.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case sfc.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case sfc.SourceKindURL:
		if !l.allowHTTP {
			return sfc.Document{}, errors.New("sfc loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("sfc loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return sfc.Document{}, fmt.Errorf("sfc loader: load %s: %w", src.Location(), err)
	}

	return sfc.NewDocument(src, data)
}
