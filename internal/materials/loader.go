// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/mec-library/internal/httputil"
	"github.com/pdiddy/mec-library/pkg/types"
)

// ErrUnsupportedSource is returned for source URLs that are not http or https.
var ErrUnsupportedSource = errors.New("unsupported source scheme")

const defaultTimeout = 30 * time.Second

// ReadSource returns the raw materials page. source is either a local path
// or an http(s) URL; remote pages are fetched using cfg. A missing local
// file is an error wrapping fs.ErrNotExist.
func ReadSource(ctx context.Context, source string, cfg types.HTTPConfig) ([]byte, error) {
	if !strings.Contains(source, "://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading materials page: %w", err)
		}
		return data, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing source %q: %w", source, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, u.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	return httputil.Fetch(ctx, client, source, cfg.UserAgent, cfg.MaxRetries)
}
