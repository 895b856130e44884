package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxDocumentSize bounds a single document read from the static host.
const maxDocumentSize = 8 << 20

// HTTPSource reads documents from a static file host. The host offers no
// cache invalidation, so every request carries a unique "v" parameter.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		now:     time.Now,
	}
}

func (s *HTTPSource) documentURL(name string) (string, error) {
	u, err := url.Parse(s.baseURL + "/" + strings.TrimLeft(name, "/"))
	if err != nil {
		return "", fmt.Errorf("build url for %s: %w", name, err)
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(s.now().UnixNano(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := s.documentURL(name)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("new request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", name, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}
