package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	infraerrors "github.com/verge88/api-npa3/infrastructure/errors"
	infrahttp "github.com/verge88/api-npa3/infrastructure/http"
)

// HTTPFetcher fetches pages with net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher whose client sends userAgent and gives up
// on a request after timeout.
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: infrahttp.NewClient(&infrahttp.ClientConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		}),
	}
}

// NewHTTPFetcherWithClient uses an existing client as is.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch performs one GET. Error statuses become *infraerrors.HTTPError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	if err = infraerrors.CheckResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if body, err = toUTF8(body, resp.Header.Get("Content-Type")); err != nil {
		return nil, err
	}

	return &Page{URL: url, StatusCode: resp.StatusCode, Body: body}, nil
}

// prescanBytes is how much of a page the charset prescan inspects.
const prescanBytes = 1024

// toUTF8 converts body to UTF-8 when the response declares another charset,
// through a BOM, the Content-Type parameter or a <meta> tag. Undeclared
// bodies are kept as is: the source serves UTF-8 without saying so.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && !declaresCharset(body) {
		return body, nil
	}
	if name == "utf-8" {
		return body, nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s body: %w", name, err)
	}
	return decoded, nil
}

// declaresCharset reports whether the head of the page carries
// <meta charset> or <meta http-equiv content="...charset=...">.
func declaresCharset(body []byte) bool {
	if len(body) > prescanBytes {
		body = body[:prescanBytes]
	}

	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Meta {
				continue
			}
			for _, a := range tok.Attr {
				switch strings.ToLower(a.Key) {
				case "charset":
					return true
				case "content":
					if strings.Contains(strings.ToLower(a.Val), "charset=") {
						return true
					}
				}
			}
		}
	}
}
