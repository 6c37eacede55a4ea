package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads a team logo PNG by abbreviation from a configurable
// CDN base URL.
type Fetcher struct {
	http    *resty.Client
	baseURL string
}

// NewFetcher builds a Fetcher against baseURL, e.g.
// "https://a.espncdn.com/i/teamlogos/nfl/500".
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: baseURL,
	}
}

// FetchLogo downloads and decodes the PNG logo for abbreviation.
func (f *Fetcher) FetchLogo(ctx context.Context, abbreviation string) (image.Image, error) {
	resp, err := f.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s.png", f.baseURL, abbreviation))
	if err != nil {
		return nil, fmt.Errorf("imaging: fetch logo for %s: %w", abbreviation, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("imaging: logo fetch for %s returned %s", abbreviation, resp.Status())
	}

	img, err := png.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode logo for %s: %w", abbreviation, err)
	}
	return img, nil
}
