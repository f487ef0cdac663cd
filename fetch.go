// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Payload is the result of fetching an asset's source.
type Payload struct {
	// Data is the complete response body.
	Data []byte

	// DeclaredType is the media type the server (or data: URI)
	// reported for the payload. It is only a fallback; the sniffed
	// signature wins.
	DeclaredType MIMEType

	// FinalURL is the URL the payload was actually read from, after
	// any redirects.
	FinalURL string

	// Tainted marks a non-anonymous fetch. Tainted payloads must not
	// be re-encoded; the pipeline operates on the original bytes.
	Tainted bool
}

// Fetcher retrieves an asset's source payload. Implementations must
// honor context cancellation.
//
// anonymous selects a credential-free request. Non-anonymous fetches
// attach collaborator-supplied credentials and mark the payload
// tainted so downstream stages skip re-encoding.
type Fetcher interface {
	Fetch(ctx context.Context, url string, anonymous bool) (*Payload, error)
}

// defaultFetchTimeout bounds fetches when the caller supplies neither a
// client nor a context deadline.
const defaultFetchTimeout = 30 * time.Second

// HTTPFetcher is the production Fetcher, backed by net/http. It also
// resolves data: URIs inline without touching the network.
//
// The zero value is ready to use.
type HTTPFetcher struct {
	// Client is the HTTP client for requests. nil uses a private
	// client with a 30-second timeout.
	Client *http.Client

	// Header carries collaborator-supplied credentials (cookies,
	// authorization) attached only to non-anonymous fetches.
	Header http.Header
}

// Fetch retrieves url and returns its payload. data: URIs are decoded
// in place; everything else goes over HTTP GET.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, anonymous bool) (*Payload, error) {
	if strings.HasPrefix(url, "data:") {
		data, mime, err := parseDataURL(url)
		if err != nil {
			return nil, err
		}
		return &Payload{Data: data, DeclaredType: mime, FinalURL: url}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	tainted := false
	if !anonymous {
		for k, vs := range f.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		tainted = true
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}

	return &Payload{
		Data:         data,
		DeclaredType: declaredType(resp.Header.Get("Content-Type")),
		FinalURL:     resp.Request.URL.String(),
		Tainted:      tainted,
	}, nil
}

// declaredType normalizes a Content-Type header into a MIMEType,
// dropping parameters like charset.
func declaredType(contentType string) MIMEType {
	mt, _, _ := strings.Cut(contentType, ";")
	mt = strings.TrimSpace(mt)
	if mt == "" {
		return MIMEUnknown
	}
	return MIMEType(strings.ToLower(mt))
}

// Verify HTTPFetcher implements Fetcher.
var _ Fetcher = (*HTTPFetcher)(nil)
