// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPFetcher_NonAnonymousSendsCredentialsAndTaints(t *testing.T) {
	body := []byte("payload bytes")
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	f := &HTTPFetcher{Header: http.Header{"Authorization": {"Bearer tok"}}}
	payload, err := f.Fetch(context.Background(), srv.URL+"/priv.png", false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok")
	}
	if !payload.Tainted {
		t.Error("non-anonymous payload not marked tainted")
	}
	if !bytes.Equal(payload.Data, body) {
		t.Error("payload bytes differ from response body")
	}
	if payload.DeclaredType != MIMEPNG {
		t.Errorf("DeclaredType = %q, want %q", payload.DeclaredType, MIMEPNG)
	}
}

func TestHTTPFetcher_AnonymousOmitsCredentials(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := &HTTPFetcher{Header: http.Header{"Authorization": {"Bearer tok"}}}
	payload, err := f.Fetch(context.Background(), srv.URL+"/pub.png", true)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if sawAuth {
		t.Error("anonymous fetch sent the credential header")
	}
	if payload.Tainted {
		t.Error("anonymous payload marked tainted")
	}
}

func TestHTTPFetcher_DeclaredTypeDropsParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "Image/SVG+XML; charset=utf-8")
		w.Write([]byte("<svg/>"))
	}))
	defer srv.Close()

	f := &HTTPFetcher{}
	payload, err := f.Fetch(context.Background(), srv.URL+"/a.svg", true)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if payload.DeclaredType != MIMESVG {
		t.Errorf("DeclaredType = %q, want %q", payload.DeclaredType, MIMESVG)
	}
}
