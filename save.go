// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile writes the asset's rendered object to disk. It is a no-op
// (nil error) unless the asset is ready.
//
// By default the asset's own blob is written under its sniffed type;
// WithBlob substitutes another payload (typically a Compress result)
// and WithMIMEOverride forces the media type. When name carries no
// extension, one is derived from the effective media type.
func (a *Asset) SaveFile(name string, opts ...SaveOption) error {
	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}

	a.mu.Lock()
	if !a.loaded {
		a.mu.Unlock()
		return nil
	}
	blob := a.blob
	mime := a.mime
	a.mu.Unlock()

	if o.blob != nil {
		blob = o.blob
		mime = o.blob.MIMEType()
	}
	if o.mimeOverride != "" && o.mimeOverride != MIMEUnknown {
		mime = o.mimeOverride
	}
	if blob == nil || blob.Bytes() == nil {
		return fmt.Errorf("%w: no rendered object to save", ErrNotReady)
	}

	if filepath.Ext(name) == "" {
		name += mime.Ext()
	}
	if err := os.WriteFile(name, blob.Bytes(), 0o644); err != nil {
		return fmt.Errorf("bitmap: save %s: %w", name, err)
	}
	Logger().Debug("bitmap: saved", "file", name, "bytes", blob.Size())
	return nil
}
