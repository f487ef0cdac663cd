// Copyright 2026 The gopix Authors
// SPDX-License-Identifier: BSD-3-Clause

package bitmap

// Blob is an owned handle to a re-encoded image payload. The asset
// owns the blob it produces during Load; Compress hands ownership of
// its result to the caller, who releases it when done.
type Blob struct {
	data []byte
	mime MIMEType
}

// newBlob wraps an encoded payload. The blob takes ownership of data.
func newBlob(data []byte, mime MIMEType) *Blob {
	return &Blob{data: data, mime: mime}
}

// Bytes returns the encoded payload. The slice is owned by the blob;
// callers must not retain it past Release.
func (b *Blob) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Size returns the payload length in bytes.
func (b *Blob) Size() int64 {
	if b == nil {
		return 0
	}
	return int64(len(b.data))
}

// MIMEType returns the payload's media type.
func (b *Blob) MIMEType() MIMEType {
	if b == nil {
		return MIMEUnknown
	}
	return b.mime
}

// Release drops the payload so the backing memory can be reclaimed.
// Release is idempotent.
func (b *Blob) Release() {
	if b == nil {
		return
	}
	b.data = nil
	b.mime = MIMEUnknown
}
