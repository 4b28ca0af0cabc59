// Package upload holds the local checks applied to files before they are
// sent to the remote API.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	app_errors "flow-chat/frontend/internal/errors"
)

// sniffLen is how many leading bytes are inspected to detect the real type.
const sniffLen = 3072

// File is a file selected for upload.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Policy is the client-side file constraint: exactly one accepted document
// type and a maximum size.
type Policy struct {
	AcceptedType string
	MaxBytes     int64
}

// Check rejects files that violate the policy. The returned File must be
// used instead of f: its Content still yields every byte, including the
// ones read for sniffing.
func (p Policy) Check(f File) (File, error) {
	if f.Size > p.MaxBytes {
		return f, fmt.Errorf("%w: file %q is %d bytes, the maximum is %d bytes", app_errors.ErrValidation, f.Name, f.Size, p.MaxBytes)
	}
	declared := baseType(f.ContentType)
	if declared != p.AcceptedType {
		return f, fmt.Errorf("%w: file type %q is not allowed, only %s", app_errors.ErrValidation, declared, p.AcceptedType)
	}
	if f.Content == nil {
		return f, fmt.Errorf("%w: file %q has no content", app_errors.ErrValidation, f.Name)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return f, fmt.Errorf("could not read file %q: %w", f.Name, err)
	}
	head = head[:n]
	if detected := mimetype.Detect(head); !detected.Is(p.AcceptedType) {
		return f, fmt.Errorf("%w: content of %q looks like %s, not %s", app_errors.ErrValidation, f.Name, detected.String(), p.AcceptedType)
	}

	f.ContentType = declared
	f.Content = io.MultiReader(bytes.NewReader(head), f.Content)
	return f, nil
}

// AudioFileName derives the upload file name for a recording from its MIME
// type, e.g. "audio/webm;codecs=opus" -> "recording.webm".
func AudioFileName(mimeType string) string {
	base := baseType(mimeType)
	if m := mimetype.Lookup(base); m != nil && m.Extension() != "" {
		return "recording" + m.Extension()
	}
	if _, sub, ok := strings.Cut(base, "/"); ok && sub != "" {
		return "recording." + sub
	}
	return "recording.webm"
}

func baseType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
