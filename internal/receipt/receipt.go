// Package receipt validates attachment uploads and inlines them as data URLs.
package receipt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"expensereport/internal/core"
)

// DefaultMaxBytes is the attachment size ceiling (5 MiB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

var (
	ErrTooLarge        = errors.New("receipt exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported receipt type")
	ErrUnreadable      = errors.New("receipt could not be read")
)

// Allowed lists the accepted MIME types.
var Allowed = []string{"image/jpeg", "image/png", "application/pdf"}

// NotificationKey maps a validation error to its catalog key under "notifications.".
func NotificationKey(err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return "fileSizeError"
	case errors.Is(err, ErrUnsupportedType):
		return "fileTypeError"
	default:
		return "fileReadError"
	}
}

func allowed(mt string) bool {
	for _, a := range Allowed {
		if mt == a {
			return true
		}
	}
	return false
}

func baseType(mt string) string {
	base, _, _ := strings.Cut(mt, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// Check validates the declared size and type before any bytes are read.
// A negative size means unknown.
func Check(size int64, declaredType string, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	if dt := baseType(declaredType); dt != "" && !allowed(dt) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
	return nil
}

// FromReader reads at most maxBytes from r, sniffs the content type and builds
// the receipt. The sniffed type must be allowed and, when a type was declared,
// must agree with it.
func FromReader(name, declaredType string, r io.Reader, maxBytes int64) (core.Receipt, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := Check(-1, declaredType, maxBytes); err != nil {
		return core.Receipt{}, err
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return core.Receipt{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if int64(len(data)) > maxBytes {
		return core.Receipt{}, ErrTooLarge
	}
	if len(data) == 0 {
		return core.Receipt{}, fmt.Errorf("%w: empty file", ErrUnreadable)
	}

	sniffed := baseType(mimetype.Detect(data).String())
	if !allowed(sniffed) {
		return core.Receipt{}, fmt.Errorf("%w: content is %s", ErrUnsupportedType, sniffed)
	}
	if dt := baseType(declaredType); dt != "" && dt != sniffed {
		return core.Receipt{}, fmt.Errorf("%w: declared %s but content is %s", ErrUnsupportedType, dt, sniffed)
	}

	return core.Receipt{
		Name: filepath.Base(name),
		Type: sniffed,
		Data: DataURL(sniffed, data),
	}, nil
}

// DataURL encodes data as "data:<type>;base64,<payload>".
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a data URL back into its media type and bytes.
func Decode(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URL", ErrUnreadable)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrUnreadable)
	}
	mediaType, isB64 := strings.CutSuffix(meta, ";base64")
	if !isB64 {
		return "", nil, fmt.Errorf("%w: payload is not base64", ErrUnreadable)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return mediaType, data, nil
}
