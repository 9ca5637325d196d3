// Package attachment converts user-supplied evidence files into the
// self-describing text form embedded in a feedback record, and validates
// already-encoded values at the record boundary.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/CampusVoice/campus-voice-backend/errors"
	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the raw byte ceiling for an attachment, measured before encoding.
const MaxSize = 8 << 20 // 8 MiB

// allowedMimes is the fixed media-type allow-list. The type is always
// detected from content, never trusted from the client.
var allowedMimes = []string{
	"image/png",
	"image/jpeg",
	"application/pdf",
}

const dataURIMarker = ";base64,"

// Encoded is the result of a successful encode.
type Encoded struct {
	// DataURI is the embeddable text: data:<mime>;base64,<payload>.
	DataURI   string
	MediaType string
	SizeBytes int64
}

// Encode reads a file and produces its embeddable text form. It fails with
// TooLarge when the raw size exceeds MaxSize and with UnsupportedType when
// the sniffed media type is outside the allow-list. Failure leaves nothing
// behind; the encoder holds no state.
func Encode(r io.Reader) (*Encoded, error) {
	// Read one byte past the ceiling so oversize input is detected without
	// buffering an unbounded body.
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ValidationError, "failed to read attachment")
	}
	if int64(len(data)) > MaxSize {
		return nil, apperrors.TooLarge(int64(len(data)), MaxSize)
	}

	detected := mimetype.Detect(data)
	mediaType, ok := matchAllowed(detected)
	if !ok {
		return nil, apperrors.UnsupportedType(detected.String())
	}

	return &Encoded{
		DataURI:   fmt.Sprintf("data:%s%s%s", mediaType, dataURIMarker, base64.StdEncoding.EncodeToString(data)),
		MediaType: mediaType,
		SizeBytes: int64(len(data)),
	}, nil
}

// Validate re-checks an already-encoded value arriving at the record
// boundary: the prefix must name an allowed media type and the payload must
// decode to at most MaxSize raw bytes. It fails closed on any shape mismatch.
func Validate(dataURI string) error {
	mediaType, payload, err := split(dataURI)
	if err != nil {
		return err
	}

	allowed := false
	for _, m := range allowedMimes {
		if mediaType == m {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.UnsupportedType(mediaType)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return apperrors.ValidationFailed("Attachment payload is not valid base64", err.Error())
	}
	if int64(len(raw)) > MaxSize {
		return apperrors.TooLarge(int64(len(raw)), MaxSize)
	}
	return nil
}

// IsImage reports whether an encoded attachment carries an image payload.
// Consumers use this to pick between inline display and a document link.
func IsImage(dataURI string) bool {
	return strings.HasPrefix(dataURI, "data:image/")
}

// MediaType returns the media type named by an encoded attachment, or an
// empty string if the value is not a well-formed data URI.
func MediaType(dataURI string) string {
	mediaType, _, err := split(dataURI)
	if err != nil {
		return ""
	}
	return mediaType
}

func matchAllowed(detected *mimetype.MIME) (string, bool) {
	for _, m := range allowedMimes {
		if detected.Is(m) {
			return m, true
		}
	}
	return "", false
}

func split(dataURI string) (mediaType, payload string, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", "", apperrors.ValidationFailed("Attachment is not a data URI", "missing data: prefix")
	}
	rest := strings.TrimPrefix(dataURI, "data:")
	idx := strings.Index(rest, dataURIMarker)
	if idx < 0 {
		return "", "", apperrors.ValidationFailed("Attachment is not a data URI", "missing base64 marker")
	}
	return rest[:idx], rest[idx+len(dataURIMarker):], nil
}
