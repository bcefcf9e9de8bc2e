package exifmeta

import (
	"bytes"
	"fmt"
	"strings"

	"photomap/internal/models"

	"github.com/rs/zerolog/log"
)

// timestampTags are tried in order for the capture time.
var timestampTags = []string{TagDateTimeOriginal, TagDateTimeDigitized, TagDateTime}

// BuildRecord assembles the map record for one image.
//
// Missing tags leave the corresponding fields empty. Unusable GPS data is
// logged and dropped so it cannot hide the rest of the record. A present but
// malformed capture timestamp fails the whole record with ErrMalformedTimestamp.
func BuildRecord(path string, m Metadata) (models.ImageRecord, error) {
	record := models.ImageRecord{
		Path:       path,
		Title:      stringValue(m.Lookup(TagImageDescription)),
		Annotation: userComment(m.Lookup(TagUserComment)),
		Artist:     stringValue(m.Lookup(TagArtist)),
	}

	coord, err := ExtractPosition(m)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("discarding unusable GPS data")
	}
	record.Coordinate = coord

	raw, ok := captureTime(m)
	if !ok {
		return record, nil
	}

	takenAt, err := ParseTimestamp(raw)
	if err != nil {
		return models.ImageRecord{}, fmt.Errorf("%s: %w", path, err)
	}

	record.TakenAt = &takenAt
	record.Timestamp = takenAt.Format(DisplayLayout)

	return record, nil
}

func captureTime(m Metadata) (string, bool) {
	for _, tag := range timestampTags {
		value := m.Lookup(tag)
		if value == nil {
			continue
		}
		s, ok := value.(string)
		if !ok {
			// A non-string timestamp is present but unparseable.
			return fmt.Sprint(value), true
		}
		if isBlankTimestamp(s) {
			continue
		}
		return strings.TrimSpace(strings.TrimRight(s, "\x00")), true
	}
	return "", false
}

// isBlankTimestamp reports whether s holds no digits, e.g. the
// "    :  :     :  :  " EXIF writes for an unknown date.
func isBlankTimestamp(s string) bool {
	return strings.Trim(s, " :\x00") == ""
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(strings.TrimRight(v, "\x00"))
	case []byte:
		return strings.TrimSpace(string(bytes.TrimRight(v, "\x00")))
	}
	return ""
}

// Character code prefixes of the UserComment field.
var (
	commentASCII     = []byte("ASCII\x00\x00\x00")
	commentUndefined = make([]byte, 8)
)

func userComment(value any) string {
	b, ok := value.([]byte)
	if !ok {
		return stringValue(value)
	}

	if len(b) >= 8 {
		switch prefix := b[:8]; {
		case bytes.Equal(prefix, commentASCII), bytes.Equal(prefix, commentUndefined):
			b = b[8:]
		case bytes.HasPrefix(prefix, []byte("UNICODE")), bytes.HasPrefix(prefix, []byte("JIS")):
			// Only ASCII comments are rendered.
			return ""
		}
	}

	return stringValue(b)
}
