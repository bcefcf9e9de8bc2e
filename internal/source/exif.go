// Package source reads images and their embedded EXIF blocks.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"photomap/internal/exifmeta"

	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifExtractor reads the EXIF block of JPEG and TIFF streams with goexif.
type ExifExtractor struct{}

// NewExifExtractor creates a new EXIF extractor
func NewExifExtractor() *ExifExtractor {
	return &ExifExtractor{}
}

// headerLen is the number of bytes goexif reads to tell TIFF from JPEG.
const headerLen = 4

// Extract returns the numerically keyed tags of r. GPS tags are nested under
// exifmeta.GPSInfoTagID. An image without an EXIF block, including a stream
// too short to hold one, yields an empty map.
func (e *ExifExtractor) Extract(r io.Reader) (exifmeta.RawMetadata, error) {
	br := bufio.NewReader(r)

	// goexif formats header read failures with %v, so short streams are
	// caught here where the io error is still visible.
	if _, err := br.Peek(headerLen); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			log.Debug().Err(err).Msg("source: stream too short for exif")
			return exifmeta.RawMetadata{}, nil
		}
		return nil, fmt.Errorf("source: failed to read image header: %w", err)
	}

	x, err := exif.Decode(br)
	if err != nil {
		// A JPEG without an APP1 segment runs off the end while searching for it.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return exifmeta.RawMetadata{}, nil
		}
		if x == nil || exif.IsCriticalError(err) {
			return nil, fmt.Errorf("source: failed to decode exif: %w", err)
		}
		log.Debug().Err(err).Msg("source: partial exif data")
	}

	w := &rawWalker{
		raw: exifmeta.RawMetadata{},
		gps: exifmeta.RawMetadata{},
	}

	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("source: failed to walk exif fields: %w", err)
	}

	if len(w.gps) > 0 {
		w.raw[exifmeta.GPSInfoTagID] = w.gps
	} else {
		delete(w.raw, exifmeta.GPSInfoTagID)
	}

	return w.raw, nil
}

// rawWalker re-keys goexif's named fields by tag id, splitting off the GPS
// directory since its ids overlap the main ones.
type rawWalker struct {
	raw exifmeta.RawMetadata
	gps exifmeta.RawMetadata
}

func (w *rawWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if name == exif.GPSInfoIFDPointer {
		return nil
	}

	value := tagValue(tag)
	if value == nil {
		return nil
	}

	if strings.HasPrefix(string(name), "GPS") {
		w.gps[tag.Id] = value
		return nil
	}

	w.raw[tag.Id] = value
	return nil
}

func tagValue(tag *tiff.Tag) any {
	n := int(tag.Count)

	switch tag.Format() {
	case tiff.RatVal:
		rats := make([]exifmeta.Rational, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return nil
			}
			rats = append(rats, exifmeta.Rational{Num: num, Den: den})
		}
		return rats

	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil
		}
		return strings.TrimRight(s, "\x00")

	case tiff.IntVal:
		ints := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return nil
			}
			ints = append(ints, v)
		}
		if len(ints) == 1 {
			return ints[0]
		}
		return ints

	case tiff.FloatVal:
		floats := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				return nil
			}
			floats = append(floats, v)
		}
		if len(floats) == 1 {
			return floats[0]
		}
		return floats
	}

	return append([]byte(nil), tag.Val...)
}
