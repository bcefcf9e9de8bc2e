// Package exifmeta turns EXIF tag dictionaries into map-ready image records.
package exifmeta

import "strconv"

// RawMetadata maps numeric EXIF tag ids to their values. The GPSInfo entry
// holds a nested RawMetadata keyed by GPS tag ids.
type RawMetadata map[uint16]any

// Metadata maps tag names to values. The GPSInfo entry, when present and
// well formed, holds a GPSInfo.
type Metadata map[string]any

// GPSInfo maps GPS tag names to their raw values.
type GPSInfo map[string]any

// Decode resolves every tag in raw through TagNames and the GPS sub-directory
// through GPSTagNames. Unknown ids are kept under their decimal string.
func Decode(raw RawMetadata) Metadata {
	decoded := make(Metadata, len(raw))

	for id, value := range raw {
		name := tagName(TagNames, id)

		if name == TagGPSInfo {
			if sub, ok := asRaw(value); ok {
				decoded[name] = decodeGPS(sub)
				continue
			}
		}

		decoded[name] = value
	}

	return decoded
}

func decodeGPS(raw RawMetadata) GPSInfo {
	gps := make(GPSInfo, len(raw))
	for id, value := range raw {
		gps[tagName(GPSTagNames, id)] = value
	}
	return gps
}

func tagName(table map[uint16]string, id uint16) string {
	if name, ok := table[id]; ok {
		return name
	}
	return strconv.Itoa(int(id))
}

func asRaw(value any) (RawMetadata, bool) {
	switch v := value.(type) {
	case RawMetadata:
		return v, true
	case map[uint16]any:
		return RawMetadata(v), true
	}
	return nil, false
}

// Lookup returns the value stored under key, or nil when it is missing.
func (m Metadata) Lookup(key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// GPS returns the decoded GPS sub-mapping. ok is false when the image has no
// GPSInfo entry; malformed is true when the entry is not a mapping.
func (m Metadata) GPS() (gps GPSInfo, ok bool, malformed bool) {
	value, found := m[TagGPSInfo]
	if !found || value == nil {
		return nil, false, false
	}

	switch v := value.(type) {
	case GPSInfo:
		return v, true, false
	case map[string]any:
		return GPSInfo(v), true, false
	}
	return nil, false, true
}

// Lookup returns the value stored under key, or nil when it is missing.
func (g GPSInfo) Lookup(key string) any {
	if g == nil {
		return nil
	}
	return g[key]
}
