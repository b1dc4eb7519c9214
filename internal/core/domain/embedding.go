package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EmbedStatus tags the outcome of an embedding request.
type EmbedStatus int

const (
	// EmbedOK means a vector was produced.
	EmbedOK EmbedStatus = iota
	// EmbedUnavailable means the provider has no credentials or is not
	// configured. Callers should degrade to a lexical strategy.
	EmbedUnavailable
	// EmbedTransient means the provider is configured but this call failed
	// (network error, malformed response). Treated the same as unavailable
	// by the retrieval engine, kept distinct for logging.
	EmbedTransient
)

// EmbedResult is the tagged outcome of an embedding request. Fallback
// decisions branch on Status explicitly instead of catching errors.
type EmbedResult struct {
	Status EmbedStatus
	Vector []float64
	Err    error
}

// EmbedVector wraps a successfully produced vector.
func EmbedVector(vec []float64) EmbedResult {
	return EmbedResult{Status: EmbedOK, Vector: vec}
}

// EmbedNotAvailable marks the provider as absent.
func EmbedNotAvailable() EmbedResult {
	return EmbedResult{Status: EmbedUnavailable}
}

// EmbedFailed marks a transient provider failure.
func EmbedFailed(err error) EmbedResult {
	return EmbedResult{Status: EmbedTransient, Err: err}
}

// OK reports whether a usable vector was produced.
func (r EmbedResult) OK() bool {
	return r.Status == EmbedOK && len(r.Vector) > 0
}

// VectorCellKind tags how an embedding is stored in a database cell.
type VectorCellKind int

const (
	// VectorMissing means no embedding has been stored for the row.
	VectorMissing VectorCellKind = iota
	// VectorNative means the cell came from a native pgvector column.
	VectorNative
	// VectorSerialized means the cell is a JSON-serialized float array in a
	// text column (schema fallback when the vector extension is absent).
	VectorSerialized
)

// VectorCell is the storage cell for a cached embedding. Both storage forms
// decode through the same path so callers never branch on column type.
type VectorCell struct {
	Kind VectorCellKind
	Raw  []byte
}

// NativeCell wraps a value scanned from a pgvector column.
func NativeCell(raw []byte) VectorCell {
	return VectorCell{Kind: VectorNative, Raw: raw}
}

// SerializedCell wraps a value scanned from a text column.
func SerializedCell(raw []byte) VectorCell {
	return VectorCell{Kind: VectorSerialized, Raw: raw}
}

// MissingCell is the empty cell.
func MissingCell() VectorCell {
	return VectorCell{Kind: VectorMissing}
}

// Decode parses the cell into a vector. A missing or unreadable cell decodes
// to (nil, false) and is treated as a cache miss, never an error.
func (c VectorCell) Decode() ([]float64, bool) {
	if c.Kind == VectorMissing || len(c.Raw) == 0 {
		return nil, false
	}

	switch c.Kind {
	case VectorSerialized:
		var vec []float64
		if err := json.Unmarshal(c.Raw, &vec); err != nil || len(vec) == 0 {
			return nil, false
		}
		return vec, true
	case VectorNative:
		return parseVectorLiteral(string(c.Raw))
	default:
		return nil, false
	}
}

// parseVectorLiteral parses the pgvector text representation "[1,2,3]".
func parseVectorLiteral(s string) ([]float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	body := s[1 : len(s)-1]
	if strings.TrimSpace(body) == "" {
		return nil, false
	}
	parts := strings.Split(body, ",")
	vec := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		vec = append(vec, f)
	}
	return vec, true
}

// EncodeVectorLiteral renders a vector in the pgvector text representation.
func EncodeVectorLiteral(vec []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}
