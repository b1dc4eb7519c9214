package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestEmbedResult_OK(t *testing.T) {
	if !EmbedVector([]float64{1, 2}).OK() {
		t.Error("expected vector result to be ok")
	}
	if EmbedVector(nil).OK() {
		t.Error("expected empty vector not ok")
	}
	if EmbedNotAvailable().OK() {
		t.Error("expected unavailable not ok")
	}
	res := EmbedFailed(errors.New("boom"))
	if res.OK() {
		t.Error("expected transient failure not ok")
	}
	if res.Status != EmbedTransient || res.Err == nil {
		t.Error("expected transient status with error")
	}
}

func TestVectorCell_Decode(t *testing.T) {
	tests := []struct {
		name string
		cell VectorCell
		want []float64
		ok   bool
	}{
		{"missing", MissingCell(), nil, false},
		{"native literal", NativeCell([]byte("[1,2.5,-3]")), []float64{1, 2.5, -3}, true},
		{"serialized json", SerializedCell([]byte("[0.1,0.2]")), []float64{0.1, 0.2}, true},
		{"native empty brackets", NativeCell([]byte("[]")), nil, false},
		{"native garbage", NativeCell([]byte("not a vector")), nil, false},
		{"serialized garbage", SerializedCell([]byte("{oops")), nil, false},
		{"serialized empty array", SerializedCell([]byte("[]")), nil, false},
		{"native empty raw", NativeCell(nil), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.Decode()
			if ok != tt.ok {
				t.Fatalf("Decode() ok = %v, want %v", ok, tt.ok)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorLiteralRoundTrip(t *testing.T) {
	vec := []float64{0.25, -1, 3.5}
	literal := EncodeVectorLiteral(vec)
	if literal != "[0.25,-1,3.5]" {
		t.Errorf("unexpected literal: %s", literal)
	}

	parsed, ok := parseVectorLiteral(literal)
	if !ok {
		t.Fatal("expected literal to parse")
	}
	if !reflect.DeepEqual(parsed, vec) {
		t.Errorf("round trip mismatch: %v != %v", parsed, vec)
	}
}

func TestParseVectorLiteral_Whitespace(t *testing.T) {
	parsed, ok := parseVectorLiteral("  [1, 2, 3]  ")
	if !ok {
		t.Fatal("expected literal with spaces to parse")
	}
	if len(parsed) != 3 || parsed[2] != 3 {
		t.Errorf("unexpected vector: %v", parsed)
	}
}
