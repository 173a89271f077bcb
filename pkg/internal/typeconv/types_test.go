package typeconv

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	ts := time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "None"},
		{"text", "Town Hall", "Town Hall"},
		{"bytes", []byte("raw"), "raw"},
		{"int64", int64(3), "3"},
		{"negative int", -12, "-12"},
		{"uint8", uint8(7), "7"},
		{"real", 2.5, "2.5"},
		{"integral real", 3.0, "3.0"},
		{"large integral real", 1500000.0, "1500000.0"},
		{"large fractional real", 2500000.5, "2500000.5"},
		{"zero real", 0.0, "0.0"},
		{"small real", 0.0001, "0.0001"},
		{"tiny real", 0.00001, "1e-05"},
		{"huge real", 1e16, "1e+16"},
		{"negative real", -1234567.25, "-1234567.25"},
		{"float32", float32(0.25), "0.25"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"time", ts, "2026-02-01T18:30:00Z"},
		{"stringer", big.NewInt(12345678901), "12345678901"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToText(tt.in, "None"))
		})
	}
}

func TestToText_CustomNull(t *testing.T) {
	assert.Equal(t, "null", ToText(nil, "null"))
}

func TestParseField(t *testing.T) {
	assert.Nil(t, ParseField(""))
	assert.Equal(t, int64(42), ParseField("42"))
	assert.Equal(t, int64(-7), ParseField("-7"))
	assert.Equal(t, 12.75, ParseField("12.75"))
	assert.Equal(t, 1e3, ParseField("1e3"))
	assert.Equal(t, "Infinity", ParseField("Infinity"))
	assert.Equal(t, "NaN", ParseField("NaN"))
	assert.Equal(t, "2026-02-01", ParseField("2026-02-01"))
	assert.Equal(t, "Library", ParseField("Library"))
}
