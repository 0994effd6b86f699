package composer

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestAnyToKeyString_Ints(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{int(0), "0"},
		{int(-999), "-999"},
		{int8(-128), "-128"},
		{int16(32767), "32767"},
		{int32(-2147483648), "-2147483648"},
		{int64(9223372036854775807), "9223372036854775807"},
		{int64(-9223372036854775808), "-9223372036854775808"},
	}

	for _, tc := range tests {
		result := anyToKeyString(tc.input)
		if result != tc.expected {
			t.Errorf("anyToKeyString(%v) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestAnyToKeyString_Uints(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{uint(42), "42"},
		{uint8(255), "255"},
		{uint16(65535), "65535"},
		{uint32(4294967295), "4294967295"},
		{uint64(18446744073709551615), "18446744073709551615"},
	}

	for _, tc := range tests {
		result := anyToKeyString(tc.input)
		if result != tc.expected {
			t.Errorf("anyToKeyString(%v) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestAnyToKeyString_CrossTypeEquivalence(t *testing.T) {
	// The same logical key must normalize identically whatever width
	// the driver scanned it as.
	keys := []any{int(7), int8(7), int16(7), int32(7), int64(7), uint(7), uint64(7)}
	for _, k := range keys {
		if got := anyToKeyString(k); got != "7" {
			t.Errorf("anyToKeyString(%T(7)) = %q, want %q", k, got, "7")
		}
	}
}

func TestAnyToKeyString_String(t *testing.T) {
	if got := anyToKeyString("abc-123"); got != "abc-123" {
		t.Errorf("anyToKeyString(string) = %q, want %q", got, "abc-123")
	}
	if got := anyToKeyString(""); got != "" {
		t.Errorf("anyToKeyString(empty string) = %q, want empty", got)
	}
}

func TestAnyToKeyString_Bytes(t *testing.T) {
	if got := anyToKeyString([]byte("raw")); got != "raw" {
		t.Errorf("anyToKeyString([]byte) = %q, want %q", got, "raw")
	}
}

func TestAnyToKeyString_UUID(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	if got := anyToKeyString(id); got != "550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("anyToKeyString(uuid) = %q", got)
	}
}

func TestAnyToKeyString_ByteArray(t *testing.T) {
	arr := [4]byte{'k', 'e', 'y', '1'}
	if got := anyToKeyString(arr); got != "key1" {
		t.Errorf("anyToKeyString([4]byte) = %q, want %q", got, "key1")
	}
}

type stringerKey struct{ id int }

func (s stringerKey) String() string { return fmt.Sprintf("sk-%d", s.id) }

func TestAnyToKeyString_Stringer(t *testing.T) {
	if got := anyToKeyString(stringerKey{id: 9}); got != "sk-9" {
		t.Errorf("anyToKeyString(Stringer) = %q, want %q", got, "sk-9")
	}
}

func TestAnyToKeyString_Fallback(t *testing.T) {
	if got := anyToKeyString(3.5); got != "3.5" {
		t.Errorf("anyToKeyString(float64) = %q, want %q", got, "3.5")
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple",
			input:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "Multiple",
			input:    "SELECT * FROM users WHERE name = ? AND age > ?",
			expected: "SELECT * FROM users WHERE name = $1 AND age > $2",
		},
		{
			name:     "Inside Quotes",
			input:    "SELECT * FROM users WHERE name = 'Question?' AND age = ?",
			expected: "SELECT * FROM users WHERE name = 'Question?' AND age = $1",
		},
		{
			name:     "Multiple Quotes",
			input:    "INSERT INTO t VALUES (?, 'Value?', ?, 'Another?')",
			expected: "INSERT INTO t VALUES ($1, 'Value?', $2, 'Another?')",
		},
		{
			name:     "No Placeholders",
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rebind(tt.input)
			if got != tt.expected {
				t.Errorf("rebind() = %q, want %q", got, tt.expected)
			}
		})
	}
}
