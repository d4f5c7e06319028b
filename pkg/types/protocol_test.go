package types

import (
	"errors"
	"testing"
)

func TestProtocolID_String(t *testing.T) {
	proto := ProtocolID("/plaintext/1.0.0")
	if proto.String() != "/plaintext/1.0.0" {
		t.Errorf("String() = %q", proto.String())
	}
}

func TestProtocolID_IsEmpty(t *testing.T) {
	empty := ProtocolID("")
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for empty")
	}

	proto := ProtocolID("/test")
	if proto.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty")
	}
}

func TestProtocolID_Version(t *testing.T) {
	tests := []struct {
		proto ProtocolID
		want  string
	}{
		{"/plaintext/1.0.0", "1.0.0"},
		{"/yamux/1.0.0", "1.0.0"},
		{"/noise", "noise"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.proto), func(t *testing.T) {
			if got := tt.proto.Version(); got != tt.want {
				t.Errorf("Version() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProtocolID_Validate(t *testing.T) {
	tests := []struct {
		proto ProtocolID
		want  error
	}{
		{"/noise", nil},
		{"", ErrEmptyProtocolID},
		{"noise", ErrInvalidProtocolID},
		{"/bad\nname", ErrInvalidProtocolID},
	}

	for _, tt := range tests {
		t.Run(string(tt.proto), func(t *testing.T) {
			if err := tt.proto.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExact(t *testing.T) {
	if !Exact("/noise", "/noise") {
		t.Error("Exact() = false for equal names")
	}
	if Exact("/noise", "/Noise") {
		t.Error("Exact() = true for names differing in case")
	}
}
