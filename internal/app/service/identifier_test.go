package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValue string
		wantKind  IdentifierKind
	}{
		{
			name:      "checksummed address is lowercased",
			raw:       "0xD8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
			wantValue: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			wantKind:  IdentifierAddress,
		},
		{
			name:      "numeric fid",
			raw:       "3",
			wantValue: "3",
			wantKind:  IdentifierFID,
		},
		{
			name:      "farcaster username",
			raw:       "dwr.eth",
			wantValue: "dwr.eth",
			wantKind:  IdentifierUsername,
		},
		{
			name:      "username with leading at sign",
			raw:       "@Vitalik",
			wantValue: "vitalik",
			wantKind:  IdentifierUsername,
		},
		{
			name:      "x handle with prefix",
			raw:       "x:SomeHandle",
			wantValue: "somehandle",
			wantKind:  IdentifierXUsername,
		},
		{
			name:      "x handle with prefix and at sign",
			raw:       "X:@handle",
			wantValue: "handle",
			wantKind:  IdentifierXUsername,
		},
		{
			name:      "surrounding whitespace is trimmed",
			raw:       "  42  ",
			wantValue: "42",
			wantKind:  IdentifierFID,
		},
		{
			name:     "empty input",
			raw:      "",
			wantKind: IdentifierUnknown,
		},
		{
			name:     "bare x prefix",
			raw:      "x:",
			wantKind: IdentifierUnknown,
		},
		{
			name:     "bare at sign",
			raw:      "@",
			wantKind: IdentifierUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, kind := ClassifyIdentifier(tt.raw)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestIdentifierKindString(t *testing.T) {
	assert.Equal(t, "address", IdentifierAddress.String())
	assert.Equal(t, "fid", IdentifierFID.String())
	assert.Equal(t, "username", IdentifierUsername.String())
	assert.Equal(t, "x_username", IdentifierXUsername.String())
	assert.Equal(t, "unknown", IdentifierUnknown.String())
}
