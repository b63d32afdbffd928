package service

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IdentifierKind classifies the opaque account identifier a caller supplied.
type IdentifierKind int

const (
	// IdentifierUnknown means the input could not be classified.
	IdentifierUnknown IdentifierKind = iota
	// IdentifierAddress is an EVM wallet address.
	IdentifierAddress
	// IdentifierFID is a numeric Farcaster ID.
	IdentifierFID
	// IdentifierUsername is a Farcaster username.
	IdentifierUsername
	// IdentifierXUsername is an X (Twitter) handle, marked with an "x:" prefix.
	IdentifierXUsername
)

// String returns the kind name used in logs and error messages.
func (k IdentifierKind) String() string {
	switch k {
	case IdentifierAddress:
		return "address"
	case IdentifierFID:
		return "fid"
	case IdentifierUsername:
		return "username"
	case IdentifierXUsername:
		return "x_username"
	default:
		return "unknown"
	}
}

// ClassifyIdentifier normalizes a raw account identifier and decides what kind
// of lookup it needs. Hex addresses are lowercased; the "x:" prefix and a
// leading "@" are stripped from handles.
func ClassifyIdentifier(raw string) (string, IdentifierKind) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", IdentifierUnknown
	}

	if rest, ok := strings.CutPrefix(strings.ToLower(s), "x:"); ok {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "@"))
		if rest == "" {
			return "", IdentifierUnknown
		}
		return rest, IdentifierXUsername
	}

	if common.IsHexAddress(s) {
		return strings.ToLower(s), IdentifierAddress
	}

	if isAllDigits(s) {
		return s, IdentifierFID
	}

	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return "", IdentifierUnknown
	}
	return strings.ToLower(s), IdentifierUsername
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
