package mcpquic

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateMagicBytes(t *testing.T) {
	if err := ValidateMagicBytes(strings.NewReader("MCP1{}")); err != nil {
		t.Errorf("valid preamble rejected: %v", err)
	}

	err := ValidateMagicBytes(strings.NewReader("HTTP"))
	if !errors.Is(err, ErrInvalidMagicBytes) {
		t.Errorf("wrong preamble: got %v", err)
	}

	if err := ValidateMagicBytes(strings.NewReader("MC")); err == nil {
		t.Error("truncated preamble accepted")
	}
}
