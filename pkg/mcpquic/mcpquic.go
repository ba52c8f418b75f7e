// Package mcpquic carries MCP JSON-RPC sessions over a QUIC stream:
// newline-delimited JSON-RPC messages after a magic-byte preamble.
// The chassis demuxes connections onto Handler by ALPN.
package mcpquic

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/quic-go/quic-go"
)

const (
	// ALPNProtocol is the TLS ALPN identifier for MCP-over-QUIC.
	ALPNProtocol = "budcare-mcp-v1"

	// MagicBytes open every MCP stream. Defense-in-depth against ALPN
	// confusion: a client on the wrong protocol fails immediately.
	MagicBytes = "MCP1"

	DefaultIdleTimeout = 5 * time.Minute
	DefaultKeepAlive   = 30 * time.Second
)

// QUIC stream-level error codes.
const (
	StreamErrorProtocolConfusion quic.StreamErrorCode = 0x02
)

// QUIC connection-level error codes.
const (
	ConnErrorUnsupportedALPN   quic.ApplicationErrorCode = 0x01
	ConnErrorProtocolViolation quic.ApplicationErrorCode = 0x03
)

var ErrInvalidMagicBytes = errors.New("invalid magic bytes: expected MCP1")

// ValidateMagicBytes reads and checks the stream preamble.
func ValidateMagicBytes(r io.Reader) error {
	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("read magic bytes: %w", err)
	}
	if !bytes.Equal(magic, []byte(MagicBytes)) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagicBytes, string(magic))
	}
	return nil
}
