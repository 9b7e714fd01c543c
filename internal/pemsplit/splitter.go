// Package pemsplit extracts PEM certificate blocks from raw text.
//
// The input is whatever an openssl capture produces: certificate blocks
// surrounded by arbitrary banner noise (s_client connection details,
// cipher negotiation output, trailing session data). Only the text
// between matching BEGIN/END CERTIFICATE delimiters survives.
package pemsplit

import (
	"bufio"
	"io"
	"strings"
)

// PEM delimiter lines for X.509 certificates.
const (
	BeginMarker = "-----BEGIN CERTIFICATE-----"
	EndMarker   = "-----END CERTIFICATE-----"
)

// Block is one PEM-encoded certificate, delimiter lines included.
// It is a verbatim span of the source text and is never re-encoded.
type Block string

// Split scans r line by line and returns every complete certificate
// block in source order. The first block in a captured chain is the
// leaf certificate.
//
// Text outside a BEGIN/END pair is discarded. A trailing BEGIN with no
// matching END yields no block for that fragment. Empty input yields
// zero blocks and no error.
func Split(r io.Reader) ([]Block, error) {
	var (
		blocks []Block
		buf    strings.Builder
		inside bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if !inside {
			if trimmed == BeginMarker {
				inside = true
				buf.WriteString(line)
				buf.WriteByte('\n')
			}
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		if trimmed == EndMarker {
			blocks = append(blocks, Block(strings.TrimSpace(buf.String())))
			buf.Reset()
			inside = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A dangling BEGIN without its END is dropped, not an error.
	return blocks, nil
}

// SplitString splits an in-memory capture. Same state machine as Split,
// different line sourcing.
func SplitString(s string) ([]Block, error) {
	return Split(strings.NewReader(s))
}
