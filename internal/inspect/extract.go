// Package inspect turns the textual dump of one certificate into a
// structured record.
//
// openssl x509 emits its fields as loosely formatted lines, and two of
// them are positional: the subject hash is the line immediately after
// subject=, the issuer hash the line after issuer=, and the SAN list
// the line after the extension header. The parser is a small state
// machine so those one-shot "next line belongs to the previous one"
// rules cannot overlap.
package inspect

import (
	"strings"

	"github.com/tk-ops/certops/internal/openssl"
	"github.com/tk-ops/certops/internal/pemsplit"
)

// SAN is one Subject Alternative Name entry, e.g. {DNS example.com}.
type SAN struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Record is the structured result for one certificate. Every field is
// independently optional: a certificate without a SAN extension is not
// a parse failure, it just has no SAN list.
type Record struct {
	NotBefore   string `json:"notBefore,omitempty"`
	NotAfter    string `json:"notAfter,omitempty"`
	Subject     string `json:"subject,omitempty"`
	SubjectHash string `json:"subjectHash,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	IssuerHash  string `json:"issuerHash,omitempty"`
	SAN         []SAN  `json:"san,omitempty"`
}

// sanHeader is the extension header line emitted before the SAN list.
const sanHeader = "X509v3 Subject Alternative Name:"

// parseState tracks which positional line the parser is waiting for.
// Exactly one of the awaits can be armed at a time.
type parseState int

const (
	stateIdle parseState = iota
	stateAwaitSubjectHash
	stateAwaitIssuerHash
	stateAwaitSAN
)

// Parse reads an openssl x509 field dump into a Record. Lines that
// match no known pattern are ignored, so additional tool output is
// harmless. Unset fields stay empty; that is never an error.
func Parse(dump string) *Record {
	rec := &Record{}
	state := stateIdle

	for _, line := range strings.Split(dump, "\n") {
		trimmed := strings.TrimSpace(line)

		// An armed state always consumes the next line, even one
		// that would otherwise match a field prefix: the tool's
		// output order guarantees hash-follows-name.
		switch state {
		case stateAwaitSubjectHash:
			rec.SubjectHash = trimmed
			state = stateIdle
			continue
		case stateAwaitIssuerHash:
			rec.IssuerHash = trimmed
			state = stateIdle
			continue
		case stateAwaitSAN:
			rec.SAN = parseSANList(trimmed)
			state = stateIdle
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "notBefore="):
			rec.NotBefore = strings.TrimPrefix(trimmed, "notBefore=")
		case strings.HasPrefix(trimmed, "notAfter="):
			rec.NotAfter = strings.TrimPrefix(trimmed, "notAfter=")
		case strings.HasPrefix(trimmed, "subject="):
			rec.Subject = strings.TrimPrefix(trimmed, "subject=")
			state = stateAwaitSubjectHash
		case strings.HasPrefix(trimmed, "issuer="):
			rec.Issuer = strings.TrimPrefix(trimmed, "issuer=")
			state = stateAwaitIssuerHash
		case strings.HasPrefix(trimmed, sanHeader):
			state = stateAwaitSAN
		}
	}

	return rec
}

// parseSANList splits "DNS:a.example.com, IP Address:192.0.2.1" into
// ordered entries. Only the first colon separates type from value;
// IPv6 values contain colons of their own.
func parseSANList(line string) []SAN {
	var sans []SAN
	for _, term := range strings.Split(line, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		parts := strings.SplitN(term, ":", 2)
		entry := SAN{Type: parts[0]}
		if len(parts) == 2 {
			entry.Value = parts[1]
		}
		sans = append(sans, entry)
	}
	return sans
}

// Extract runs the external field dump for one PEM block and parses
// the result. A non-zero exit from the tool means the certificate
// itself was unparseable and surfaces as a TOOL error.
func Extract(block pemsplit.Block) (*Record, error) {
	dump, err := openssl.DumpFields(block)
	if err != nil {
		return nil, err
	}
	return Parse(dump), nil
}
