package inspect

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	certerrors "github.com/tk-ops/certops/internal/errors"
	"github.com/tk-ops/certops/internal/executor"
	"github.com/tk-ops/certops/internal/openssl"
	"github.com/tk-ops/certops/internal/pemsplit"
)

const fullDump = `notBefore=Dec 18 05:36:21 2024 GMT
notAfter=Mar 18 05:36:21 2025 GMT
subject=CN=example.com
ABCD1234
X509v3 Subject Alternative Name:
    DNS:example.com, DNS:www.example.com, IP Address:192.0.2.1
issuer=C=US, O=Let's Encrypt, CN=R11
DEADBEEF
`

func TestParse(t *testing.T) {
	t.Run("full dump", func(t *testing.T) {
		rec := Parse(fullDump)

		if rec.NotBefore != "Dec 18 05:36:21 2024 GMT" {
			t.Errorf("NotBefore = %q", rec.NotBefore)
		}
		if rec.NotAfter != "Mar 18 05:36:21 2025 GMT" {
			t.Errorf("NotAfter = %q", rec.NotAfter)
		}
		if rec.Subject != "CN=example.com" {
			t.Errorf("Subject = %q", rec.Subject)
		}
		if rec.SubjectHash != "ABCD1234" {
			t.Errorf("SubjectHash = %q", rec.SubjectHash)
		}
		if rec.Issuer != "C=US, O=Let's Encrypt, CN=R11" {
			t.Errorf("Issuer = %q", rec.Issuer)
		}
		if rec.IssuerHash != "DEADBEEF" {
			t.Errorf("IssuerHash = %q", rec.IssuerHash)
		}

		wantSAN := []SAN{
			{Type: "DNS", Value: "example.com"},
			{Type: "DNS", Value: "www.example.com"},
			{Type: "IP Address", Value: "192.0.2.1"},
		}
		if !reflect.DeepEqual(rec.SAN, wantSAN) {
			t.Errorf("SAN = %v, want %v", rec.SAN, wantSAN)
		}
	})

	t.Run("subject hash consumed even when it matches another pattern", func(t *testing.T) {
		rec := Parse("subject=CN=example.com\nnotBefore=tricky\n")
		if rec.SubjectHash != "notBefore=tricky" {
			t.Errorf("SubjectHash = %q, want the literal following line", rec.SubjectHash)
		}
		if rec.NotBefore != "" {
			t.Errorf("NotBefore = %q, want empty", rec.NotBefore)
		}
	})

	t.Run("ipv6 SAN keeps colons in the value", func(t *testing.T) {
		rec := Parse(sanHeader + "\nIP Address:2001:DB8:0:0:0:0:0:1, DNS:example.com\n")
		wantSAN := []SAN{
			{Type: "IP Address", Value: "2001:DB8:0:0:0:0:0:1"},
			{Type: "DNS", Value: "example.com"},
		}
		if !reflect.DeepEqual(rec.SAN, wantSAN) {
			t.Errorf("SAN = %v, want %v", rec.SAN, wantSAN)
		}
	})

	t.Run("no SAN extension leaves SAN nil", func(t *testing.T) {
		rec := Parse("notBefore=Dec 18 05:36:21 2024 GMT\nnotAfter=Mar 18 05:36:21 2025 GMT\n")
		if rec.SAN != nil {
			t.Errorf("SAN = %v, want nil", rec.SAN)
		}
	})

	t.Run("empty dump yields empty record", func(t *testing.T) {
		rec := Parse("")
		if !reflect.DeepEqual(rec, &Record{}) {
			t.Errorf("expected zero record, got %+v", rec)
		}
	})

	t.Run("unknown lines ignored", func(t *testing.T) {
		rec := Parse("Some: future output\nnotAfter=Mar 18 05:36:21 2025 GMT\nTrailer\n")
		if rec.NotAfter != "Mar 18 05:36:21 2025 GMT" {
			t.Errorf("NotAfter = %q", rec.NotAfter)
		}
		if rec.Subject != "" || rec.Issuer != "" {
			t.Errorf("unexpected fields set: %+v", rec)
		}
	})

	t.Run("indented fields are trimmed", func(t *testing.T) {
		rec := Parse("    subject=CN=indent.example.com\n    HASH\n")
		if rec.Subject != "CN=indent.example.com" {
			t.Errorf("Subject = %q", rec.Subject)
		}
		if rec.SubjectHash != "HASH" {
			t.Errorf("SubjectHash = %q", rec.SubjectHash)
		}
	})
}

func TestExtract(t *testing.T) {
	defer openssl.ResetExecutor()

	block := pemsplit.Block("-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----")

	t.Run("dump parsed into record", func(t *testing.T) {
		openssl.SetExecutor(&executor.MockExecutor{
			RunFunc: func(stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
				return []byte(fullDump), nil, nil
			},
		})

		rec, err := Extract(block)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if rec.Subject != "CN=example.com" {
			t.Errorf("Subject = %q", rec.Subject)
		}
		if len(rec.SAN) != 3 {
			t.Errorf("expected 3 SAN entries, got %d", len(rec.SAN))
		}
	})

	t.Run("tool failure propagates, no partial record", func(t *testing.T) {
		openssl.SetExecutor(&executor.MockExecutor{
			RunFunc: func(stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
				return nil, []byte("unable to load certificate"), errors.New("exit status 1")
			},
		})

		rec, err := Extract(block)
		if err == nil {
			t.Fatal("expected error")
		}
		if rec != nil {
			t.Errorf("expected nil record on tool failure, got %+v", rec)
		}
		var certErr *certerrors.CertError
		if !certerrors.As(err, &certErr) || certErr.Code != certerrors.ErrCodeTool {
			t.Errorf("expected TOOL error, got %v", err)
		}
		if !strings.Contains(err.Error(), "unable to load certificate") {
			t.Errorf("expected tool stderr in error, got %q", err.Error())
		}
	})
}
