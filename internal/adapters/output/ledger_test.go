// internal/adapters/output/ledger_test.go
package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/platform/logx"
	"smsdedup/internal/testutil"
)

func sampleRemoval() domain.Removal {
	removed := domain.NewRecord(&domain.Element{
		Tag: "sms",
		Attrs: []domain.Attr{
			{Name: "address", Value: "5551234567"},
			{Name: "date", Value: "1680729606000"},
			{Name: "type", Value: "1"},
			{Name: "body", Value: "hello there"},
		},
	}, 1)
	kept := domain.NewRecord(&domain.Element{
		Tag: "sms",
		Attrs: []domain.Attr{
			{Name: "address", Value: "+15551234567"},
			{Name: "date", Value: "1680729606000"},
			{Name: "type", Value: "1"},
			{Name: "body", Value: "hello there"},
		},
	}, 0)

	return domain.Removal{
		Removed: domain.Snap(removed),
		Kept:    domain.Snap(kept),
	}
}

func TestLedgerWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dedup.log")

	w, err := NewLedgerWriter(path, logx.NewSilent())
	testutil.AssertNoError(t, err, "open ledger")

	testutil.AssertNoError(t, w.Write(sampleRemoval()), "write removal")
	testutil.AssertEqual(t, w.Entries(), 1, "entry counted")
	testutil.AssertNoError(t, w.Close(), "close ledger")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read log")
	content := string(data)

	t.Run("two stanzas per removal", func(t *testing.T) {
		testutil.AssertContains(t, content, "Removing sms:", "removed stanza header")
		testutil.AssertContains(t, content, "In favor of keeping sms:", "kept stanza header")
	})

	t.Run("field lines right-aligned", func(t *testing.T) {
		testutil.AssertContains(t, content, "    date: 1680729606000", "date line")
		testutil.AssertContains(t, content, "    body: hello there", "body line")
		testutil.AssertContains(t, content, " address: 5551234567", "address line")
	})

	t.Run("stanzas separated by blank line", func(t *testing.T) {
		testutil.AssertContains(t, content, "\n\nIn favor of keeping", "blank line between stanzas")
		testutil.AssertTrue(t, strings.HasSuffix(content, "\n\n"), "entry ends with blank line")
	})
}

func TestLedgerWriterLongValues(t *testing.T) {
	longBody := strings.Repeat("x", 2000)
	removed := domain.NewRecord(&domain.Element{
		Tag: "mms",
		Attrs: []domain.Attr{
			{Name: "address", Value: "+15551234567"},
			{Name: "date", Value: "1680729606000"},
			{Name: "body", Value: longBody},
		},
	}, 1)

	path := filepath.Join(t.TempDir(), "dedup.log")
	w, err := NewLedgerWriter(path, logx.NewSilent())
	testutil.AssertNoError(t, err, "open ledger")

	removal := domain.Removal{Removed: domain.Snap(removed), Kept: domain.Snap(removed)}
	testutil.AssertNoError(t, w.Write(removal), "write removal")
	testutil.AssertNoError(t, w.Close(), "close ledger")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read log")

	testutil.AssertContains(t, string(data), "<LENGTH 2000 OMISSION>", "long value reported by length")
	testutil.AssertFalse(t, strings.Contains(string(data), longBody), "content never dumped")
}

func TestLedgerWriterBadPath(t *testing.T) {
	_, err := NewLedgerWriter(filepath.Join(t.TempDir(), "missing", "dedup.log"), logx.NewSilent())
	testutil.AssertError(t, err, "unwritable path should fail")
}
