// internal/adapters/backupxml/writer_test.go
package backupxml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/platform/logx"
	"smsdedup/internal/testutil"
)

func TestWriterWrite(t *testing.T) {
	r := NewReader(logx.NewSilent())
	records, err := r.Read(context.Background(), writeFixture(t, sampleBackup))
	testutil.AssertNoError(t, err, "read should succeed")

	// Simula una pasada que eliminó el segundo sms
	result := domain.NewRunResult()
	result.Survivors = []*domain.Record{records[0], records[2]}
	result.Counts[domain.KindSMS] = domain.KindCount{Original: 2, Removed: 1, Final: 1}
	result.Counts[domain.KindMMS] = domain.KindCount{Original: 1, Removed: 0, Final: 1}

	out := filepath.Join(t.TempDir(), "out.xml")
	w := NewWriter(r.Root(), logx.NewSilent())
	testutil.AssertNoError(t, w.Write(out, result), "write should succeed")

	data, err := os.ReadFile(out)
	testutil.AssertNoError(t, err, "read output")
	content := string(data)

	t.Run("declaration and root", func(t *testing.T) {
		testutil.AssertTrue(t, strings.HasPrefix(content, "<?xml version='1.0' encoding='UTF-8' standalone='yes'?>"),
			"exact declaration required by restore utilities")
		testutil.AssertContains(t, content, `count="2"`, "count rewritten to survivor total")
		testutil.AssertContains(t, content, `backup_set="abc"`, "root attrs preserved")
	})

	t.Run("survivors re-emitted, removed dropped", func(t *testing.T) {
		testutil.AssertEqual(t, strings.Count(content, "<sms "), 1, "one sms survivor")
		testutil.AssertEqual(t, strings.Count(content, "<mms "), 1, "one mms survivor")
		testutil.AssertContains(t, content, `body="hello there"`, "sms body intact")
		testutil.AssertContains(t, content, `data="aGVsbG8="`, "part payload intact")
	})

	t.Run("ids renumbered", func(t *testing.T) {
		testutil.AssertContains(t, content, `_id="0"`, "mms _id renumbered from zero")
		testutil.AssertFalse(t, strings.Contains(content, `_id="12"`), "original _id gone")
	})

	t.Run("roundtrip parses", func(t *testing.T) {
		r2 := NewReader(logx.NewSilent())
		reread, err := r2.Read(context.Background(), out)
		testutil.AssertNoError(t, err, "output should parse")
		testutil.AssertLen(t, reread, 2, "two records after rewrite")
	})
}

func TestWriterEscapesAttributes(t *testing.T) {
	rec := domain.NewRecord(&domain.Element{
		Tag: "sms",
		Attrs: []domain.Attr{
			{Name: "address", Value: "+15551234567"},
			{Name: "date", Value: "1680729606000"},
			{Name: "body", Value: `a < b & "c" > d`},
		},
	}, 0)

	result := domain.NewRunResult()
	result.Survivors = []*domain.Record{rec}

	out := filepath.Join(t.TempDir(), "out.xml")
	w := NewWriter(nil, logx.NewSilent())
	testutil.AssertNoError(t, w.Write(out, result), "write should succeed")

	data, err := os.ReadFile(out)
	testutil.AssertNoError(t, err, "read output")
	content := string(data)

	testutil.AssertContains(t, content, "&lt;", "< escaped")
	testutil.AssertContains(t, content, "&amp;", "& escaped")
	testutil.AssertContains(t, content, "&#34;", "quote escaped")

	r := NewReader(logx.NewSilent())
	reread, err := r.Read(context.Background(), out)
	testutil.AssertNoError(t, err, "escaped output should parse")
	testutil.AssertEqual(t, reread[0].Body.OrZero(), `a < b & "c" > d`, "body survives roundtrip")
}
