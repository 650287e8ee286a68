package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/recstream/internal/config"
	"github.com/danmuck/recstream/internal/protocol/frame"
	"github.com/danmuck/recstream/internal/record"
	"github.com/danmuck/recstream/internal/testutil/testlog"
)

func sample() []byte {
	return []byte{
		0x42, 0x00, 0x02, 0x00, 0xB0, 0x04, // CODEPAGE
		0x81, 0x00, 0x02, 0x00, 0x01, 0x02, // SHEETPR
		0x33, 0x00, 0x00, 0x00, // observed
		0xCD, 0xAB, 0x01, 0x00, 0xFF, // unknown
		0x0A, 0x00, 0x00, 0x00, // EOF
	}
}

func TestDumpRendersOpaqueRecordsOnly(t *testing.T) {
	testlog.Start(t)

	cfg := config.Default()
	cfg.VerifyRoundTrip = true
	var out bytes.Buffer
	recs, sum, err := dump(sample(), cfg, &out)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(recs))
	}
	text := out.String()
	for _, want := range []string{"[SHEETPR] (0x81)", "rawData=01 02", "[UNKNOWN-33] (0x33)", "[UNKNOWNRECORD] (0xABCD)", "#3 @16"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "[CODEPAGE]") {
		t.Fatalf("structured record rendered in opaque mode:\n%s", text)
	}
	if got := sum.String(); got != "records=5 structured=2 documented=1 observed=1 unknown=1 bytes=25" {
		t.Fatalf("unexpected summary: %s", got)
	}
}

func TestDumpRenderModes(t *testing.T) {
	cfg := config.Default()
	cfg.Render = config.RenderAll
	var out bytes.Buffer
	if _, _, err := dump(sample(), cfg, &out); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out.String(), "[CODEPAGE]") || !strings.Contains(out.String(), "[EOF]") {
		t.Fatalf("expected structured renders in all mode:\n%s", out.String())
	}

	cfg.Render = config.RenderNone
	out.Reset()
	if _, _, err := dump(sample(), cfg, &out); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output in none mode, got %q", out.String())
	}
}

func TestDumpMaxRecordsVerifiesPrefix(t *testing.T) {
	cfg := config.Default()
	cfg.MaxRecords = 2
	cfg.VerifyRoundTrip = true
	recs, sum, err := dump(sample(), cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(recs) != 2 || sum.Bytes != 12 {
		t.Fatalf("expected 2 records / 12 bytes, got %d / %d", len(recs), sum.Bytes)
	}
}

func TestDumpPayloadLimit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPayloadBytes = 1
	_, _, err := dump(sample(), cfg, &bytes.Buffer{})
	if !errors.Is(err, frame.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestVerifyReportsFirstDifference(t *testing.T) {
	recs := []record.Record{record.NewOpaque(0x0081, []byte{0x01, 0x02})}
	err := verify([]byte{0x81, 0x00, 0x02, 0x00, 0x01, 0x03}, recs)
	if !errors.Is(err, ErrRoundTripMismatch) || !strings.Contains(err.Error(), "offset 5") {
		t.Fatalf("expected mismatch at offset 5, got %v", err)
	}
}

func TestDumpRenderModeListsOpaquePayloads(t *testing.T) {
	cfg := config.Default()
	cfg.Render = config.RenderDump
	var out bytes.Buffer
	if _, _, err := dump(sample(), cfg, &out); err != nil {
		t.Fatalf("dump: %v", err)
	}
	text := out.String()
	for _, want := range []string{"[SHEETPR] (0x81)\n00000000  01 02", "[/SHEETPR]", "[UNKNOWN-33] (0x33)\n[/UNKNOWN-33]"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "rawData=") || strings.Contains(text, "[CODEPAGE]") {
		t.Fatalf("unexpected one-line or structured render in dump mode:\n%s", text)
	}
}

func TestWriteMetricsExportsDecodeCounters(t *testing.T) {
	if _, _, err := dump(sample(), config.Default(), &bytes.Buffer{}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	path := filepath.Join(t.TempDir(), "recdump.prom")
	if err := writeMetrics(path); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, want := range []string{
		`recstream_decoder_records_total{kind="opaque",tier="unknown"}`,
		`recstream_decoder_records_total{kind="opaque",tier="documented"}`,
		`recstream_decoder_opaque_payload_bytes_total{tier="observed"}`,
	} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s in metrics file:\n%s", want, data)
		}
	}
}

func TestWriteMetricsEmptyPathIsNoop(t *testing.T) {
	if err := writeMetrics(""); err != nil {
		t.Fatalf("expected no error for empty path, got %v", err)
	}
}
