package stream

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/recstream/internal/protocol/frame"
	"github.com/danmuck/recstream/internal/record"
	"github.com/danmuck/recstream/internal/testutil/testlog"
)

// A small worksheet-like stream mixing structured and opaque records.
func sampleStream() []byte {
	return []byte{
		0x42, 0x00, 0x02, 0x00, 0xB0, 0x04, // CODEPAGE 1200
		0x81, 0x00, 0x02, 0x00, 0x01, 0x02, // SHEETPR
		0x33, 0x00, 0x00, 0x00, // observed 0x33, empty
		0xCD, 0xAB, 0x01, 0x00, 0xFF, // unknown 0xABCD
		0x8C, 0x00, 0x04, 0x00, 0x01, 0x00, 0x31, 0x00, // COUNTRY
		0x0A, 0x00, 0x00, 0x00, // EOF
	}
}

func TestReadAllThenEncodeIsByteIdentical(t *testing.T) {
	testlog.Start(t)

	in := sampleStream()
	recs, err := ReadAll(bytes.NewReader(in), record.NewDecoder(false))
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(recs) != 6 {
		t.Fatalf("expected 6 records, got %d", len(recs))
	}
	if _, ok := recs[1].(*record.Opaque); !ok {
		t.Fatalf("expected SHEETPR to be opaque, got %T", recs[1])
	}
	if _, ok := recs[4].(*record.Country); !ok {
		t.Fatalf("expected COUNTRY to be structured, got %T", recs[4])
	}

	out, err := Encode(recs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("round trip mismatch:\n got=% X\nwant=% X", out, in)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteAll(recs); err != nil {
		t.Fatalf("write all: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), in) {
		t.Fatalf("writer output mismatch")
	}
	if w.Count() != 6 || w.BytesWritten() != int64(len(in)) {
		t.Fatalf("unexpected writer totals: count=%d bytes=%d", w.Count(), w.BytesWritten())
	}
}

func TestReaderTracksIndexAndOffset(t *testing.T) {
	r := NewReader(bytes.NewReader(sampleStream()))
	wantOffsets := []int64{0, 6, 12, 16, 21, 29}
	for i, want := range wantOffsets {
		ok, err := r.Next()
		if err != nil || !ok {
			t.Fatalf("record %d: ok=%v err=%v", i, ok, err)
		}
		if r.Index() != i || r.Offset() != want {
			t.Fatalf("record %d: index=%d offset=%d, want offset %d", i, r.Index(), r.Offset(), want)
		}
	}
	ok, err := r.Next()
	if ok || err != nil {
		t.Fatalf("expected clean end of stream, got ok=%v err=%v", ok, err)
	}
}

func TestReaderInputContract(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x81, 0x00, 0x03, 0x00, 0x01, 0x02, 0x03}))
	if _, err := r.ReadUint16(); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord before Next, got %v", err)
	}
	if ok, err := r.Next(); !ok || err != nil {
		t.Fatalf("next: ok=%v err=%v", ok, err)
	}
	if r.Sid() != 0x0081 || r.Remaining() != 3 {
		t.Fatalf("unexpected frame state: sid=0x%X remaining=%d", r.Sid(), r.Remaining())
	}
	v, err := r.ReadUint16()
	if err != nil || v != 0x0201 {
		t.Fatalf("expected 0x0201, got 0x%X err=%v", v, err)
	}
	if _, err := r.ReadUint16(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	rest := r.ReadRemainder()
	if !bytes.Equal(rest, []byte{0x03}) || r.Remaining() != 0 {
		t.Fatalf("unexpected remainder % X (remaining %d)", rest, r.Remaining())
	}
}

func TestReadAllTruncatedStream(t *testing.T) {
	in := sampleStream()
	_, err := ReadAll(bytes.NewReader(in[:len(in)-2]), record.NewDecoder(false))
	if !errors.Is(err, frame.ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
	if !strings.Contains(err.Error(), "record 5") {
		t.Fatalf("expected error to name the failing record, got %v", err)
	}
}

func TestWriterRejectsOversizedOpaque(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).WriteRecord(record.NewOpaque(0x00FC, make([]byte, frame.MaxPayloadLen+1)))
	if !errors.Is(err, record.ErrFrameLengthOverflow) {
		t.Fatalf("expected ErrFrameLengthOverflow, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %d bytes", buf.Len())
	}
}

type lyingRecord struct{ record.Record }

func (l lyingRecord) Size() int { return l.Record.Size() + 1 }

func TestEncodeDetectsSizeMismatch(t *testing.T) {
	_, err := Encode([]record.Record{lyingRecord{record.NewOpaque(0x0081, []byte{1})}})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestOpaqueRoundTripThroughStream(t *testing.T) {
	payload := make([]byte, frame.MaxPayloadLen)
	for i := range payload {
		payload[i] = byte(i)
	}
	in := []record.Record{
		record.NewOpaque(0x1FFFF, payload),
		record.NewOpaque(0x0033, nil),
	}
	wire, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := ReadAll(bytes.NewReader(wire), record.NewDecoder(false))
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	big := out[0].(*record.Opaque)
	if big.Sid() != 0xFFFF || !bytes.Equal(big.Data(), payload) {
		t.Fatalf("large opaque record did not survive round trip")
	}
	if out[1].Size() != 4 {
		t.Fatalf("expected empty opaque size 4, got %d", out[1].Size())
	}
}
