package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/recstream/internal/observability"
	"github.com/danmuck/recstream/internal/record"
)

var ErrSizeMismatch = errors.New("stream: serialized size differs from record size")

// Writer serializes records into an io.Writer.
type Writer struct {
	w     io.Writer
	count int
	n     int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteRecord(rec record.Record) error {
	buf := make([]byte, rec.Size())
	if err := serializeAt(buf, 0, rec); err != nil {
		return err
	}
	if _, err := w.w.Write(buf); err != nil {
		return err
	}
	w.count++
	w.n += int64(len(buf))
	observability.RecordWrite(len(buf))
	return nil
}

func (w *Writer) WriteAll(recs []record.Record) error {
	for _, rec := range recs {
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// Count is the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// BytesWritten is the number of bytes written so far.
func (w *Writer) BytesWritten() int64 {
	return w.n
}

// Encode lays recs out back to back in a single buffer.
func Encode(recs []record.Record) ([]byte, error) {
	total := 0
	for _, rec := range recs {
		total += rec.Size()
	}
	buf := make([]byte, total)
	offset := 0
	for _, rec := range recs {
		if err := serializeAt(buf, offset, rec); err != nil {
			return nil, err
		}
		offset += rec.Size()
	}
	return buf, nil
}

func serializeAt(buf []byte, offset int, rec record.Record) error {
	size := rec.Size()
	n, err := rec.Serialize(buf, offset)
	if err != nil {
		return fmt.Errorf("stream: serialize sid 0x%04X: %w", rec.Sid(), err)
	}
	if n != size {
		return fmt.Errorf("%w: sid 0x%04X wrote %d, size %d", ErrSizeMismatch, rec.Sid(), n, size)
	}
	return nil
}
