// Package stream adapts an io.Reader/io.Writer pair to the record package:
// it walks record frames on read and lays serialized records into a sink on
// write.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/recstream/internal/protocol/frame"
	"github.com/danmuck/recstream/internal/record"
)

var (
	ErrNoRecord  = errors.New("stream: no current record")
	ErrShortRead = errors.New("stream: read past end of record")
)

// Reader walks a record stream one frame at a time. After a successful Next
// it satisfies record.Input for the current frame.
type Reader struct {
	r      io.Reader
	limits frame.Limits

	cur    frame.Frame
	pos    int
	loaded bool

	index  int
	offset int64
	next   int64
}

func NewReader(r io.Reader) *Reader {
	return NewReaderLimits(r, frame.DefaultLimits())
}

func NewReaderLimits(r io.Reader, limits frame.Limits) *Reader {
	return &Reader{r: r, limits: limits, index: -1}
}

// Next advances to the following record. It returns false with a nil error
// at a clean end of stream. Unread bytes of the previous record are skipped.
func (s *Reader) Next() (bool, error) {
	f, err := frame.ReadFrame(s.r, s.limits)
	if err != nil {
		s.loaded = false
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("stream: record %d at offset %d: %w", s.index+1, s.next, err)
	}
	s.cur = f
	s.pos = 0
	s.loaded = true
	s.index++
	s.offset = s.next
	s.next += int64(frame.HeaderLen + len(f.Payload))
	return true, nil
}

func (s *Reader) Sid() uint16 {
	return s.cur.Header.Sid
}

// Remaining is the number of unread payload bytes in the current record.
func (s *Reader) Remaining() int {
	if !s.loaded {
		return 0
	}
	return len(s.cur.Payload) - s.pos
}

func (s *Reader) ReadUint16() (uint16, error) {
	if !s.loaded {
		return 0, ErrNoRecord
	}
	if s.Remaining() < 2 {
		return 0, fmt.Errorf("%w: sid 0x%04X needs 2 bytes, %d left", ErrShortRead, s.Sid(), s.Remaining())
	}
	v := binary.LittleEndian.Uint16(s.cur.Payload[s.pos:])
	s.pos += 2
	return v, nil
}

// ReadRemainder consumes and returns a copy of the unread payload.
func (s *Reader) ReadRemainder() []byte {
	if !s.loaded {
		return []byte{}
	}
	out := make([]byte, len(s.cur.Payload)-s.pos)
	copy(out, s.cur.Payload[s.pos:])
	s.pos = len(s.cur.Payload)
	return out
}

// Index is the zero-based position of the current record in the stream.
func (s *Reader) Index() int {
	return s.index
}

// Offset is the byte offset of the current record header.
func (s *Reader) Offset() int64 {
	return s.offset
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader, dec *record.Decoder) ([]record.Record, error) {
	sr := NewReader(r)
	var out []record.Record
	for {
		ok, err := sr.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		rec, err := dec.Decode(sr)
		if err != nil {
			return nil, fmt.Errorf("stream: record %d at offset %d: %w", sr.Index(), sr.Offset(), err)
		}
		out = append(out, rec)
	}
}
