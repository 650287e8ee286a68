// Package record holds the record family of the stream: structured records,
// the opaque fallback for sids nothing else understands, and the catalog used
// to name them in diagnostics.
package record

import (
	"errors"
	"fmt"

	"github.com/danmuck/recstream/internal/protocol/frame"
)

var (
	ErrUnsupportedReconstruction = errors.New("record: cannot reconstruct opaque record generically")
	ErrFrameLengthOverflow       = errors.New("record: payload exceeds 16-bit length field")
	ErrRecordLength              = errors.New("record: payload length does not match record layout")
	ErrSidMismatch               = errors.New("record: input positioned on a different sid")
)

// Input is the read side of the stream adapter, positioned on one record.
type Input interface {
	Sid() uint16
	Remaining() int
	ReadUint16() (uint16, error)
	// ReadRemainder consumes the rest of the current record. The returned
	// slice is owned by the caller.
	ReadRemainder() []byte
}

// Record is implemented by every record kind in the stream.
type Record interface {
	Sid() uint16
	// Size is the encoded size including the 4-byte header.
	Size() int
	// Serialize writes the record at dst[offset:] and returns Size().
	Serialize(dst []byte, offset int) (int, error)
	String() string
	Clone() Record
}

// Rebuilder is implemented by records that can be rebuilt from a frame
// positioned on their sid.
type Rebuilder interface {
	Rebuild(in Input) (Record, error)
}

// Rebuild re-reads rec from in. Records without a structural model fail
// with ErrUnsupportedReconstruction.
func Rebuild(rec Record, in Input) (Record, error) {
	rb, ok := rec.(Rebuilder)
	if !ok {
		return nil, fmt.Errorf("%w: sid 0x%04X", ErrUnsupportedReconstruction, rec.Sid())
	}
	if in.Sid() != rec.Sid() {
		return nil, fmt.Errorf("%w: want 0x%04X, got 0x%04X", ErrSidMismatch, rec.Sid(), in.Sid())
	}
	out, err := rb.Rebuild(in)
	if err != nil {
		return nil, err
	}
	if n := in.Remaining(); n != 0 {
		return nil, fmt.Errorf("%w: sid 0x%04X left %d bytes unread", ErrRecordLength, rec.Sid(), n)
	}
	return out, nil
}

// putHeader validates the destination and payload size, then writes the
// record header at dst[offset:].
func putHeader(dst []byte, offset int, sid uint16, payloadLen int) error {
	if err := frame.CheckLength(sid, payloadLen); err != nil {
		return fmt.Errorf("%w: %w", ErrFrameLengthOverflow, err)
	}
	if offset < 0 || len(dst)-offset < frame.HeaderLen+payloadLen {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			frame.ErrInsufficientDest, frame.HeaderLen+payloadLen, offset, len(dst)-offset)
	}
	frame.PutHeader(dst[offset:], frame.Header{Sid: sid, Length: uint16(payloadLen)})
	return nil
}
