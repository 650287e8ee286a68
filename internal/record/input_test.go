package record

import (
	"encoding/binary"
	"errors"
)

var errShortInput = errors.New("test input: short read")

// frameInput is an Input over one in-memory payload.
type frameInput struct {
	sid  uint16
	data []byte
	pos  int
}

func newFrameInput(sid uint16, data []byte) *frameInput {
	return &frameInput{sid: sid, data: data}
}

func (f *frameInput) Sid() uint16    { return f.sid }
func (f *frameInput) Remaining() int { return len(f.data) - f.pos }

func (f *frameInput) ReadUint16() (uint16, error) {
	if f.Remaining() < 2 {
		return 0, errShortInput
	}
	v := binary.LittleEndian.Uint16(f.data[f.pos:])
	f.pos += 2
	return v, nil
}

func (f *frameInput) ReadRemainder() []byte {
	out := make([]byte, f.Remaining())
	copy(out, f.data[f.pos:])
	f.pos = len(f.data)
	return out
}
