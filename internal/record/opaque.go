package record

import (
	"fmt"
	"strings"

	"github.com/danmuck/recstream/internal/hexdump"
	"github.com/danmuck/recstream/internal/protocol/frame"
)

// Opaque is a record whose payload is kept and replayed verbatim. It is
// immutable once constructed.
type Opaque struct {
	sid  uint16
	data []byte
}

// NewOpaque builds an opaque record from an explicit sid and payload. Only
// the low 16 bits of sid are kept. data is copied.
func NewOpaque(sid int, data []byte) *Opaque {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Opaque{sid: uint16(sid & 0xFFFF), data: buf}
}

// ReadOpaque captures the current record of in and everything left in it.
func ReadOpaque(in Input) *Opaque {
	data := in.ReadRemainder()
	if data == nil {
		data = []byte{}
	}
	return &Opaque{sid: in.Sid(), data: data}
}

func (r *Opaque) Sid() uint16 {
	return r.sid
}

// Data returns a copy of the payload.
func (r *Opaque) Data() []byte {
	buf := make([]byte, len(r.data))
	copy(buf, r.data)
	return buf
}

func (r *Opaque) Name() Name {
	return Classify(r.sid)
}

func (r *Opaque) Size() int {
	return frame.HeaderLen + len(r.data)
}

// Serialize writes the record as is: sid, length, raw payload.
func (r *Opaque) Serialize(dst []byte, offset int) (int, error) {
	if err := putHeader(dst, offset, r.sid, len(r.data)); err != nil {
		return 0, err
	}
	copy(dst[offset+frame.HeaderLen:], r.data)
	return frame.HeaderLen + len(r.data), nil
}

// String renders the record as a tagged diagnostic block:
//
//	[SHEETPR] (0x81)
//	  rawData=01 02
//	[/SHEETPR]
func (r *Opaque) String() string {
	name := r.Name().Text
	if name == "" {
		name = unknownRecordName
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] (0x%s)\n", name, hexSid(r.sid))
	if len(r.data) > 0 {
		sb.WriteString("  rawData=")
		sb.WriteString(hexdump.ToHex(r.data))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "[/%s]\n", name)
	return sb.String()
}

// Clone returns r itself; there is nothing to mutate.
func (r *Opaque) Clone() Record {
	return r
}
