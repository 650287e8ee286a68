package record

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/danmuck/recstream/internal/protocol/frame"
)

const (
	SidEOF      uint16 = 0x000A
	SidCodePage uint16 = 0x0042
	SidCountry  uint16 = 0x008C
)

// EOF marks the end of a substream. It has no payload.
type EOF struct{}

func ReadEOF(in Input) (*EOF, error) {
	return &EOF{}, nil
}

func (r *EOF) Sid() uint16 { return SidEOF }
func (r *EOF) Size() int   { return frame.HeaderLen }

func (r *EOF) Serialize(dst []byte, offset int) (int, error) {
	if err := putHeader(dst, offset, SidEOF, 0); err != nil {
		return 0, err
	}
	return frame.HeaderLen, nil
}

func (r *EOF) String() string {
	return "[EOF]\n[/EOF]\n"
}

func (r *EOF) Clone() Record { return &EOF{} }

func (r *EOF) Rebuild(in Input) (Record, error) {
	return ReadEOF(in)
}

// CodePage holds the code page of byte strings in the workbook.
type CodePage struct {
	CodePage uint16
}

func ReadCodePage(in Input) (*CodePage, error) {
	cp, err := in.ReadUint16()
	if err != nil {
		return nil, err
	}
	return &CodePage{CodePage: cp}, nil
}

func (r *CodePage) Sid() uint16 { return SidCodePage }
func (r *CodePage) Size() int   { return frame.HeaderLen + 2 }

func (r *CodePage) Serialize(dst []byte, offset int) (int, error) {
	if err := putHeader(dst, offset, SidCodePage, 2); err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint16(dst[offset+frame.HeaderLen:], r.CodePage)
	return r.Size(), nil
}

func (r *CodePage) String() string {
	var sb strings.Builder
	sb.WriteString("[CODEPAGE]\n")
	fmt.Fprintf(&sb, "    .codepage        = 0x%04X\n", r.CodePage)
	sb.WriteString("[/CODEPAGE]\n")
	return sb.String()
}

func (r *CodePage) Clone() Record {
	c := *r
	return &c
}

func (r *CodePage) Rebuild(in Input) (Record, error) {
	return ReadCodePage(in)
}

// Country holds the default and current country codes.
type Country struct {
	DefaultCountry uint16
	CurrentCountry uint16
}

func ReadCountry(in Input) (*Country, error) {
	def, err := in.ReadUint16()
	if err != nil {
		return nil, err
	}
	cur, err := in.ReadUint16()
	if err != nil {
		return nil, err
	}
	return &Country{DefaultCountry: def, CurrentCountry: cur}, nil
}

func (r *Country) Sid() uint16 { return SidCountry }
func (r *Country) Size() int   { return frame.HeaderLen + 4 }

func (r *Country) Serialize(dst []byte, offset int) (int, error) {
	if err := putHeader(dst, offset, SidCountry, 4); err != nil {
		return 0, err
	}
	body := dst[offset+frame.HeaderLen:]
	binary.LittleEndian.PutUint16(body[0:2], r.DefaultCountry)
	binary.LittleEndian.PutUint16(body[2:4], r.CurrentCountry)
	return r.Size(), nil
}

func (r *Country) String() string {
	var sb strings.Builder
	sb.WriteString("[COUNTRY]\n")
	fmt.Fprintf(&sb, "    .defaultcountry  = 0x%04X\n", r.DefaultCountry)
	fmt.Fprintf(&sb, "    .currentcountry  = 0x%04X\n", r.CurrentCountry)
	sb.WriteString("[/COUNTRY]\n")
	return sb.String()
}

func (r *Country) Clone() Record {
	c := *r
	return &c
}

func (r *Country) Rebuild(in Input) (Record, error) {
	return ReadCountry(in)
}
