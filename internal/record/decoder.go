package record

import (
	"fmt"

	"github.com/danmuck/recstream/internal/observability"
	"github.com/rs/zerolog/log"
)

// ReadFunc decodes one structured record from an input positioned on its sid.
type ReadFunc func(in Input) (Record, error)

var structuredReaders = map[uint16]ReadFunc{
	SidEOF:      func(in Input) (Record, error) { return ReadEOF(in) },
	SidCodePage: func(in Input) (Record, error) { return ReadCodePage(in) },
	SidCountry:  func(in Input) (Record, error) { return ReadCountry(in) },
}

// StructuredSids lists the sids decoded into structured records.
func StructuredSids() []uint16 {
	sids := make([]uint16, 0, len(structuredReaders))
	for sid := range structuredReaders {
		sids = append(sids, sid)
	}
	return sids
}

// Decoder turns the current record of an Input into a Record. Sids without
// a structured reader become Opaque records.
type Decoder struct {
	// Diagnostics warns about unknown sids in the chart sub-record window,
	// which usually means a sub-record leaked into the top-level stream.
	Diagnostics bool
}

func NewDecoder(diagnostics bool) *Decoder {
	return &Decoder{Diagnostics: diagnostics}
}

// Decode reads the record in is positioned on. Only structured records can
// fail; the opaque path always succeeds.
func (d *Decoder) Decode(in Input) (Record, error) {
	sid := in.Sid()
	if read, ok := structuredReaders[sid]; ok {
		rec, err := read(in)
		if err != nil {
			return nil, fmt.Errorf("record: decode sid 0x%04X: %w", sid, err)
		}
		if n := in.Remaining(); n != 0 {
			return nil, fmt.Errorf("%w: sid 0x%04X left %d bytes unread", ErrRecordLength, sid, n)
		}
		observability.RecordStructured()
		return rec, nil
	}

	rec := ReadOpaque(in)
	name := rec.Name()
	d.trace(rec, name)
	observability.RecordOpaque(name.Tier.String(), len(rec.data))
	return rec, nil
}

func (d *Decoder) trace(rec *Opaque, name Name) {
	if name.Tier != TierUnknown {
		return
	}
	log.Debug().
		Str("sid", "0x"+hexSid(rec.sid)).
		Int("len", len(rec.data)).
		Msg("unknown record")
	if d.Diagnostics && InSubRecordRange(rec.sid) {
		log.Warn().
			Str("sid", "0x"+hexSid(rec.sid)).
			Msg("unknown sid in sub-record range, possibly an embedded sub-record")
	}
}
