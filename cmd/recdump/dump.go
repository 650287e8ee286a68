package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/recstream/internal/config"
	"github.com/danmuck/recstream/internal/hexdump"
	"github.com/danmuck/recstream/internal/observability"
	"github.com/danmuck/recstream/internal/protocol/frame"
	"github.com/danmuck/recstream/internal/record"
	"github.com/danmuck/recstream/internal/stream"
	"github.com/rs/zerolog/log"
)

var ErrRoundTripMismatch = errors.New("recdump: re-serialized stream differs from input")

// summary counts decoded records per catalog tier.
type summary struct {
	Records    int
	Structured int
	Tiers      map[record.Tier]int
	Bytes      int64
}

func (s summary) String() string {
	return fmt.Sprintf("records=%d structured=%d documented=%d observed=%d unknown=%d bytes=%d",
		s.Records, s.Structured,
		s.Tiers[record.TierDocumented], s.Tiers[record.TierObserved], s.Tiers[record.TierUnknown],
		s.Bytes)
}

// dump decodes in, prints renders to out as configured and returns the
// decoded records.
func dump(in []byte, cfg config.DumpConfig, out io.Writer) ([]record.Record, summary, error) {
	sum := summary{Tiers: make(map[record.Tier]int)}
	dec := record.NewDecoder(cfg.Diagnostics)
	sr := stream.NewReaderLimits(bytes.NewReader(in), frame.Limits{MaxPayloadBytes: cfg.MaxPayloadBytes})

	var recs []record.Record
	for cfg.MaxRecords == 0 || len(recs) < cfg.MaxRecords {
		ok, err := sr.Next()
		if err != nil {
			return nil, sum, err
		}
		if !ok {
			break
		}
		offset := sr.Offset()
		rec, err := dec.Decode(sr)
		if err != nil {
			return nil, sum, fmt.Errorf("record %d at offset %d: %w", sr.Index(), offset, err)
		}
		recs = append(recs, rec)
		sum.Records++
		sum.Bytes += int64(rec.Size())

		op, opaque := rec.(*record.Opaque)
		if opaque {
			sum.Tiers[op.Name().Tier]++
		} else {
			sum.Structured++
		}
		switch {
		case cfg.Render == config.RenderAll || (cfg.Render == config.RenderOpaque && opaque):
			fmt.Fprintf(out, "#%d @%d\n%s", sr.Index(), offset, rec.String())
		case cfg.Render == config.RenderDump && opaque:
			fmt.Fprintf(out, "#%d @%d\n%s", sr.Index(), offset, renderDump(op))
		}
	}

	if cfg.VerifyRoundTrip {
		if err := verify(in[:sum.Bytes], recs); err != nil {
			return nil, sum, err
		}
		log.Debug().Int("records", len(recs)).Msg("round trip verified")
	}
	return recs, sum, nil
}

// renderDump is the opaque render with the payload as a multi-line listing.
func renderDump(op *record.Opaque) string {
	name := op.Name().Text
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] (0x%X)\n", name, op.Sid())
	if data := op.Data(); len(data) > 0 {
		sb.WriteString(hexdump.Dump(data))
	}
	fmt.Fprintf(&sb, "[/%s]\n", name)
	return sb.String()
}

// writeMetrics exports the run's counters to path; empty path is a no-op.
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := observability.WriteTextfile(path); err != nil {
		return fmt.Errorf("recdump: write metrics %s: %w", path, err)
	}
	return nil
}

func verify(want []byte, recs []record.Record) error {
	got, err := stream.Encode(recs)
	if err != nil {
		return err
	}
	if bytes.Equal(got, want) {
		return nil
	}
	n := min(len(got), len(want))
	for i := 0; i < n; i++ {
		if got[i] != want[i] {
			return fmt.Errorf("%w: first difference at offset %d", ErrRoundTripMismatch, i)
		}
	}
	return fmt.Errorf("%w: length %d, want %d", ErrRoundTripMismatch, len(got), len(want))
}
