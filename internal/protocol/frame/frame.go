package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	HeaderLen     = 4
	MaxPayloadLen = 0xFFFF
)

var (
	ErrShortHeader      = errors.New("frame: short record header")
	ErrShortPayload     = errors.New("frame: payload shorter than declared length")
	ErrPayloadTooLarge  = errors.New("frame: payload too large")
	ErrInsufficientDest = errors.New("frame: destination buffer too small")
)

// Header is the record header: sid then payload length, both little-endian.
type Header struct {
	Sid    uint16
	Length uint16
}

// Frame is one complete record on the wire.
type Frame struct {
	Header  Header
	Payload []byte
}

// Limits constrains frame decode memory use.
type Limits struct {
	MaxPayloadBytes int
}

func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: MaxPayloadLen}
}

// LengthError reports a payload that cannot be described by the header.
type LengthError struct {
	Sid    uint16
	Length int
}

func (e LengthError) Error() string {
	return fmt.Sprintf("frame: sid 0x%04X payload length %d exceeds %d", e.Sid, e.Length, MaxPayloadLen)
}

func (e LengthError) Unwrap() error {
	return ErrPayloadTooLarge
}

// CheckLength fails when n bytes do not fit the 16-bit length field.
func CheckLength(sid uint16, n int) error {
	if n < 0 || n > MaxPayloadLen {
		return LengthError{Sid: sid, Length: n}
	}
	return nil
}

// ReadFrame reads one header and its payload. io.EOF is returned unchanged
// when r is exhausted exactly at a record boundary.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h := DecodeHeader(fixed[:])
	if limits.MaxPayloadBytes > 0 && int(h.Length) > limits.MaxPayloadBytes {
		return Frame{}, fmt.Errorf("%w: sid 0x%04X declares %d bytes", ErrPayloadTooLarge, h.Sid, h.Length)
	}

	payload := make([]byte, h.Length)
	if h.Length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Frame{}, fmt.Errorf("%w: sid 0x%04X", ErrShortPayload, h.Sid)
			}
			return Frame{}, err
		}
	}
	return Frame{Header: h, Payload: payload}, nil
}

// WriteFrame writes f with a header length derived from the payload.
func WriteFrame(w io.Writer, f Frame) error {
	if err := CheckLength(f.Header.Sid, len(f.Payload)); err != nil {
		return err
	}
	h := f.Header
	h.Length = uint16(len(f.Payload))
	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if len(f.Payload) > 0 {
		if _, err := w.Write(f.Payload); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	PutHeader(buf, h)
	return buf
}

// PutHeader writes h into the first HeaderLen bytes of dst.
func PutHeader(dst []byte, h Header) {
	binary.LittleEndian.PutUint16(dst[0:2], h.Sid)
	binary.LittleEndian.PutUint16(dst[2:4], h.Length)
}

func DecodeHeader(b []byte) Header {
	return Header{
		Sid:    binary.LittleEndian.Uint16(b[0:2]),
		Length: binary.LittleEndian.Uint16(b[2:4]),
	}
}
