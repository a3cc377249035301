package param

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// StateVersion is the newest state layout this package reads and writes.
const StateVersion uint16 = 1

var stateMagic = [4]byte{'D', 'R', 'V', 'P'}

// ErrInvalidState indicates truncated, foreign or unsupported state data.
var ErrInvalidState = errors.New("param: invalid state")

// Value is one decoded state entry.
type Value struct {
	ID    string
	Value float64
}

// MarshalBinary encodes every parameter value:
//
//	"DRVP" | version uint16 | count uint16 | count × (len uint8 | id | value float64)
//
// All integers and floats are little-endian.
func (s *Set) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(stateMagic[:])

	if err := binary.Write(&buf, binary.LittleEndian, StateVersion); err != nil {
		return nil, err
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(s.params))); err != nil {
		return nil, err
	}

	for _, p := range s.params {
		buf.WriteByte(byte(len(p.spec.ID)))
		buf.WriteString(p.spec.ID)

		if err := binary.Write(&buf, binary.LittleEndian, p.Load()); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary restores values written by MarshalBinary. Unknown ids are
// skipped and values are clamped to their ranges. Nothing is applied unless
// the whole payload decodes.
func (s *Set) UnmarshalBinary(data []byte) error {
	values, err := DecodeState(data)
	if err != nil {
		return err
	}

	for _, v := range values {
		if p := s.byID[v.ID]; p != nil {
			p.Store(v.Value)
		}
	}

	return nil
}

// DecodeState parses state data without applying it.
func DecodeState(data []byte) ([]Value, error) {
	r := bytes.NewReader(data)

	var header struct {
		Magic   [4]byte
		Version uint16
		Count   uint16
	}

	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidState, err)
	}

	if header.Magic != stateMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidState, header.Magic[:])
	}

	if header.Version == 0 || header.Version > StateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidState, header.Version)
	}

	values := make([]Value, 0, header.Count)
	for i := range int(header.Count) {
		n, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidState, i, err)
		}

		id := make([]byte, n)
		if _, err := io.ReadFull(r, id); err != nil {
			return nil, fmt.Errorf("%w: entry %d id: %w", ErrInvalidState, i, err)
		}

		var v float64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("%w: entry %d value: %w", ErrInvalidState, i, err)
		}

		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: entry %d (%s) is NaN", ErrInvalidState, i, id)
		}

		values = append(values, Value{ID: string(id), Value: v})
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidState, r.Len())
	}

	return values, nil
}
