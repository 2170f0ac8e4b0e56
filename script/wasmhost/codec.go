package wasmhost

import (
	"encoding/binary"
	"math"

	peartube "github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/errors"
)

// Value wire tags. A tag byte precedes the payload so guests can decode
// property reads without a schema.
const (
	tagNumber byte = 1 // 8-byte little-endian IEEE 754 payload
	tagBool   byte = 2 // 1-byte payload, zero = false
	tagString byte = 3 // raw UTF-8 payload
)

// argSeparator delimits command arguments in guest memory.
const argSeparator byte = 0

// readString copies a guest string out of linear memory.
func readString(mem peartube.Memory, ptr, length uint32) (string, error) {
	buf, err := mem.Read(ptr, length)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// readArgs reads a NUL-separated argument block out of guest memory. An
// empty block yields no arguments; a trailing separator is tolerated.
func readArgs(mem peartube.Memory, ptr, length uint32) ([]string, error) {
	if length == 0 {
		return nil, nil
	}
	buf, err := mem.Read(ptr, length)
	if err != nil {
		return nil, err
	}
	if buf[len(buf)-1] == argSeparator {
		buf = buf[:len(buf)-1]
	}
	var args []string
	start := 0
	for i, c := range buf {
		if c == argSeparator {
			args = append(args, string(buf[start:i]))
			start = i + 1
		}
	}
	args = append(args, string(buf[start:]))
	return args, nil
}

// encodeValue renders a boxed value as a tag byte plus payload. Absent has
// no encoding; callers signal it out of band.
func encodeValue(v bridge.Value) []byte {
	switch v.Kind() {
	case bridge.KindNumber:
		out := make([]byte, 9)
		out[0] = tagNumber
		binary.LittleEndian.PutUint64(out[1:], math.Float64bits(v.Number()))
		return out
	case bridge.KindBool:
		if v.Bool() {
			return []byte{tagBool, 1}
		}
		return []byte{tagBool, 0}
	case bridge.KindString:
		out := make([]byte, 1+len(v.Str()))
		out[0] = tagString
		copy(out[1:], v.Str())
		return out
	default:
		return nil
	}
}

// decodeValue parses a tagged payload back into a boxed value.
func decodeValue(data []byte) (bridge.Value, error) {
	if len(data) == 0 {
		return bridge.Absent, errors.InvalidInput(errors.PhaseProperty, "empty value payload")
	}
	switch data[0] {
	case tagNumber:
		if len(data) != 9 {
			return bridge.Absent, errors.InvalidInput(errors.PhaseProperty, "number payload must be 8 bytes")
		}
		return bridge.Number(math.Float64frombits(binary.LittleEndian.Uint64(data[1:]))), nil
	case tagBool:
		if len(data) != 2 {
			return bridge.Absent, errors.InvalidInput(errors.PhaseProperty, "bool payload must be 1 byte")
		}
		return bridge.Bool(data[1] != 0), nil
	case tagString:
		return bridge.String(string(data[1:])), nil
	default:
		return bridge.Absent, errors.InvalidInput(errors.PhaseProperty, "unknown value tag")
	}
}

// writeResult copies an encoded payload into a caller-supplied buffer.
// Returns the bytes written, or the negated required length when the buffer
// is too small (nothing is written in that case).
func writeResult(mem peartube.Memory, ptr, capacity uint32, data []byte) (int32, error) {
	if len(data) > int(capacity) {
		return -int32(len(data)), nil
	}
	if err := mem.Write(ptr, data); err != nil {
		return 0, err
	}
	return int32(len(data)), nil
}
