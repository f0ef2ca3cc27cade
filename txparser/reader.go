package txparser

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

// RecordReader is a bounds-checked cursor over a borrowed byte slice, used to
// decode fixed-schema records (no length prefixes: the schema dictates every
// field width). It never reads past the end of the slice; a short read fails
// with ErrUnexpectedEnd and leaves the cursor where it was.
type RecordReader struct {
	data []byte
	off  int
}

// NewRecordReader positions a reader over data at the given offset.
func NewRecordReader(data []byte, offset int) *RecordReader {
	if offset < 0 || offset > len(data) {
		offset = len(data)
	}
	return &RecordReader{data: data, off: offset}
}

func (r *RecordReader) checkBounds(n int) error {
	if n < 0 || r.off+n > len(r.data) {
		return fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrUnexpectedEnd, n, r.off, len(r.data))
	}
	return nil
}

// Remaining reports how many bytes are left past the cursor.
func (r *RecordReader) Remaining() int { return len(r.data) - r.off }

// Offset reports the cursor position.
func (r *RecordReader) Offset() int { return r.off }

// ReadBytes consumes n bytes. The returned slice aliases the underlying data.
func (r *RecordReader) ReadBytes(n int) ([]byte, error) {
	if err := r.checkBounds(n); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Peek returns the next n bytes without moving the cursor.
func (r *RecordReader) Peek(n int) ([]byte, error) {
	if err := r.checkBounds(n); err != nil {
		return nil, err
	}
	return r.data[r.off : r.off+n], nil
}

// Skip advances the cursor by n bytes.
func (r *RecordReader) Skip(n int) error {
	if err := r.checkBounds(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

func (r *RecordReader) ReadUint8() (uint8, error) {
	if err := r.checkBounds(1); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *RecordReader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *RecordReader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *RecordReader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *RecordReader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *RecordReader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadBool consumes one byte and rejects anything other than 0 or 1.
func (r *RecordReader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return false, err
	}
	if v > 1 {
		return false, fmt.Errorf("invalid bool tag %d at offset %d", v, r.off-1)
	}
	return v == 1, nil
}

// ReadPubkey consumes a 32-byte account identifier.
func (r *RecordReader) ReadPubkey() (solana.PublicKey, error) {
	b, err := r.ReadBytes(32)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

// BorshReader reads length-prefixed (borsh-style) containers on top of the
// fixed-width primitives: byte sequences and strings carry a 4-byte
// little-endian length prefix. A declared length past the end of the buffer
// fails with ErrUnexpectedEnd before any bytes are consumed.
type BorshReader struct {
	RecordReader
}

// NewBorshReader positions a length-prefixed reader over data at offset.
func NewBorshReader(data []byte, offset int) *BorshReader {
	return &BorshReader{RecordReader: *NewRecordReader(data, offset)}
}

// ReadLenBytes consumes a u32 length prefix and that many bytes.
func (r *BorshReader) ReadLenBytes() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := r.checkBounds(int(n)); err != nil {
		// rewind over the prefix so the cursor stays consistent
		r.off -= 4
		return nil, err
	}
	return r.ReadBytes(int(n))
}

// ReadString consumes a u32-length-prefixed UTF-8 string.
func (r *BorshReader) ReadString() (string, error) {
	b, err := r.ReadLenBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("invalid utf-8 in string at offset %d", r.off-len(b))
	}
	return string(b), nil
}
