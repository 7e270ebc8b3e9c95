package drive

import "github.com/sixtyfour/core64/errors"

// gcrEncodeTable maps a 4-bit nibble to its 5-bit GCR codeword, per the C64
// disk format's 4-to-5 encoding (spec.md §6's "5-to-4 decode table" run in
// reverse). The table is the one used by every 1541-compatible drive: no
// codeword has more than two consecutive zero bits, which is what lets the
// drive's PLL (the UF4 counter) recover a bit clock from the data stream
// itself.
var gcrEncodeTable = [16]uint8{
	0x0A, 0x0B, 0x12, 0x13, 0x0E, 0x0F, 0x16, 0x17,
	0x09, 0x19, 0x1A, 0x1B, 0x0D, 0x1D, 0x1E, 0x15,
}

// gcrDecodeTable inverts gcrEncodeTable; codewords with no corresponding
// nibble map to 0xFF.
var gcrDecodeTable = buildDecodeTable()

func buildDecodeTable() [32]uint8 {
	var t [32]uint8
	for i := range t {
		t[i] = 0xFF
	}
	for nibble, code := range gcrEncodeTable {
		t[code] = uint8(nibble)
	}
	return t
}

type bitWriter struct {
	buf []uint8
	acc uint32
	n   int
}

func (w *bitWriter) writeBits(value uint32, bits int) {
	w.acc = w.acc<<uint(bits) | (value & (1<<uint(bits) - 1))
	w.n += bits
	for w.n >= 8 {
		w.n -= 8
		w.buf = append(w.buf, uint8(w.acc>>uint(w.n)))
	}
}

func (w *bitWriter) flush() []uint8 {
	if w.n > 0 {
		w.buf = append(w.buf, uint8(w.acc<<uint(8-w.n)))
		w.n = 0
	}
	return w.buf
}

type bitReader struct {
	buf []uint8
	pos int // bit offset from the start of buf
}

func (r *bitReader) readBits(bits int) uint32 {
	var v uint32
	for i := 0; i < bits; i++ {
		byteIdx := (r.pos / 8) % len(r.buf)
		bitIdx := 7 - r.pos%8
		bit := (r.buf[byteIdx] >> uint(bitIdx)) & 1
		v = v<<1 | uint32(bit)
		r.pos++
	}
	return v
}

// EncodeGCR converts a block of plain bytes into its GCR bitstream, 4 bytes
// of input producing 5 bytes of output (two 5-bit codewords per input
// byte, packed back-to-back with no padding between bytes).
func EncodeGCR(data []byte) []byte {
	w := &bitWriter{}
	for _, b := range data {
		w.writeBits(uint32(gcrEncodeTable[b>>4]), 5)
		w.writeBits(uint32(gcrEncodeTable[b&0x0F]), 5)
	}
	return w.flush()
}

// DecodeGCR reverses EncodeGCR. n is the number of plain bytes expected;
// the GCR buffer must hold at least n*10 bits.
func DecodeGCR(gcr []byte, n int) ([]byte, error) {
	if len(gcr)*8 < n*10 {
		return nil, errors.Errorf(errors.UnrecognisedSize, len(gcr))
	}
	r := &bitReader{buf: gcr}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		hi := gcrDecodeTable[r.readBits(5)]
		lo := gcrDecodeTable[r.readBits(5)]
		if hi == 0xFF || lo == 0xFF {
			return nil, errors.Errorf(errors.InvalidGCRCodeword, i)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}
