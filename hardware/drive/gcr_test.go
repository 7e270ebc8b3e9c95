package drive

import "testing"

func TestGCREncodeDecodeRoundTrip(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = uint8(i*37 + 11)
	}

	gcr := EncodeGCR(data)
	decoded, err := DecodeGCR(gcr, len(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for i := range data {
		if decoded[i] != data[i] {
			t.Fatalf("byte %d: got %#02x, want %#02x", i, decoded[i], data[i])
		}
	}
}

func TestGCRCodewordsHaveNoLongZeroRuns(t *testing.T) {
	for nibble, code := range gcrEncodeTable {
		zeroRun := 0
		for i := 4; i >= 0; i-- {
			if code&(1<<uint(i)) == 0 {
				zeroRun++
				if zeroRun > 2 {
					t.Fatalf("nibble %d's codeword %05b has more than two consecutive zeros", nibble, code)
				}
			} else {
				zeroRun = 0
			}
		}
	}
}

func TestGCRDecodeRejectsInvalidCodeword(t *testing.T) {
	_, err := DecodeGCR([]byte{0x00, 0x00}, 1)
	if err == nil {
		t.Fatalf("expected an error decoding an all-zero (invalid) codeword")
	}
}
