package d64

import "testing"

func sampleImage() []uint8 {
	img := make([]uint8, Tracks35Size)
	for i := range img {
		img[i] = uint8(i)
	}
	return img
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := sampleImage()
	d, err := Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(d, 35)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != len(img) {
		t.Fatalf("decoded image length = %d, want %d", len(out), len(img))
	}
	for i := range img {
		if out[i] != img[i] {
			t.Fatalf("byte %d: got %#02x, want %#02x", i, out[i], img[i])
		}
	}
}

func TestEncodeRejectsBadSize(t *testing.T) {
	if _, err := Encode(make([]uint8, 100)); err == nil {
		t.Fatalf("expected an error for a non-D64-sized image")
	}
}

func TestDecodeFailsOnUnformattedTrack(t *testing.T) {
	d, err := Encode(sampleImage())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d.SetLength(1, 0)
	if _, err := Decode(d, 35); err == nil {
		t.Fatalf("expected an error when track 1 has been cleared")
	}
}
