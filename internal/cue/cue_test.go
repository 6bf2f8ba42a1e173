package cue

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/olivier-w/swipe/internal/deck"
)

func peak(pcm []byte) int {
	maxAbs := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	return maxAbs
}

func TestChirpLength(t *testing.T) {
	pcm := Chirp(deck.Accept, 0.5)
	want := int(chirpLength.Seconds()*sampleRate) * channelCount * 2
	if len(pcm) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(pcm))
	}
}

func TestChirpRespectsVolume(t *testing.T) {
	quiet := peak(Chirp(deck.Reject, 0.1))
	loud := peak(Chirp(deck.Reject, 0.8))
	if quiet == 0 || loud <= quiet {
		t.Fatalf("expected louder chirp at higher volume, got %d vs %d", quiet, loud)
	}
	if loud > int(0.8*math.MaxInt16)+1 {
		t.Fatalf("peak %d exceeds volume", loud)
	}
	if peak(Chirp(deck.Accept, 0)) != 0 {
		t.Fatal("expected silence at zero volume")
	}
}

func TestChirpFadesInAndOut(t *testing.T) {
	pcm := Chirp(deck.Accept, 1)
	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-2:]))
	if first != 0 {
		t.Fatalf("expected silent first sample, got %d", first)
	}
	if last > 2000 || last < -2000 {
		t.Fatalf("expected faded last sample, got %d", last)
	}
}

func TestChirpChannelsMatch(t *testing.T) {
	pcm := Chirp(deck.Reject, 0.5)
	for i := 0; i+3 < len(pcm); i += 4 {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("channels differ at frame %d", i/4)
		}
	}
}
