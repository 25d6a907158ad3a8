package mp3fade_test

import (
	"bytes"
	"testing"

	"github.com/ik5/mp3fade"
)

func TestDecodeCheck_RejectsNonAudio(t *testing.T) {
	t.Parallel()

	if _, _, err := mp3fade.DecodeCheck(bytes.NewReader([]byte("not an mp3 stream at all"))); err == nil {
		t.Error("DecodeCheck() error = nil, want decode failure")
	}
}
