package transcribe

import (
	"context"
	"io"
)

// Transcriber turns recorded audio into text. Implementations may call a
// speech-to-text service or return canned results (for tests).
type Transcriber interface {
	// Transcribe returns the spoken text in the audio stream.
	// filename hints at the container format (e.g. "answer.wav").
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}
