package presenter

import "context"

// Transcriber captures one spoken utterance as text. Implementations must
// return the empty string on recognition failure instead of an error; the
// pipeline treats "couldn't hear you" as an empty query.
type Transcriber interface {
	Transcribe(ctx context.Context) string
}

// Speaker reads a summary aloud. Fire and forget; the pipeline never waits
// on or inspects the outcome.
type Speaker interface {
	Speak(text string)
}

// NoopTranscriber always hears nothing. Used when no speech backend is
// configured.
type NoopTranscriber struct{}

func (NoopTranscriber) Transcribe(ctx context.Context) string { return "" }

// NoopSpeaker silently discards summaries.
type NoopSpeaker struct{}

func (NoopSpeaker) Speak(text string) {}
