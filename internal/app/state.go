package app

import (
	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/transcription"
)

// MessageKind distinguishes transient notices from errors.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageNotice
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageNotice:
		return "notice"
	case MessageError:
		return "error"
	default:
		return "none"
	}
}

// Message is the single user-facing message slot.
type Message struct {
	Text string
	Kind MessageKind
}

// IsZero reports whether no message is set.
func (m Message) IsZero() bool {
	return m.Kind == MessageNone
}

// RecordingInfo describes the current finalized recording.
type RecordingInfo struct {
	MIMEType string
	URL      string
	Path     string
	Filename string
	Size     int
}

// State is a point-in-time copy of everything a front end renders.
type State struct {
	Recording    bool
	Transcribing bool
	Analyzing    bool

	Audio       *RecordingInfo
	Transcript  string
	SessionID   string
	SessionName string
	Metrics     *analysis.Metrics

	Message  Message
	Language transcription.Language
	Theme    theme.Theme
}

// CanTranscribe reports whether Transcribe would be accepted.
func (s State) CanTranscribe() bool {
	return s.Audio != nil && !s.Recording && !s.Transcribing
}

// Busy reports whether a remote call is in flight.
func (s State) Busy() bool {
	return s.Transcribing || s.Analyzing
}
