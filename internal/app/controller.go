// Package app holds the application controller: the transient state of one
// record, transcribe, analyze cycle and the operations that drive it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/audio"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/share"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/transcription"
)

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

const (
	msgPermissionDenied    = "Microphone access was denied. Check permissions and try again."
	msgEmptyRecording      = "No audio was captured."
	msgRecordingFailed     = "Recording failed."
	msgTranscriptionFailed = "Transcription failed. Please try again."
	msgAnalysisFailed      = "Analysis failed. Please try again."
	msgDuplicateName       = "A session with that name already exists."
	msgInvalidName         = "Session name cannot be empty."
	msgSessionNotFound     = "Session not found."
	msgNothingToSave       = "Nothing to save yet."
	msgUnknownLanguage     = "Unknown language."
)

var (
	ErrBusy         = errors.New("operation not allowed while recording or transcribing")
	ErrNoRecording  = errors.New("no finalized recording")
	ErrNoTranscript = errors.New("transcript is empty")
	ErrStale        = errors.New("result superseded by a newer cycle")
)

// Recorder captures audio.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (*audio.Recording, error)
}

// Transcriber turns audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string, lang transcription.Language) (string, error)
}

// Analyzer computes metrics for text. Blank text yields (nil, nil).
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*analysis.Metrics, error)
}

// Sharer is the host's native share capability.
type Sharer interface {
	ShareFile(ctx context.Context, name, mimeType string, data []byte) error
	ShareText(ctx context.Context, title, text string) error
}

// Downloader saves a file locally and returns where it went.
type Downloader interface {
	Download(name string, data []byte) (string, error)
}

// Clipboard copies text.
type Clipboard interface {
	Copy(text string) error
}

// Config wires a Controller's collaborators.
type Config struct {
	Recorder    Recorder
	Transcriber Transcriber
	Analyzer    Analyzer
	Sharer      Sharer
	Downloader  Downloader
	Clipboard   Clipboard
	Sessions    *session.Manager
	Theme       *theme.Preference

	Language  transcription.Language
	NoticeTTL time.Duration
	Logger    *slog.Logger
	// OnChange is called, outside the controller lock, after every state change.
	OnChange func()
}

// Controller orchestrates recording, transcription, analysis, sessions and
// sharing. It is safe for concurrent use; remote calls run without the lock
// held and their results are dropped if a newer cycle has begun.
type Controller struct {
	conf   Config
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	recording  *audio.Recording
	generation uint64
	analysisID uint64
	messageID  uint64
	timer      *time.Timer
	onChange   func()
	closed     bool
}

// New creates a Controller.
func New(conf Config) (*Controller, error) {
	switch {
	case conf.Recorder == nil:
		return nil, errors.New("recorder is required")
	case conf.Transcriber == nil:
		return nil, errors.New("transcriber is required")
	case conf.Analyzer == nil:
		return nil, errors.New("analyzer is required")
	case conf.Sessions == nil:
		return nil, errors.New("session manager is required")
	case conf.Theme == nil:
		return nil, errors.New("theme preference is required")
	}

	if conf.NoticeTTL <= 0 {
		conf.NoticeTTL = DefaultNoticeTTL
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	if conf.Language.Name == "" {
		conf.Language = transcription.English
	}

	return &Controller{
		conf:     conf,
		logger:   conf.Logger.With("component", "controller"),
		state:    State{Language: conf.Language},
		onChange: conf.OnChange,
	}, nil
}

// SetOnChange replaces the change hook.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onChange = fn
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()

	if s.Audio != nil {
		info := *s.Audio
		s.Audio = &info
	}
	if s.Metrics != nil {
		m := *s.Metrics
		s.Metrics = &m
	}
	s.Theme = c.conf.Theme.Get()

	return s
}

// StartRecording begins a new cycle. Any in-flight transcription or analysis
// becomes stale, the previous recording is released and all transient state
// is cleared before capture starts.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()

	if c.state.Recording {
		c.mu.Unlock()
		return audio.ErrAlreadyRecording
	}

	c.generation++
	c.releaseRecordingLocked()
	c.state.Transcript = ""
	c.state.SessionID = ""
	c.state.SessionName = ""
	c.state.Metrics = nil
	c.state.Transcribing = false
	c.state.Analyzing = false
	c.clearMessageLocked()

	if err := c.conf.Recorder.Start(ctx); err != nil {
		c.setErrorLocked(messageFor(err, msgRecordingFailed))
		c.mu.Unlock()
		c.changed()

		return fmt.Errorf("failed to start recording: %w", err)
	}

	c.state.Recording = true
	c.logger.Info("recording started", "generation", c.generation)
	c.mu.Unlock()
	c.changed()

	return nil
}

// StopRecording finalizes the capture into the current recording. It is a
// no-op when not recording.
func (c *Controller) StopRecording(ctx context.Context) error {
	c.mu.Lock()

	if !c.state.Recording {
		c.mu.Unlock()
		return nil
	}

	rec, err := c.conf.Recorder.Stop(ctx)
	c.state.Recording = false

	if err != nil {
		c.setErrorLocked(messageFor(err, msgRecordingFailed))
		c.mu.Unlock()
		c.changed()

		return fmt.Errorf("failed to stop recording: %w", err)
	}

	c.recording = rec
	c.state.Audio = infoFor(rec)
	c.logger.Info("recording stopped", "bytes", rec.Size())
	c.mu.Unlock()
	c.changed()

	return nil
}

// Transcribe sends the current recording for transcription and, on success,
// immediately analyzes the result. It returns ErrStale when a newer cycle
// began while the request was in flight; in that case state is untouched.
func (c *Controller) Transcribe(ctx context.Context) error {
	c.mu.Lock()

	if c.state.Recording || c.state.Transcribing {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.recording == nil {
		c.mu.Unlock()
		return ErrNoRecording
	}

	gen := c.generation
	data, mimeType := c.recording.Data, c.recording.MIMEType
	lang := c.state.Language
	c.state.Transcribing = true
	c.clearMessageLocked()
	c.mu.Unlock()
	c.changed()

	text, err := c.conf.Transcriber.Transcribe(ctx, data, mimeType, lang)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding stale transcription", "generation", gen)
		return ErrStale
	}

	c.state.Transcribing = false

	if err != nil {
		c.state.Transcript = ""
		c.state.Metrics = nil
		c.setErrorLocked(msgTranscriptionFailed)
		c.mu.Unlock()
		c.changed()

		c.logger.Warn("transcription failed", "error", err)
		return err
	}

	c.state.Transcript = text
	c.mu.Unlock()
	c.changed()

	return c.analyze(ctx, gen)
}

// Analyze recomputes metrics for the current transcript.
func (c *Controller) Analyze(ctx context.Context) error {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	return c.analyze(ctx, gen)
}

func (c *Controller) analyze(ctx context.Context, gen uint64) error {
	c.mu.Lock()

	if gen != c.generation {
		c.mu.Unlock()
		return ErrStale
	}

	c.analysisID++
	id := c.analysisID
	text := c.state.Transcript

	if strings.TrimSpace(text) == "" {
		c.state.Metrics = nil
		c.state.Analyzing = false
		c.mu.Unlock()
		c.changed()

		return nil
	}

	c.state.Analyzing = true
	c.mu.Unlock()
	c.changed()

	metrics, err := c.conf.Analyzer.Analyze(ctx, text)

	c.mu.Lock()
	if gen != c.generation || id != c.analysisID {
		c.mu.Unlock()
		c.logger.Debug("discarding stale analysis", "generation", gen)
		return ErrStale
	}

	c.state.Analyzing = false

	if err != nil {
		c.state.Metrics = nil
		c.setErrorLocked(msgAnalysisFailed)
		c.mu.Unlock()
		c.changed()

		c.logger.Warn("analysis failed", "error", err)
		return err
	}

	c.state.Metrics = metrics
	c.mu.Unlock()
	c.changed()

	return nil
}

// SetTranscript replaces the transcript text. Metrics are not recomputed.
func (c *Controller) SetTranscript(text string) {
	c.mu.Lock()
	c.state.Transcript = text
	c.mu.Unlock()
	c.changed()
}

// SetLanguage sets the transcription target language by name or tag.
func (c *Controller) SetLanguage(s string) error {
	lang, err := transcription.ParseLanguage(s)

	c.mu.Lock()
	if err != nil {
		c.setErrorLocked(msgUnknownLanguage)
	} else {
		c.state.Language = lang
		c.setNoticeLocked("Language set to " + lang.Name + ".")
	}
	c.mu.Unlock()
	c.changed()

	return err
}

// SaveSession persists the transcript under name (blank for a generated
// name). On success the recording is released while the transcript is kept.
func (c *Controller) SaveSession(name string) (session.Session, error) {
	c.mu.Lock()
	defer c.changed()
	defer c.mu.Unlock()

	if strings.TrimSpace(c.state.Transcript) == "" {
		c.setErrorLocked(msgNothingToSave)
		return session.Session{}, ErrNoTranscript
	}

	sess, err := c.conf.Sessions.Save(c.state.Transcript, name)
	if err != nil {
		c.setErrorLocked(messageFor(err, "Could not save session."))
		return session.Session{}, err
	}

	c.releaseRecordingLocked()
	c.state.SessionID = sess.ID
	c.state.SessionName = sess.Name
	c.setNoticeLocked(fmt.Sprintf("Saved %q.", sess.Name))

	return sess, nil
}

// LoadSession copies a saved session into the editing state and re-analyzes
// it. Pending transcription results from before the load are discarded.
func (c *Controller) LoadSession(ctx context.Context, id string) error {
	sess, err := c.conf.Sessions.Load(id)

	c.mu.Lock()
	if err != nil {
		c.setErrorLocked(messageFor(err, msgSessionNotFound))
		c.mu.Unlock()
		c.changed()

		return err
	}

	c.generation++
	gen := c.generation
	c.state.Transcribing = false
	c.state.Analyzing = false
	c.state.Transcript = sess.Text
	c.state.SessionID = sess.ID
	c.state.SessionName = sess.Name
	c.state.Metrics = nil
	c.setNoticeLocked(fmt.Sprintf("Loaded %q.", sess.Name))
	c.mu.Unlock()
	c.changed()

	return c.analyze(ctx, gen)
}

// DeleteSession removes a saved session. Unknown ids are ignored.
func (c *Controller) DeleteSession(id string) {
	c.conf.Sessions.Delete(id)

	c.mu.Lock()
	if c.state.SessionID == id {
		c.state.SessionID = ""
		c.state.SessionName = ""
	}
	c.setNoticeLocked("Session deleted.")
	c.mu.Unlock()
	c.changed()
}

// RenameSession renames a saved session.
func (c *Controller) RenameSession(id, name string) error {
	err := c.conf.Sessions.Rename(id, name)

	c.mu.Lock()
	if err != nil {
		c.setErrorLocked(messageFor(err, "Could not rename session."))
	} else {
		if c.state.SessionID == id {
			c.state.SessionName = strings.TrimSpace(name)
		}
		c.setNoticeLocked("Session renamed.")
	}
	c.mu.Unlock()
	c.changed()

	return err
}

// Sessions lists saved sessions, newest first.
func (c *Controller) Sessions() []session.Session {
	return c.conf.Sessions.List()
}

// ShareRecording shares the audio file natively, falling back to a download
// when the host cannot share files or rejects the payload.
func (c *Controller) ShareRecording(ctx context.Context) error {
	c.mu.Lock()
	rec := c.recording
	c.mu.Unlock()

	if rec == nil {
		return ErrNoRecording
	}

	name := rec.Filename()

	var shareErr error
	if c.conf.Sharer != nil {
		shareErr = c.conf.Sharer.ShareFile(ctx, name, rec.MIMEType, rec.Data)
		if shareErr == nil {
			c.notice("Recording shared.")
			return nil
		}
	} else {
		shareErr = share.ErrUnsupported
	}

	c.logger.Debug("native share failed, downloading instead", "error", shareErr)

	if c.conf.Downloader == nil {
		c.fail("Could not share the recording.")
		return shareErr
	}

	path, err := c.conf.Downloader.Download(name, rec.Data)
	if err != nil {
		c.fail("Could not save the recording.")
		return fmt.Errorf("failed to download recording: %w", err)
	}

	c.notice("Recording saved to " + path)

	return nil
}

// ShareTranscript shares the transcript text, titled with the loaded session name.
func (c *Controller) ShareTranscript(ctx context.Context) error {
	c.mu.Lock()
	text, title := c.state.Transcript, c.state.SessionName
	c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return ErrNoTranscript
	}

	if c.conf.Sharer == nil {
		return c.CopyTranscript()
	}

	if err := c.conf.Sharer.ShareText(ctx, title, text); err != nil {
		c.fail("Could not share the transcript.")
		return err
	}

	c.notice("Transcript shared.")

	return nil
}

// CopyTranscript copies the transcript text to the clipboard.
func (c *Controller) CopyTranscript() error {
	c.mu.Lock()
	text := c.state.Transcript
	c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return ErrNoTranscript
	}

	if c.conf.Clipboard == nil {
		c.fail("Clipboard is not available.")
		return share.ErrUnsupported
	}

	if err := c.conf.Clipboard.Copy(text); err != nil {
		c.fail("Could not copy to clipboard.")
		return err
	}

	c.notice("Copied to clipboard.")

	return nil
}

// ToggleTheme flips and persists the theme.
func (c *Controller) ToggleTheme() theme.Theme {
	t := c.conf.Theme.Toggle()
	c.changed()

	return t
}

// DismissMessage clears the message slot.
func (c *Controller) DismissMessage() {
	c.mu.Lock()
	c.clearMessageLocked()
	c.mu.Unlock()
	c.changed()
}

// Close stops any capture and releases the recording. Later results are discarded.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.generation++

	var errs []error

	if c.state.Recording {
		rec, err := c.conf.Recorder.Stop(context.Background())
		if err != nil && !errors.Is(err, audio.ErrEmptyRecording) {
			errs = append(errs, err)
		}
		if err := rec.Release(); err != nil {
			errs = append(errs, err)
		}
		c.state.Recording = false
	}

	if c.recording != nil {
		if err := c.recording.Release(); err != nil {
			errs = append(errs, err)
		}
		c.recording = nil
		c.state.Audio = nil
	}

	if c.timer != nil {
		c.timer.Stop()
	}

	return errors.Join(errs...)
}

func (c *Controller) releaseRecordingLocked() {
	if c.recording == nil {
		return
	}

	if err := c.recording.Release(); err != nil {
		c.logger.Warn("failed to release recording", "error", err, "path", c.recording.Path())
	}

	c.recording = nil
	c.state.Audio = nil
}

func (c *Controller) notice(text string) {
	c.mu.Lock()
	c.setNoticeLocked(text)
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) fail(text string) {
	c.mu.Lock()
	c.setErrorLocked(text)
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) setErrorLocked(text string) {
	c.setMessageLocked(Message{Text: text, Kind: MessageError})
}

// setNoticeLocked sets a notice that clears itself after the TTL unless it
// has been replaced in the meantime.
func (c *Controller) setNoticeLocked(text string) {
	id := c.setMessageLocked(Message{Text: text, Kind: MessageNotice})

	c.timer = time.AfterFunc(c.conf.NoticeTTL, func() {
		c.mu.Lock()
		if c.messageID != id {
			c.mu.Unlock()
			return
		}
		c.state.Message = Message{}
		c.mu.Unlock()
		c.changed()
	})
}

func (c *Controller) clearMessageLocked() {
	c.setMessageLocked(Message{})
}

func (c *Controller) setMessageLocked(m Message) uint64 {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.messageID++
	c.state.Message = m

	return c.messageID
}

func (c *Controller) changed() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func infoFor(rec *audio.Recording) *RecordingInfo {
	if rec == nil {
		return nil
	}

	return &RecordingInfo{
		MIMEType: rec.MIMEType,
		URL:      rec.URL(),
		Path:     rec.Path(),
		Filename: rec.Filename(),
		Size:     rec.Size(),
	}
}

// messageFor maps known errors to user-facing text.
func messageFor(err error, fallback string) string {
	switch {
	case errors.Is(err, audio.ErrPermissionDenied):
		return msgPermissionDenied
	case errors.Is(err, audio.ErrEmptyRecording):
		return msgEmptyRecording
	case errors.Is(err, session.ErrDuplicateName):
		return msgDuplicateName
	case errors.Is(err, session.ErrInvalidName):
		return msgInvalidName
	case errors.Is(err, session.ErrNotFound):
		return msgSessionNotFound
	default:
		return fallback
	}
}
