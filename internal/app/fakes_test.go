package app

import (
	"context"
	"errors"
	"sync"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/audio"
	"github.com/alkime/voicescribe/internal/transcription"
)

var errNetwork = errors.New("dial tcp: connection refused")

type fakeRecorder struct {
	mu        sync.Mutex
	dir       string
	data      []byte
	startErr  error
	stopErr   error
	recording bool
	produced  []*audio.Recording
}

func (r *fakeRecorder) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.startErr != nil {
		return r.startErr
	}
	if r.recording {
		return audio.ErrAlreadyRecording
	}
	r.recording = true

	return nil
}

func (r *fakeRecorder) Stop(context.Context) (*audio.Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil, nil
	}
	r.recording = false

	if r.stopErr != nil {
		return nil, r.stopErr
	}

	rec, err := audio.NewRecording(r.dir, audio.FormatWAV, r.data)
	if err != nil {
		return nil, err
	}
	r.produced = append(r.produced, rec)

	return rec, nil
}

type fakeTranscriber struct {
	mu       sync.Mutex
	calls    int
	lastLang transcription.Language
	lastMIME string
	text     string
	err      error
	// entered receives once per call; gate, when set, blocks the call until closed.
	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, mimeType string, lang transcription.Language) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastLang = lang
	f.lastMIME = mimeType
	text, err, entered, gate := f.text, f.err, f.entered, f.gate
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	return text, err
}

func (f *fakeTranscriber) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	texts   []string
	metrics *analysis.Metrics
	err     error
	// byText overrides metrics for specific inputs.
	byText map[string]*analysis.Metrics
	// entered receives once per gated call; gates block calls for their text until closed.
	entered chan string
	gates   map[string]chan struct{}
}

func (f *fakeAnalyzer) Analyze(_ context.Context, text string) (*analysis.Metrics, error) {
	f.mu.Lock()
	f.calls++
	f.texts = append(f.texts, text)
	metrics, err, entered, gate := f.metrics, f.err, f.entered, f.gates[text]
	if m, ok := f.byText[text]; ok {
		metrics = m
	}
	f.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- text
		}
		<-gate
	}

	if err != nil {
		return nil, err
	}

	m := *metrics
	return &m, nil
}

func (f *fakeAnalyzer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

type fakeSharer struct {
	fileErr error
	textErr error
	files   []string
	texts   []string
	titles  []string
}

func (s *fakeSharer) ShareFile(_ context.Context, name, _ string, _ []byte) error {
	if s.fileErr != nil {
		return s.fileErr
	}
	s.files = append(s.files, name)

	return nil
}

func (s *fakeSharer) ShareText(_ context.Context, title, text string) error {
	if s.textErr != nil {
		return s.textErr
	}
	s.titles = append(s.titles, title)
	s.texts = append(s.texts, text)

	return nil
}

type fakeDownloader struct {
	err   error
	names []string
	data  [][]byte
}

func (d *fakeDownloader) Download(name string, data []byte) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.names = append(d.names, name)
	d.data = append(d.data, data)

	return "/downloads/" + name, nil
}

type fakeClipboard struct {
	err    error
	copied []string
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)

	return nil
}
