package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/alkime/voicescribe/internal/analysis"
	"github.com/alkime/voicescribe/internal/session"
	"github.com/alkime/voicescribe/internal/theme"
	"github.com/alkime/voicescribe/internal/transcription"
	"github.com/gin-gonic/gin"
)

const (
	msgTranscriptionFailed = "Transcription failed. Please try again."
	msgAnalysisFailed      = "Analysis failed. Please try again."
)

type createSessionRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type renameSessionRequest struct {
	Name string `json:"name"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type metricsRequest struct {
	Text string `json:"text"`
}

type languageResponse struct {
	Code   string `json:"code"`
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Native string `json:"native"`
}

type transcriptionResponse struct {
	Text          string            `json:"text"`
	Language      string            `json:"language"`
	Metrics       *analysis.Metrics `json:"metrics"`
	AnalysisError string            `json:"analysisError,omitempty"`
}

func (s *Server) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Sessions.List())
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	sess, err := s.deps.Sessions.Save(req.Text, req.Name)
	if err != nil {
		s.sessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.deps.Sessions.Load(c.Param("id"))
	if err != nil {
		s.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleRenameSession(c *gin.Context) {
	var req renameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	id := c.Param("id")
	if err := s.deps.Sessions.Rename(id, req.Name); err != nil {
		s.sessionError(c, err)
		return
	}

	sess, err := s.deps.Sessions.Load(id)
	if err != nil {
		s.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	s.deps.Sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// sessionError maps session errors to status codes.
func (s *Server) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody(session.ErrNotFound.Error()))
	case errors.Is(err, session.ErrDuplicateName):
		c.JSON(http.StatusConflict, errorBody(session.ErrDuplicateName.Error()))
	case errors.Is(err, session.ErrInvalidName):
		c.JSON(http.StatusBadRequest, errorBody(session.ErrInvalidName.Error()))
	default:
		s.logger.Error("session operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (s *Server) handleGetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": s.deps.Theme.Get()})
}

func (s *Server) handleSetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	t, err := theme.Parse(req.Theme)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := s.deps.Theme.Set(t); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": t})
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": s.deps.Theme.Toggle()})
}

func (s *Server) handleLanguages(c *gin.Context) {
	langs := transcription.SupportedLanguages()

	out := make([]languageResponse, len(langs))
	for i, l := range langs {
		out[i] = languageResponse{
			Code:   l.Code(),
			Tag:    l.Tag.String(),
			Name:   l.Name,
			Native: l.Native(),
		}
	}

	c.JSON(http.StatusOK, out)
}

// handleTranscribe accepts a multipart upload with an "audio" file and an
// optional "language", transcribes it and analyzes the result.
func (s *Server) handleTranscribe(c *gin.Context) {
	if s.config.MaxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUpload)
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("missing audio file"))
		return
	}

	langName := c.PostForm("language")
	if strings.TrimSpace(langName) == "" {
		langName = s.config.Language
	}

	lang, err := transcription.ParseLanguage(langName)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("unreadable audio file"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("unreadable audio file"))
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = transcription.MIMETypeFor(fh.Filename)
	}

	ctx := c.Request.Context()

	text, err := s.deps.Transcriber.Transcribe(ctx, data, mimeType, lang)
	if errors.Is(err, transcription.ErrEmptyAudio) {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err != nil {
		s.logger.Warn("transcription failed", "error", err, "bytes", len(data), "mimeType", mimeType)
		c.JSON(http.StatusBadGateway, errorBody(msgTranscriptionFailed))
		return
	}

	resp := transcriptionResponse{Text: text, Language: lang.Code()}

	metrics, err := s.deps.Analyzer.Analyze(ctx, text)
	if err != nil {
		s.logger.Warn("analysis failed", "error", err)
		resp.AnalysisError = msgAnalysisFailed
	}
	resp.Metrics = metrics

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMetrics(c *gin.Context) {
	var req metricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	metrics, err := s.deps.Analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		s.logger.Warn("analysis failed", "error", err)
		c.JSON(http.StatusBadGateway, errorBody(msgAnalysisFailed))
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}
