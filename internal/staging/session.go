// Package staging drives the capture-to-draft workflow: images are staged,
// optionally analyzed, merged into a draft entry, and finally handed to the
// catalog. Nothing here is persisted; a session lives for one CLI invocation
// or one interactive scan.
package staging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"vinoscan/internal/catalog"
	"vinoscan/internal/imaging"
	"vinoscan/internal/wine"
)

// State identifies where the session sits in the capture workflow.
type State string

const (
	// StateIdle means nothing is staged and no draft is pending.
	StateIdle State = "idle"
	// StateStaging means at least one image is staged and awaiting a draft.
	StateStaging State = "staging"
	// StateAnalyzing means an analysis request is in flight.
	StateAnalyzing State = "analyzing"
	// StateDraftReady means a draft entry awaits save or cancel.
	StateDraftReady State = "draft-ready"
)

var (
	// ErrBusy is returned when an operation conflicts with the session's
	// current state, including a second analysis while one is in flight.
	ErrBusy = errors.New("staging session busy")
	// ErrNoImages is returned when analysis or a manual draft is requested
	// with an empty staged set.
	ErrNoImages = errors.New("no staged images")
	// ErrNoDraft is returned when save or cancel is requested without a
	// pending draft.
	ErrNoDraft = errors.New("no pending draft")
)

// Analyzer is the slice of the analysis client the session needs.
type Analyzer interface {
	AnalyzeLabel(ctx context.Context, imageDataURL string) (wine.LabelFacts, error)
}

// Session is the staging state machine. Methods are safe for concurrent use;
// at most one analysis is in flight at a time.
type Session struct {
	mu       sync.Mutex
	state    State
	images   []string
	draft    wine.Entry
	existing bool

	analyzer Analyzer
	imgOpts  imaging.Options
	logger   *slog.Logger
}

// NewSession constructs an idle session.
func NewSession(analyzer Analyzer, imgOpts imaging.Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		state:    StateIdle,
		analyzer: analyzer,
		imgOpts:  imgOpts,
		logger:   logger,
	}
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StagedImages returns a snapshot of the staged gallery as data URLs, in
// capture order.
func (s *Session) StagedImages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.images...)
}

// AddImages compresses each capture and appends it to the staged set. Allowed
// from Idle or Staging only.
func (s *Session) AddImages(raw ...[]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle && s.state != StateStaging {
		return ErrBusy
	}
	for _, img := range raw {
		if len(img) == 0 {
			continue
		}
		s.images = append(s.images, imaging.ToDataURL(imaging.Compress(img, s.imgOpts)))
	}
	if len(s.images) > 0 {
		s.state = StateStaging
	}
	return nil
}

// RemoveImage drops the staged image at index i, preserving the order of the
// rest. Removing the last image returns the session to Idle.
func (s *Session) RemoveImage(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStaging {
		return ErrBusy
	}
	if i < 0 || i >= len(s.images) {
		return errors.New("image index out of range")
	}
	s.images = append(s.images[:i], s.images[i+1:]...)
	if len(s.images) == 0 {
		s.state = StateIdle
	}
	return nil
}

// Discard clears the staged set and returns to Idle. It is a no-op while an
// analysis is in flight.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAnalyzing {
		return ErrBusy
	}
	s.images = nil
	s.state = StateIdle
	return nil
}

// ManualDraft builds a blank draft from the staged gallery, skipping
// analysis. The staged set is consumed.
func (s *Session) ManualDraft() (wine.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateStaging {
		if s.state == StateIdle {
			return wine.Entry{}, ErrNoImages
		}
		return wine.Entry{}, ErrBusy
	}
	draft := wine.NewEntry()
	draft.ImageURLs = s.images
	s.images = nil
	s.draft = draft
	s.existing = false
	s.state = StateDraftReady
	return draft.Clone(), nil
}

// Analyze sends the first staged image to the analyzer. On success the facts
// and the whole staged gallery are merged into a draft and the set is
// consumed. On failure the staged images are retained and the session returns
// to Staging so the user can retry or fall back to a manual draft.
func (s *Session) Analyze(ctx context.Context) (wine.Entry, error) {
	s.mu.Lock()
	if s.state == StateAnalyzing {
		s.mu.Unlock()
		return wine.Entry{}, ErrBusy
	}
	if s.state != StateStaging {
		s.mu.Unlock()
		if s.state == StateIdle {
			return wine.Entry{}, ErrNoImages
		}
		return wine.Entry{}, ErrBusy
	}
	primary := s.images[0]
	s.state = StateAnalyzing
	s.mu.Unlock()

	facts, err := s.analyzer.AnalyzeLabel(ctx, primary)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("label analysis failed", "error", err)
		s.state = StateStaging
		return wine.Entry{}, err
	}
	draft := facts.Draft(s.images)
	s.images = nil
	s.draft = draft
	s.existing = false
	s.state = StateDraftReady
	s.logger.Info("label analyzed", "name", draft.Name, "type", draft.Type)
	return draft.Clone(), nil
}

// QuickScan compresses and analyzes a single capture in one step. On failure
// nothing is left staged; the session stays Idle and the analysis error
// surfaces to the caller.
func (s *Session) QuickScan(ctx context.Context, raw []byte) (wine.Entry, error) {
	s.mu.Lock()
	if s.state == StateAnalyzing {
		s.mu.Unlock()
		return wine.Entry{}, ErrBusy
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		return wine.Entry{}, ErrBusy
	}
	s.state = StateAnalyzing
	s.mu.Unlock()

	image := imaging.ToDataURL(imaging.Compress(raw, s.imgOpts))
	facts, err := s.analyzer.AnalyzeLabel(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("quick scan failed", "error", err)
		s.state = StateIdle
		return wine.Entry{}, err
	}
	draft := facts.Draft([]string{image})
	s.draft = draft
	s.existing = false
	s.state = StateDraftReady
	return draft.Clone(), nil
}

// LoadDraft seeds the session with an existing entry for editing. SaveDraft
// will update rather than insert.
func (s *Session) LoadDraft(entry wine.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrBusy
	}
	s.draft = entry.Clone()
	s.existing = true
	s.state = StateDraftReady
	return nil
}

// Draft returns a snapshot of the pending draft.
func (s *Session) Draft() (wine.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDraftReady {
		return wine.Entry{}, ErrNoDraft
	}
	return s.draft.Clone(), nil
}

// SetDraft replaces the pending draft, keeping its identity fields. Used by
// the CLI when the user edits draft fields before saving.
func (s *Session) SetDraft(entry wine.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDraftReady {
		return ErrNoDraft
	}
	entry.ID = s.draft.ID
	entry.CreatedAt = s.draft.CreatedAt
	s.draft = entry.Clone()
	return nil
}

// SaveDraft persists the pending draft to the catalog and returns to Idle.
// New drafts are inserted; drafts loaded for editing are updated.
func (s *Session) SaveDraft(ctx context.Context, cat *catalog.Catalog) (wine.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDraftReady {
		return wine.Entry{}, ErrNoDraft
	}
	var err error
	if s.existing {
		err = cat.Update(ctx, s.draft)
	} else {
		err = cat.Insert(ctx, s.draft)
	}
	if err != nil {
		return wine.Entry{}, err
	}
	saved := s.draft.Clone()
	s.draft = wine.Entry{}
	s.existing = false
	s.state = StateIdle
	return saved, nil
}

// CancelDraft discards the pending draft and returns to Idle. Images already
// consumed into the draft are not restored to the staged set.
func (s *Session) CancelDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDraftReady {
		return ErrNoDraft
	}
	s.draft = wine.Entry{}
	s.existing = false
	s.state = StateIdle
	return nil
}
