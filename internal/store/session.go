package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"go.uber.org/zap"
)

// Storage keys. They match the layout used by the mobile app so a blob
// exported from it can be imported unchanged.
const (
	KeyDraft  = "work_draft"
	KeyStatus = "return_status"
	KeyStep   = "work_step"
)

// ErrInvalidPatch marks a draft patch that could not be applied. The draft
// is left unchanged.
var ErrInvalidPatch = errors.New("invalid draft patch")

// Calculator computes a result from a draft. *calculation.Engine satisfies it.
type Calculator interface {
	Calculate(draft domain.TaxpayerDraft) domain.TaxCalculationResult
}

// Snapshot is the session state handed to subscribers.
type Snapshot struct {
	Version uint64
	Draft   domain.TaxpayerDraft
	Status  domain.ReturnStatus
	Step    int
}

// Session owns the draft being edited. Every mutation bumps the version,
// is written through to the repository and is announced to subscribers.
// The calculation is recomputed at most once per version.
type Session struct {
	repo   Repository
	calc   Calculator
	logger *zap.Logger

	mu      sync.RWMutex
	draft   domain.TaxpayerDraft
	status  domain.ReturnStatus
	step    int
	version uint64

	calcMu      sync.Mutex
	cached      domain.TaxCalculationResult
	cachedValid bool
	cachedAt    uint64

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewSession creates a session with an empty draft. Call Load to restore
// persisted state.
func NewSession(repo Repository, calc Calculator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		repo:        repo,
		calc:        calc,
		logger:      logger,
		draft:       domain.NewDraft(),
		status:      domain.NewReturnStatus(),
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Load restores the draft, status and wizard step. Missing keys leave the
// defaults in place and unreadable values are logged and replaced by
// defaults; only repository failures are returned.
func (s *Session) Load(ctx context.Context) error {
	draft := domain.NewDraft()
	data, err := s.repo.Get(ctx, KeyDraft)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return fmt.Errorf("load draft: %w", err)
	default:
		var decodeErr error
		draft, decodeErr = domain.DecodeDraft(data)
		if decodeErr != nil {
			s.logger.Warn("restored draft with defaults", zap.Error(decodeErr))
		}
	}

	status := domain.NewReturnStatus()
	data, err = s.repo.Get(ctx, KeyStatus)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return fmt.Errorf("load return status: %w", err)
	default:
		var decodeErr error
		status, decodeErr = domain.DecodeStatus(data)
		if decodeErr != nil {
			s.logger.Warn("discarded unreadable return status", zap.Error(decodeErr))
		}
	}

	step := 0
	data, err = s.repo.Get(ctx, KeyStep)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return fmt.Errorf("load wizard step: %w", err)
	default:
		if n, convErr := strconv.Atoi(string(data)); convErr == nil && n >= 0 {
			step = n
		} else {
			s.logger.Warn("discarded unreadable wizard step", zap.ByteString("value", data))
		}
	}

	s.mu.Lock()
	s.draft, s.status, s.step = draft, status, step
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() domain.TaxpayerDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone()
}

// Status returns the return status.
func (s *Session) Status() domain.ReturnStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Step returns the persisted wizard position.
func (s *Session) Step() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// Version increases on every change to the session.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a consistent copy of the whole session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Update applies fn to a copy of the draft, then stores the copy.
func (s *Session) Update(ctx context.Context, fn func(*domain.TaxpayerDraft)) error {
	return s.mutate(ctx, func(d *domain.TaxpayerDraft) error {
		fn(d)
		return nil
	})
}

// Replace swaps in a whole new draft.
func (s *Session) Replace(ctx context.Context, draft domain.TaxpayerDraft) error {
	return s.Update(ctx, func(d *domain.TaxpayerDraft) { *d = draft.Clone() })
}

// Merge applies a partial JSON document to the draft. Nested sections are
// merged field by field. A patch with mistyped fields is rejected whole.
func (s *Session) Merge(ctx context.Context, patch []byte) error {
	return s.mutate(ctx, func(d *domain.TaxpayerDraft) error {
		if err := json.Unmarshal(patch, d); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
		}
		return nil
	})
}

func (s *Session) mutate(ctx context.Context, fn func(*domain.TaxpayerDraft) error) error {
	s.mu.Lock()
	next := s.draft.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.draft = next
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return s.persistDraft(ctx, snap.Draft)
}

// SetStatus stores a new return status.
func (s *Session) SetStatus(ctx context.Context, status domain.ReturnStatus) error {
	s.mu.Lock()
	s.status = status
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode return status: %w", err)
	}
	if err := s.repo.Put(ctx, KeyStatus, data); err != nil {
		return fmt.Errorf("save return status: %w", err)
	}
	return nil
}

// Transition replaces the return status with fn's result. fn sees the
// status and the calculation for the current draft, and runs under the
// session lock, so overlapping transitions apply one after the other. The
// new status is saved before it becomes visible; on any error the status is
// unchanged. fn must not call back into the session.
func (s *Session) Transition(ctx context.Context, fn func(domain.ReturnStatus, domain.TaxCalculationResult) (domain.ReturnStatus, error)) (domain.ReturnStatus, error) {
	s.mu.Lock()
	current := s.status
	next, err := fn(current, s.calculationLocked())
	if err != nil {
		s.mu.Unlock()
		return current, err
	}
	data, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		return current, fmt.Errorf("encode return status: %w", err)
	}
	if err := s.repo.Put(ctx, KeyStatus, data); err != nil {
		s.mu.Unlock()
		return current, fmt.Errorf("save return status: %w", err)
	}
	s.status = next
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	s.logger.Info("return status changed",
		zap.String("from", string(current.Step)), zap.String("to", string(next.Step)))
	return next, nil
}

// SetStep stores the wizard position.
func (s *Session) SetStep(ctx context.Context, step int) error {
	if step < 0 {
		step = 0
	}
	s.mu.Lock()
	s.step = step
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	if err := s.repo.Put(ctx, KeyStep, []byte(strconv.Itoa(step))); err != nil {
		return fmt.Errorf("save wizard step: %w", err)
	}
	return nil
}

// Reset clears all persisted keys and starts a new empty return.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyDraft, KeyStatus, KeyStep); err != nil {
		return fmt.Errorf("reset return: %w", err)
	}

	s.mu.Lock()
	s.draft = domain.NewDraft()
	s.status = domain.NewReturnStatus()
	s.step = 0
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	s.logger.Info("return reset")
	return nil
}

// Calculation returns the result for the current draft, computing it only
// when the draft changed since the last call.
func (s *Session) Calculation() domain.TaxCalculationResult {
	s.mu.RLock()
	version := s.version
	draft := s.draft.Clone()
	s.mu.RUnlock()
	return s.calculate(version, draft)
}

// calculationLocked is Calculation for callers already holding s.mu.
func (s *Session) calculationLocked() domain.TaxCalculationResult {
	return s.calculate(s.version, s.draft.Clone())
}

func (s *Session) calculate(version uint64, draft domain.TaxpayerDraft) domain.TaxCalculationResult {
	s.calcMu.Lock()
	defer s.calcMu.Unlock()
	if s.cachedValid && s.cachedAt == version {
		return s.cached
	}
	s.cached = s.calc.Calculate(draft)
	s.cachedAt = version
	s.cachedValid = true
	return s.cached
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Session) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{Version: s.version, Draft: s.draft.Clone(), Status: s.status, Step: s.step}
}

func (s *Session) persistDraft(ctx context.Context, draft domain.TaxpayerDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.repo.Put(ctx, KeyDraft, data); err != nil {
		s.logger.Error("failed to save draft", zap.Error(err))
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}
