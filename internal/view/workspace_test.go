package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"scriptgen/config"
	"scriptgen/internal/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	mu      sync.Mutex
	prompts []string
	code    string
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *stubSubmitter) Submit(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	return s.code, s.err
}

func (s *stubSubmitter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func recordStatuses(w *Workspace) *[]Status {
	var mu sync.Mutex
	statuses := []Status{}
	w.OnChange(func(s Snapshot) {
		mu.Lock()
		statuses = append(statuses, s.Status)
		mu.Unlock()
	})
	return &statuses
}

func TestWorkspace_InitialState(t *testing.T) {
	w := NewWorkspace(&stubSubmitter{})
	snap := w.Snapshot()

	assert.Equal(t, StatusIdle, snap.Status)
	assert.False(t, snap.ShowsOutput())
	assert.False(t, snap.ShowsError())
	assert.False(t, w.CanSubmit())
	assert.Equal(t, "Generate Script", snap.ButtonLabel())
}

func TestWorkspace_BlankPromptDoesNotSubmit(t *testing.T) {
	stub := &stubSubmitter{}
	w := NewWorkspace(stub)
	statuses := recordStatuses(w)

	for _, prompt := range []string{"", "   ", "\t\n"} {
		w.SetPrompt(prompt)
		assert.False(t, w.CanSubmit())
		assert.ErrorIs(t, w.Submit(context.Background()), generator.ErrEmptyPrompt)
	}

	assert.Equal(t, 0, stub.calls())
	assert.Empty(t, *statuses)
	assert.Equal(t, StatusIdle, w.Snapshot().Status)
}

func TestWorkspace_SuccessTransitions(t *testing.T) {
	stub := &stubSubmitter{code: "print('ok')"}
	w := NewWorkspace(stub)
	statuses := recordStatuses(w)

	w.SetPrompt("make a door")
	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, []Status{StatusGenerating, StatusSuccess}, *statuses)
	snap := w.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, "print('ok')", snap.Code)
	assert.Empty(t, snap.ErrorMessage)
	assert.True(t, snap.ShowsOutput())
	assert.Equal(t, []string{"make a door"}, stub.prompts)
}

func TestWorkspace_ErrorToSuccess(t *testing.T) {
	stub := &stubSubmitter{err: generator.ErrGenerationFailed}
	w := NewWorkspace(stub)
	w.SetPrompt("prompt")
	assert.Error(t, w.Submit(context.Background()))
	assert.Equal(t, StatusError, w.Snapshot().Status)

	statuses := recordStatuses(w)
	stub.err = nil
	stub.code = "code"
	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, []Status{StatusGenerating, StatusSuccess}, *statuses)
	assert.Empty(t, w.Snapshot().ErrorMessage)
}

func TestWorkspace_FailureClearsStaleCode(t *testing.T) {
	stub := &stubSubmitter{code: "old code"}
	w := NewWorkspace(stub)
	w.SetPrompt("first")
	require.NoError(t, w.Submit(context.Background()))
	require.Equal(t, "old code", w.Snapshot().Code)

	stub.err = errors.New("boom")
	stub.code = ""
	w.SetPrompt("second")
	err := w.Submit(context.Background())

	assert.Error(t, err)
	snap := w.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Empty(t, snap.Code)
	assert.False(t, snap.ShowsOutput())
	assert.True(t, snap.ShowsError())
	assert.Equal(t, config.FailureMessage, snap.ErrorMessage)
}

func TestWorkspace_GeneratingClearsPreviousOutput(t *testing.T) {
	stub := &stubSubmitter{code: "first code"}
	w := NewWorkspace(stub)
	w.SetPrompt("first")
	require.NoError(t, w.Submit(context.Background()))

	stub.block = make(chan struct{})
	stub.entered = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-stub.entered

	snap := w.Snapshot()
	assert.Equal(t, StatusGenerating, snap.Status)
	assert.Empty(t, snap.Code)
	assert.Empty(t, snap.ErrorMessage)
	assert.Equal(t, "Thinking...", snap.ButtonLabel())
	assert.False(t, snap.CanSubmit())

	close(stub.block)
	require.NoError(t, <-done)
}

func TestWorkspace_SingleRequestInFlight(t *testing.T) {
	stub := &stubSubmitter{
		code:    "code",
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	w := NewWorkspace(stub)
	statuses := recordStatuses(w)
	w.SetPrompt("prompt")

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-stub.entered

	assert.ErrorIs(t, w.Submit(context.Background()), ErrBusy)

	close(stub.block)
	require.NoError(t, <-done)

	assert.Equal(t, 1, stub.calls())
	// generating 恰好退出一次
	assert.Equal(t, []Status{StatusGenerating, StatusSuccess}, *statuses)
}

func TestStatus_IsSettled(t *testing.T) {
	assert.False(t, StatusIdle.IsSettled())
	assert.False(t, StatusGenerating.IsSettled())
	assert.True(t, StatusSuccess.IsSettled())
	assert.True(t, StatusError.IsSettled())
	assert.Equal(t, "generating", StatusGenerating.String())
}
