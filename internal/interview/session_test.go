package interview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu      sync.Mutex
	results []Result
	calls   chan Result
	err     error
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{calls: make(chan Result, 10)}
}

func (r *fakeRecorder) RecordInterview(ctx context.Context, userID uint, result Result) error {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
	r.calls <- result
	return r.err
}

type frameSink struct {
	ch chan Frame
}

func newFrameSink() *frameSink {
	return &frameSink{ch: make(chan Frame, 256)}
}

func (s *frameSink) emit(f Frame) {
	s.ch <- f
}

// next 读取帧直到 match 返回 true
func (s *frameSink) next(t *testing.T, match func(Frame) bool) Frame {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case f := <-s.ch:
			if match(f) {
				return f
			}
		case <-timeout:
			t.Fatal("timed out waiting for frame")
			return Frame{}
		}
	}
}

func idle(f Frame) bool {
	return f.Type == FrameTyping && f.Typing != nil && !*f.Typing
}

func isType(typ string) func(Frame) bool {
	return func(f Frame) bool { return f.Type == typ }
}

func TestSessionFrontendEndToEnd(t *testing.T) {
	sink := newFrameSink()
	rec := newFakeRecorder()
	s := NewSession(context.Background(), 42, NewEngine(DefaultBank(), testOptions()), Pacing{}, rec, sink.emit)
	defer s.Close()

	require.NoError(t, s.Start("Frontend"))
	sink.next(t, idle)

	for i, answer := range frontendAnswers {
		require.NoError(t, s.Answer(answer))
		f := sink.next(t, isType(FrameMessage))
		require.NotNil(t, f.Evaluation, "answer %d", i)
		assert.Equal(t, VerdictCorrect, f.Evaluation.Verdict)
		if i < len(frontendAnswers)-1 {
			sink.next(t, idle)
		}
	}

	done := sink.next(t, isType(FrameCompleted))
	require.NotNil(t, done.Result)
	assert.Equal(t, 40, done.Result.Score)
	assert.Equal(t, 100, done.Result.Accuracy)

	select {
	case got := <-rec.calls:
		assert.InDelta(t, 4.0, got.OverallScore, 1e-9)
		assert.Equal(t, "Frontend", got.Track)
	case <-time.After(2 * time.Second):
		t.Fatal("interview was not recorded")
	}
	select {
	case <-rec.calls:
		t.Fatal("interview recorded more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionRejectsAnswerWhilePending(t *testing.T) {
	sink := newFrameSink()
	s := NewSession(context.Background(), 1, NewEngine(DefaultBank(), testOptions()), Pacing{}, nil, sink.emit)
	defer s.Close()

	require.NoError(t, s.Start("Frontend"))
	sink.next(t, idle)

	s.SetPacing(Pacing{Thinking: 200 * time.Millisecond})
	require.NoError(t, s.Answer(frontendAnswers[0]))
	assert.ErrorIs(t, s.Answer(frontendAnswers[1]), ErrTurnPending)
}

func TestSessionResetDiscardsInFlightTurn(t *testing.T) {
	sink := newFrameSink()
	rec := newFakeRecorder()
	s := NewSession(context.Background(), 1, NewEngine(DefaultBank(), testOptions()), Pacing{}, rec, sink.emit)
	defer s.Close()

	require.NoError(t, s.Start("Frontend"))
	sink.next(t, idle)

	s.SetPacing(Pacing{Thinking: 100 * time.Millisecond})
	require.NoError(t, s.Answer(frontendAnswers[0]))
	s.Reset(true)

	time.Sleep(250 * time.Millisecond)
	for len(sink.ch) > 0 {
		f := <-sink.ch
		assert.NotEqual(t, FrameMessage, f.Type, "stale feedback delivered after reset")
	}

	// 重置后可以立即重新开始
	s.SetPacing(Pacing{})
	require.NoError(t, s.Start(""))
	f := sink.next(t, isType(FrameMessage))
	assert.Contains(t, f.Message.Text, "Frontend role")
	assert.Empty(t, rec.calls)
}

func TestSessionRecorderFailureIsNotSurfaced(t *testing.T) {
	sink := newFrameSink()
	rec := newFakeRecorder()
	rec.err = errors.New("database unavailable")
	s := NewSession(context.Background(), 7, NewEngine(DefaultBank(), testOptions()), Pacing{}, rec, sink.emit)
	defer s.Close()

	require.NoError(t, s.Start("Behavioral"))
	sink.next(t, idle)
	require.NoError(t, s.Answer("I read the tests first and made small changes"))
	sink.next(t, idle)
	require.NoError(t, s.Answer("I would communicate the trade-offs with data"))

	done := sink.next(t, isType(FrameCompleted))
	assert.Equal(t, 20, done.Result.Score)
	<-rec.calls
}
