package interview

import (
	"context"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Recorder 保存完成的面试；由会话在后台调用，失败只记录日志
type Recorder interface {
	RecordInterview(ctx context.Context, userID uint, result Result) error
}

const (
	FrameMessage   = "message"
	FrameTyping    = "typing"
	FrameCompleted = "completed"
	FrameState     = "state"
	FrameError     = "error"
)

// Frame 推送给客户端的一帧
type Frame struct {
	Type       string      `json:"type"`
	Message    *Message    `json:"message,omitempty"`
	Typing     *bool       `json:"typing,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Result     *Result     `json:"result,omitempty"`
	State      string      `json:"state,omitempty"`
	Score      *int        `json:"score,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Pacing 模拟面试官"思考"和"阅读"的停顿
type Pacing struct {
	Thinking   time.Duration
	Reading    time.Duration
	Correction time.Duration
	Closing    time.Duration
}

const recordTimeout = 10 * time.Second

// Session 给 Engine 加上节奏控制；同一时间只处理一个回答
// 重置会使进行中的回合失效，其后续输出被丢弃
type Session struct {
	mu       sync.Mutex
	engine   *Engine
	userID   uint
	pacing   Pacing
	recorder Recorder
	emit     func(Frame)

	gen  uint64
	busy bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession emit 必须是非阻塞的
func NewSession(ctx context.Context, userID uint, engine *Engine, pacing Pacing, recorder Recorder, emit func(Frame)) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		engine:   engine,
		userID:   userID,
		pacing:   pacing,
		recorder: recorder,
		emit:     emit,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Session) SetPacing(p Pacing) {
	s.mu.Lock()
	s.pacing = p
	s.mu.Unlock()
}

func typing(on bool) Frame {
	return Frame{Type: FrameTyping, Typing: &on}
}

func (s *Session) stateFrame() Frame {
	score := s.engine.Score()
	return Frame{Type: FrameState, State: s.engine.State().String(), Score: &score}
}

// wait 睡眠 d，会话关闭时提前返回 false
func (s *Session) wait(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// current 在持锁状态下确认回合仍然有效
func (s *Session) current(gen uint64) bool {
	return s.gen == gen && s.ctx.Err() == nil
}

func (s *Session) Start(track string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrTurnPending
	}
	msgs, err := s.engine.Start(track)
	if err != nil {
		return err
	}
	s.busy = true
	gen := s.gen
	thinking := s.pacing.Thinking
	s.emit(s.stateFrame())
	s.emit(typing(true))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if !s.wait(thinking) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.current(gen) {
			return
		}
		for i := range msgs {
			s.emit(Frame{Type: FrameMessage, Message: &msgs[i]})
		}
		s.busy = false
		s.emit(typing(false))
	}()
	return nil
}

func (s *Session) Answer(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrTurnPending
	}
	turn, err := s.engine.Answer(text)
	if err != nil {
		return err
	}
	s.busy = true
	gen := s.gen
	pacing := s.pacing
	s.emit(typing(true))

	s.wg.Add(1)
	go s.finishTurn(gen, turn, pacing)
	return nil
}

func (s *Session) finishTurn(gen uint64, turn *Turn, pacing Pacing) {
	defer s.wg.Done()

	if !s.wait(pacing.Thinking) {
		return
	}
	s.mu.Lock()
	if !s.current(gen) {
		s.mu.Unlock()
		return
	}
	eval := turn.Evaluation
	s.emit(Frame{Type: FrameMessage, Message: &turn.Feedback, Evaluation: &eval})
	s.emit(s.stateFrame())
	s.mu.Unlock()

	reading := pacing.Reading
	if eval.Verdict != VerdictCorrect {
		reading = pacing.Correction
	}
	if !s.wait(reading) {
		return
	}

	s.mu.Lock()
	if !s.current(gen) {
		s.mu.Unlock()
		return
	}
	msg, result, err := s.engine.Advance()
	if err != nil {
		s.busy = false
		s.emit(Frame{Type: FrameError, Error: err.Error()})
		s.mu.Unlock()
		return
	}
	if msg != nil {
		s.emit(Frame{Type: FrameMessage, Message: msg})
	}
	if result == nil {
		s.busy = false
		s.emit(typing(false))
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// 题目用尽即视为完成，保存不等待结束语的停顿
	monitoring.InterviewSessions.WithLabelValues(strings.ToLower(result.Track), "completed").Inc()
	s.record(*result)

	if !s.wait(pacing.Closing) {
		return
	}
	s.mu.Lock()
	if !s.current(gen) {
		s.mu.Unlock()
		return
	}
	s.busy = false
	s.emit(typing(false))
	s.emit(Frame{Type: FrameCompleted, Result: result})
	s.emit(s.stateFrame())
	s.mu.Unlock()
}

// record 后台保存面试结果，不受会话关闭影响
func (s *Session) record(result Result) {
	if s.recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.recorder.RecordInterview(ctx, s.userID, result); err != nil {
			logger.Log.Warn("Failed to record interview session",
				zap.Uint("userID", s.userID),
				zap.String("track", result.Track),
				zap.Error(err))
		}
	}()
}

// Reset 丢弃进行中的回合并回到 Setup
func (s *Session) Reset(keepTrack bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.State() == StateActive {
		monitoring.InterviewSessions.WithLabelValues(strings.ToLower(s.engine.TrackName()), "reset").Inc()
	}
	s.gen++
	s.busy = false
	s.engine.Reset(keepTrack)
	s.emit(typing(false))
	s.emit(s.stateFrame())
}

// Close 结束会话并等待进行中的回合退出
func (s *Session) Close() {
	s.mu.Lock()
	if s.engine.State() == StateActive {
		monitoring.InterviewSessions.WithLabelValues(strings.ToLower(s.engine.TrackName()), "abandoned").Inc()
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
