package interview

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// State 面试会话状态：Setup -> Active -> Completed
type State int

const (
	StateSetup State = iota
	StateActive
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	}
	return "invalid"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	SenderAI   = "ai"
	SenderUser = "user"
)

// Message 对话记录中的一条
type Message struct {
	Sender     string `json:"sender"`
	Text       string `json:"text"`
	Correction bool   `json:"isCorrection,omitempty"`
}

// ShortPolicy 回答过短时是否进入下一题
type ShortPolicy string

const (
	ShortRetry   ShortPolicy = "retry"
	ShortAdvance ShortPolicy = "advance"
)

// ParseShortPolicy 未知取值按 retry 处理
func ParseShortPolicy(s string) ShortPolicy {
	if ShortPolicy(strings.ToLower(strings.TrimSpace(s))) == ShortAdvance {
		return ShortAdvance
	}
	return ShortRetry
}

const DefaultDurationMinutes = 15

type Options struct {
	Grading         Grading
	ShortPolicy     ShortPolicy
	Phrases         Phrasebook
	Picker          Picker
	DurationMinutes int
}

func DefaultOptions() Options {
	return Options{
		Grading:         DefaultGrading(),
		ShortPolicy:     ShortRetry,
		Phrases:         DefaultPhrasebook(),
		Picker:          NewRandomPicker(),
		DurationMinutes: DefaultDurationMinutes,
	}
}

// Answer 单题最终回答，Score 为 1-5 分
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
}

// Result 面试结束时的汇总
type Result struct {
	Track        string    `json:"track"`
	Score        int       `json:"score"`
	Accuracy     int       `json:"accuracy"`
	OverallScore float64   `json:"overallScore"`
	Duration     int       `json:"duration"`
	Answers      []Answer  `json:"answers"`
	StartedAt    time.Time `json:"startedAt"`
	CompletedAt  time.Time `json:"completedAt"`
}

// Turn 一次回答的处理结果
type Turn struct {
	Evaluation Evaluation `json:"evaluation"`
	Feedback   Message    `json:"feedback"`
}

// Engine 脚本化面试的状态机，不是并发安全的，由调用方串行使用
type Engine struct {
	bank *Bank
	opts Options

	state      State
	track      Track
	index      int
	score      int
	pending    *Turn
	transcript []Message
	answers    []Answer
	startedAt  time.Time
	now        func() time.Time
}

func NewEngine(bank *Bank, opts Options) *Engine {
	if opts.Picker == nil {
		opts.Picker = NewRandomPicker()
	}
	if opts.ShortPolicy == "" {
		opts.ShortPolicy = ShortRetry
	}
	if opts.DurationMinutes <= 0 {
		opts.DurationMinutes = DefaultDurationMinutes
	}
	return &Engine{bank: bank, opts: opts, now: time.Now}
}

func (e *Engine) State() State          { return e.state }
func (e *Engine) Score() int            { return e.score }
func (e *Engine) TrackName() string     { return e.track.Name }
func (e *Engine) QuestionIndex() int    { return e.index }
func (e *Engine) Pending() bool         { return e.pending != nil }
func (e *Engine) Transcript() []Message { return append([]Message(nil), e.transcript...) }

// Accuracy 会话得分占满分的百分比，四舍五入
func (e *Engine) Accuracy() int {
	n := len(e.track.Questions)
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(e.score) / float64(n*10) * 100))
}

// OverallScore 换算为 5 分制：score / 10，最高 5
func (e *Engine) OverallScore() float64 {
	return math.Min(float64(e.score)/10, 5)
}

func (e *Engine) say(text string, correction bool) Message {
	m := Message{Sender: SenderAI, Text: text, Correction: correction}
	e.transcript = append(e.transcript, m)
	return m
}

// Start 选择方向并开始面试；track 为空时沿用重置前保留的方向
func (e *Engine) Start(track string) ([]Message, error) {
	if e.state != StateSetup {
		return nil, fmt.Errorf("%w: cannot start from %s", ErrInvalidState, e.state)
	}
	name := track
	if strings.TrimSpace(name) == "" {
		name = e.track.Name
	}
	t, err := e.bank.Track(name)
	if err != nil {
		return nil, err
	}
	if len(t.Questions) == 0 {
		return nil, fmt.Errorf("%w: track %q has no questions", ErrUnknownTrack, t.Name)
	}

	e.track = t
	e.state = StateActive
	e.index = 0
	e.score = 0
	e.pending = nil
	e.transcript = nil
	e.answers = nil
	e.startedAt = e.now()

	pb := e.opts.Phrases
	return []Message{
		e.say(fmt.Sprintf("%s I'm your interviewer for the %s role.", e.opts.Picker.Pick(pb.Intros), t.Name), false),
		e.say("Let's start with this: "+t.Questions[0].Text, false),
	}, nil
}

// CurrentQuestion 当前待回答的题目
func (e *Engine) CurrentQuestion() (Question, bool) {
	if e.state != StateActive || e.index >= len(e.track.Questions) {
		return Question{}, false
	}
	return e.track.Questions[e.index], true
}

// Answer 对当前题目的回答评分并生成反馈；在 Advance 之前不接受新的回答
func (e *Engine) Answer(text string) (*Turn, error) {
	if e.state != StateActive {
		return nil, fmt.Errorf("%w: no active question", ErrInvalidState)
	}
	if e.pending != nil {
		return nil, ErrTurnPending
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty answer", ErrInvalidState)
	}

	q := e.track.Questions[e.index]
	e.transcript = append(e.transcript, Message{Sender: SenderUser, Text: text})

	eval := Classify(text, q, e.opts.Grading)
	e.score += eval.Points
	correction := eval.Verdict == VerdictIncorrect || eval.Verdict == VerdictUnknown
	turn := &Turn{
		Evaluation: eval,
		Feedback:   e.say(Feedback(eval, q, e.opts.Phrases, e.opts.Picker), correction),
	}

	if !e.retrying(eval) {
		e.answers = append(e.answers, Answer{Question: q.Text, Answer: text, Score: eval.Verdict.AnswerScore()})
	}
	e.pending = turn
	return turn, nil
}

func (e *Engine) retrying(eval Evaluation) bool {
	return eval.Verdict == VerdictShort && e.opts.ShortPolicy == ShortRetry
}

// Advance 结束当前回合：进入下一题、重新作答，或在题目用尽时完成面试
// 返回新增的消息（重新作答时为 nil）；完成时返回 Result
func (e *Engine) Advance() (*Message, *Result, error) {
	if e.state != StateActive || e.pending == nil {
		return nil, nil, fmt.Errorf("%w: no answer to advance from", ErrInvalidState)
	}
	turn := e.pending
	e.pending = nil

	if e.retrying(turn.Evaluation) {
		return nil, nil, nil
	}

	e.index++
	if e.index < len(e.track.Questions) {
		next := e.track.Questions[e.index]
		m := e.say(e.opts.Picker.Pick(e.opts.Phrases.Transitions)+" "+next.Text, false)
		return &m, nil, nil
	}

	m := e.say(e.opts.Phrases.Closing, false)
	e.state = StateCompleted
	return &m, e.result(), nil
}

func (e *Engine) result() *Result {
	return &Result{
		Track:        e.track.Name,
		Score:        e.score,
		Accuracy:     e.Accuracy(),
		OverallScore: e.OverallScore(),
		Duration:     e.opts.DurationMinutes,
		Answers:      append([]Answer(nil), e.answers...),
		StartedAt:    e.startedAt,
		CompletedAt:  e.now(),
	}
}

// Reset 回到 Setup；keepTrack 为 true 时保留当前方向以便直接重新开始
func (e *Engine) Reset(keepTrack bool) {
	if !keepTrack {
		e.track = Track{}
	}
	e.state = StateSetup
	e.index = 0
	e.score = 0
	e.pending = nil
	e.transcript = nil
	e.answers = nil
}
