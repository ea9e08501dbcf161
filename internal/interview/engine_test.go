package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 每题都包含第一个关键词，且不含"不会"类短语
var frontendAnswers = []string{
	"I would use a closure to keep the variable alive",
	"Wrap the heavy component with memo to avoid renders",
	"I would use the context api for the theme values",
	"Set box-sizing so the width includes everything",
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Picker = FirstPicker{}
	return opts
}

func answerAndAdvance(t *testing.T, e *Engine, text string) (*Turn, *Message, *Result) {
	t.Helper()
	turn, err := e.Answer(text)
	require.NoError(t, err)
	msg, result, err := e.Advance()
	require.NoError(t, err)
	return turn, msg, result
}

func TestEngineFrontendAllCorrect(t *testing.T) {
	e := NewEngine(DefaultBank(), testOptions())

	intro, err := e.Start("Frontend")
	require.NoError(t, err)
	require.Len(t, intro, 2)
	assert.Contains(t, intro[0].Text, "I'm your interviewer for the Frontend role.")
	assert.Contains(t, intro[1].Text, "Let's start with this: Imagine you have a variable")
	assert.Equal(t, StateActive, e.State())

	var result *Result
	for i, answer := range frontendAnswers {
		turn, msg, res := answerAndAdvance(t, e, answer)
		assert.Equal(t, VerdictCorrect, turn.Evaluation.Verdict, "answer %d", i)
		require.NotNil(t, msg)
		result = res
	}

	require.NotNil(t, result)
	assert.Equal(t, StateCompleted, e.State())
	assert.Equal(t, 40, result.Score)
	assert.Equal(t, 100, result.Accuracy)
	assert.InDelta(t, 4.0, result.OverallScore, 1e-9)
	assert.Equal(t, DefaultDurationMinutes, result.Duration)
	require.Len(t, result.Answers, 4)
	for _, a := range result.Answers {
		assert.Equal(t, 5, a.Score)
	}

	transcript := e.Transcript()
	assert.Equal(t, DefaultPhrasebook().Closing, transcript[len(transcript)-1].Text)
}

func TestEngineAccuracyRounding(t *testing.T) {
	e := NewEngine(DefaultBank(), testOptions())
	_, err := e.Start("Backend")
	require.NoError(t, err)

	answerAndAdvance(t, e, "NoSQL graph storage scales better here")
	answerAndAdvance(t, e, "I would just make the server much bigger")
	_, _, result := answerAndAdvance(t, e, "Put a middleware with app.use at the top")

	require.NotNil(t, result)
	assert.Equal(t, 20, result.Score)
	// 20 / 30 = 66.67%
	assert.Equal(t, 67, result.Accuracy)
	assert.InDelta(t, 2.0, result.OverallScore, 1e-9)
}

func TestEngineShortAnswerRetry(t *testing.T) {
	e := NewEngine(DefaultBank(), testOptions())
	_, err := e.Start("Behavioral")
	require.NoError(t, err)

	turn, msg, result := answerAndAdvance(t, e, "tests")
	assert.Equal(t, VerdictShort, turn.Evaluation.Verdict)
	assert.Nil(t, msg)
	assert.Nil(t, result)
	assert.Equal(t, 0, e.QuestionIndex())
	assert.Zero(t, e.Score())

	turn, msg, _ = answerAndAdvance(t, e, "I read the tests first and made small changes")
	assert.Equal(t, VerdictCorrect, turn.Evaluation.Verdict)
	require.NotNil(t, msg)
	assert.Equal(t, 1, e.QuestionIndex())
}

func TestEngineShortAnswerAdvance(t *testing.T) {
	opts := testOptions()
	opts.ShortPolicy = ShortAdvance
	e := NewEngine(DefaultBank(), opts)
	_, err := e.Start("Behavioral")
	require.NoError(t, err)

	_, msg, _ := answerAndAdvance(t, e, "tests")
	require.NotNil(t, msg)
	assert.Equal(t, 1, e.QuestionIndex())

	_, _, result := answerAndAdvance(t, e, "I would communicate the trade-offs with data")
	require.NotNil(t, result)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 50, result.Accuracy)
	require.Len(t, result.Answers, 2)
	assert.Equal(t, 1, result.Answers[0].Score)
}

func TestEnginePartialThreshold(t *testing.T) {
	opts := testOptions()
	opts.Grading.CorrectThreshold = 2
	e := NewEngine(DefaultBank(), opts)
	_, err := e.Start("Frontend")
	require.NoError(t, err)

	turn, err := e.Answer("I would use a closure to keep the variable alive")
	require.NoError(t, err)
	assert.Equal(t, VerdictPartial, turn.Evaluation.Verdict)
	assert.Equal(t, 5, e.Score())
}

func TestEngineTurnPending(t *testing.T) {
	e := NewEngine(DefaultBank(), testOptions())
	_, err := e.Start("Frontend")
	require.NoError(t, err)

	_, err = e.Answer(frontendAnswers[0])
	require.NoError(t, err)
	assert.True(t, e.Pending())

	_, err = e.Answer(frontendAnswers[1])
	assert.ErrorIs(t, err, ErrTurnPending)
}

func TestEngineInvalidTransitions(t *testing.T) {
	e := NewEngine(DefaultBank(), testOptions())

	_, err := e.Answer("anything long enough to count")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, _, err = e.Advance()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = e.Start("Nope")
	assert.ErrorIs(t, err, ErrUnknownTrack)

	_, err = e.Start("Frontend")
	require.NoError(t, err)
	_, err = e.Start("Backend")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEngineReset(t *testing.T) {
	e := NewEngine(DefaultBank(), testOptions())
	_, err := e.Start("Frontend")
	require.NoError(t, err)
	answerAndAdvance(t, e, frontendAnswers[0])

	e.Reset(true)
	assert.Equal(t, StateSetup, e.State())
	assert.Zero(t, e.Score())
	assert.Empty(t, e.Transcript())
	assert.Equal(t, "Frontend", e.TrackName())

	// 保留方向时可以不带参数重新开始
	_, err = e.Start("")
	require.NoError(t, err)
	assert.Equal(t, 0, e.QuestionIndex())

	e.Reset(false)
	assert.Empty(t, e.TrackName())
	_, err = e.Start("")
	assert.ErrorIs(t, err, ErrUnknownTrack)
}
