package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontendQuestion(t *testing.T, i int) Question {
	t.Helper()
	track, err := DefaultBank().Track("Frontend")
	require.NoError(t, err)
	return track.Questions[i]
}

func TestClassifyUnknownTakesPriority(t *testing.T) {
	q := frontendQuestion(t, 0)

	eval := Classify("I don't know", q, DefaultGrading())
	assert.Equal(t, VerdictUnknown, eval.Verdict)
	assert.Zero(t, eval.Points)

	// 即使包含关键词也判为 Unknown
	eval = Classify("Honestly not sure, maybe a closure with lexical scope?", q, DefaultGrading())
	assert.Equal(t, VerdictUnknown, eval.Verdict)
}

func TestClassifyShortBeforeKeywords(t *testing.T) {
	q := frontendQuestion(t, 0)

	assert.Equal(t, VerdictShort, Classify("hello", q, DefaultGrading()).Verdict)
	// 命中关键词但长度不足
	assert.Equal(t, VerdictShort, Classify("a closure", q, DefaultGrading()).Verdict)
}

func TestClassifyCorrect(t *testing.T) {
	q := frontendQuestion(t, 0)

	eval := Classify("I would return a CLOSURE that captures the variable", q, DefaultGrading())
	assert.Equal(t, VerdictCorrect, eval.Verdict)
	assert.Equal(t, 10, eval.Points)
	assert.Equal(t, []string{"closure"}, eval.Matches)
}

func TestClassifyIncorrect(t *testing.T) {
	q := frontendQuestion(t, 0)

	eval := Classify("I would store it in a global variable somewhere", q, DefaultGrading())
	assert.Equal(t, VerdictIncorrect, eval.Verdict)
	assert.Empty(t, eval.Matches)
	assert.Zero(t, eval.Points)
}

func TestClassifyPartialUnreachableWithDefaultThreshold(t *testing.T) {
	q := frontendQuestion(t, 0)
	eval := Classify("the lexical environment keeps it around for later", q, DefaultGrading())
	assert.Equal(t, VerdictCorrect, eval.Verdict)
}

func TestClassifyPartialWithHigherThreshold(t *testing.T) {
	q := frontendQuestion(t, 0)
	g := Grading{CorrectThreshold: 2}

	eval := Classify("the lexical environment keeps it around for later", q, g)
	assert.Equal(t, VerdictPartial, eval.Verdict)
	assert.Equal(t, 5, eval.Points)

	eval = Classify("a closure over the lexical environment keeps it", q, g)
	assert.Equal(t, VerdictCorrect, eval.Verdict)
	assert.Equal(t, []string{"closure", "lexical"}, eval.Matches)
}

func TestVerdictAnswerScore(t *testing.T) {
	assert.Equal(t, 5, VerdictCorrect.AnswerScore())
	assert.Equal(t, 3, VerdictPartial.AnswerScore())
	assert.Equal(t, 1, VerdictIncorrect.AnswerScore())
	assert.Equal(t, 1, VerdictShort.AnswerScore())
	assert.Equal(t, "unknown", VerdictUnknown.String())
}

func TestFeedbackText(t *testing.T) {
	q := frontendQuestion(t, 0)
	pb := DefaultPhrasebook()

	correct := Feedback(Evaluation{Verdict: VerdictCorrect, Matches: []string{"closure", "lexical", "remember"}}, q, pb, FirstPicker{})
	assert.Equal(t, "Good job mentioning **closure** and **lexical**. "+pb.Praise[0]+" This describes a **Closure**.", correct)

	incorrect := Feedback(Evaluation{Verdict: VerdictIncorrect}, q, pb, FirstPicker{})
	assert.Equal(t, "I noticed you didn't mention **closure** or **outer scope**. "+pb.Correction[0]+" "+q.Explanation, incorrect)

	short := Feedback(Evaluation{Verdict: VerdictShort}, q, pb, FirstPicker{})
	assert.Equal(t, pb.Short[0]+" (Hint: This describes a **Closure**...)", short)

	unknown := Feedback(Evaluation{Verdict: VerdictUnknown}, q, pb, FirstPicker{})
	assert.Equal(t, pb.Unknown[0]+" "+q.Explanation, unknown)
}

func TestBankLookup(t *testing.T) {
	bank := DefaultBank()

	track, err := bank.Track("backend")
	require.NoError(t, err)
	assert.Len(t, track.Questions, 3)

	_, err = bank.Track("Gardening")
	assert.ErrorIs(t, err, ErrUnknownTrack)

	names := []string{}
	for _, tr := range bank.Tracks() {
		names = append(names, tr.Name)
	}
	assert.Equal(t, []string{"Frontend", "Backend", "Behavioral"}, names)
}
