package interview

import (
	"strings"
	"unicode/utf8"
)

// Verdict 一次回答的分类结果
type Verdict int

const (
	VerdictUnknown Verdict = iota + 1
	VerdictShort
	VerdictCorrect
	VerdictPartial
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictUnknown:
		return "unknown"
	case VerdictShort:
		return "short"
	case VerdictCorrect:
		return "correct"
	case VerdictPartial:
		return "partial"
	case VerdictIncorrect:
		return "incorrect"
	}
	return "invalid"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Points 本题计入会话总分的分值
func (v Verdict) Points() int {
	switch v {
	case VerdictCorrect:
		return 10
	case VerdictPartial:
		return 5
	}
	return 0
}

// AnswerScore 单题 1-5 分制得分，用于保存面试记录
func (v Verdict) AnswerScore() int {
	switch v {
	case VerdictCorrect:
		return 5
	case VerdictPartial:
		return 3
	}
	return 1
}

// UnknownPhrases 表示"不会"的短语，按子串匹配
var UnknownPhrases = []string{"i don't know", "idk", "no idea", "not sure", "pass", "skip", "no clue"}

const (
	DefaultShortLength      = 20
	DefaultCorrectThreshold = 1
)

// Grading 评分参数
// CorrectThreshold 为 1 时命中任一关键词即为 Correct，Partial 不会出现
type Grading struct {
	CorrectThreshold int
	ShortLength      int
}

func DefaultGrading() Grading {
	return Grading{CorrectThreshold: DefaultCorrectThreshold, ShortLength: DefaultShortLength}
}

func (g Grading) normalized() Grading {
	if g.CorrectThreshold < 1 {
		g.CorrectThreshold = DefaultCorrectThreshold
	}
	if g.ShortLength <= 0 {
		g.ShortLength = DefaultShortLength
	}
	return g
}

// Evaluation 分类结果及命中的关键词（按题目中的顺序）
type Evaluation struct {
	Verdict Verdict  `json:"verdict"`
	Matches []string `json:"matches"`
	Points  int      `json:"points"`
}

// Classify 对回答分类，依次判断：不会、过短、关键词命中数
func Classify(answer string, q Question, g Grading) Evaluation {
	g = g.normalized()
	lower := strings.ToLower(answer)

	for _, phrase := range UnknownPhrases {
		if strings.Contains(lower, phrase) {
			return Evaluation{Verdict: VerdictUnknown, Matches: []string{}}
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(answer)) < g.ShortLength {
		return Evaluation{Verdict: VerdictShort, Matches: []string{}}
	}

	matches := MatchKeywords(answer, q.Keywords)
	verdict := VerdictIncorrect
	switch n := len(matches); {
	case n >= g.CorrectThreshold:
		verdict = VerdictCorrect
	case n > 0:
		verdict = VerdictPartial
	}
	return Evaluation{Verdict: verdict, Matches: matches, Points: verdict.Points()}
}

// MatchKeywords 返回作为子串（忽略大小写）出现在回答中的关键词
func MatchKeywords(answer string, keywords []string) []string {
	lower := strings.ToLower(answer)
	matches := []string{}
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			matches = append(matches, k)
		}
	}
	return matches
}
