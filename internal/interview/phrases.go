package interview

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Phrasebook 面试官的话术池，只影响展示，不参与评分
type Phrasebook struct {
	Intros      []string
	Thinking    []string
	Transitions []string
	Praise      []string
	Correction  []string
	Unknown     []string
	Short       []string
	Partial     []string
	Closing     string
}

func DefaultPhrasebook() Phrasebook {
	return Phrasebook{
		Intros: []string{
			"Nice to meet you. I'll be conducting your technical interview today.",
			"Hi there. I'm looking forward to discussing your background and skills.",
			"Hello. Let's dive into some technical concepts and see how you approach problems.",
		},
		Thinking: []string{
			"Let me see...",
			"Interesting...",
			"Okay...",
			"Right...",
			"Taking a look...",
		},
		Transitions: []string{
			"Moving on to the next topic.",
			"Let's shift gears a bit.",
			"Here's a scenario for you.",
			"Ready for the next one?",
			"Okay, next question.",
		},
		Praise: []string{
			"That's a solid explanation. I like how you structured that.",
			"Spot on. You clearly understand the core concept.",
			"Exactly. That's the key point I was looking for.",
			"Good answer. Efficient and clear.",
			"I agree with your reasoning there.",
		},
		Correction: []string{
			"That's one way to look at it, but typically we consider...",
			"You're close, but you missed a crucial detail. Consider this:",
			"Not quite. In a production environment, we'd actually say:",
			"I see where you're coming from, but strictly speaking:",
			"That's a common misconception. Actually,",
		},
		Unknown: []string{
			"That's okay! It's better to admit when you're unsure than to guess. Here's how it works:",
			"No worries, this is a tricky concept. Let me break it down for you:",
			"That's perfectly fine. We encounter this often. Here's the key takeaway:",
			"Honesty is good. Let's turn this into a learning moment:",
			"Don't sweat it. Let's go through the answer together:",
		},
		Short: []string{
			"Could you elaborate on that a bit more?",
			"That's a start, but I'd love to hear more details.",
			"Can you expand on that? Usage or examples?",
			"Brief is good, but for this interview, walk me through your thinking.",
			"Interesting point. How would you apply that in a real feature?",
		},
		Partial: []string{
			"You're on the right track, but there's a bit more to it.",
			"You've got the core idea. Don't forget about the edge cases.",
			"That's partially correct. Also consider the performance implications.",
			"Good start. Expanding on that...",
			"You covered one aspect well. Let's look at the full picture:",
		},
		Closing: "That wraps up our technical session. I have a good sense of your skills now.",
	}
}

// Picker 从话术池中选一句
type Picker interface {
	Pick(pool []string) string
}

// RandomPicker 均匀随机选择，可并发使用
type RandomPicker struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandomPicker() *RandomPicker {
	return &RandomPicker{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *RandomPicker) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return pool[p.r.Intn(len(pool))]
}

// FirstPicker 总是返回第一句
type FirstPicker struct{}

func (FirstPicker) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[0]
}

// firstSentence 解释文本中第一个句号之前的部分
func firstSentence(text string) string {
	if i := strings.Index(text, "."); i >= 0 {
		return text[:i]
	}
	return text
}

func joinSentence(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Feedback 根据分类结果生成面试官的回复
func Feedback(eval Evaluation, q Question, pb Phrasebook, p Picker) string {
	switch eval.Verdict {
	case VerdictUnknown:
		return joinSentence(p.Pick(pb.Unknown), q.Explanation)
	case VerdictShort:
		return joinSentence(p.Pick(pb.Short), fmt.Sprintf("(Hint: %s...)", firstSentence(q.Explanation)))
	case VerdictCorrect:
		shown := eval.Matches
		if len(shown) > 2 {
			shown = shown[:2]
		}
		bold := make([]string, len(shown))
		for i, m := range shown {
			bold[i] = "**" + m + "**"
		}
		return joinSentence(
			fmt.Sprintf("Good job mentioning %s.", strings.Join(bold, " and ")),
			p.Pick(pb.Praise),
			firstSentence(q.Explanation)+".",
		)
	case VerdictPartial:
		return joinSentence(p.Pick(pb.Partial), q.Explanation)
	default:
		return joinSentence(missedKeywords(q.Keywords), p.Pick(pb.Correction), q.Explanation)
	}
}

func missedKeywords(keywords []string) string {
	switch len(keywords) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("I noticed you didn't mention **%s**.", keywords[0])
	}
	return fmt.Sprintf("I noticed you didn't mention **%s** or **%s**.", keywords[0], keywords[1])
}
