package interview

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTrack = errors.New("unknown interview track")
	ErrInvalidState = errors.New("invalid interview state")
	ErrTurnPending  = errors.New("previous answer is still being evaluated")
)

// Question 题库中的一道面试题
type Question struct {
	Text        string   `json:"question"`
	Keywords    []string `json:"keywords"`
	Explanation string   `json:"explanation"`
}

// Track 一个面试方向及其有序题目
type Track struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Bank 只读题库，启动时加载
type Bank struct {
	tracks []Track
}

func NewBank(tracks ...Track) *Bank {
	return &Bank{tracks: tracks}
}

// Track 按名称查找方向，忽略大小写
func (b *Bank) Track(name string) (Track, error) {
	for _, t := range b.tracks {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Track{}, fmt.Errorf("%w: %q", ErrUnknownTrack, name)
}

func (b *Bank) Tracks() []Track {
	out := make([]Track, len(b.tracks))
	copy(out, b.tracks)
	return out
}

// DefaultBank 内置的 Frontend / Backend / Behavioral 三个方向
func DefaultBank() *Bank {
	return NewBank(
		Track{
			Name: "Frontend",
			Questions: []Question{
				{
					Text:        "Imagine you have a variable inside a function that you need to access after the function finishes executing. How would you implement this pattern in JavaScript?",
					Keywords:    []string{"closure", "outer scope", "lexical", "return function", "remember"},
					Explanation: "This describes a **Closure**. A closure allows a function to access variables from its outer (enclosing) lexical scope even after that outer function has returned.",
				},
				{
					Text:        "We noticed our React app is re-rendering too often. How would you debug this and what techniques would you use to optimize performance?",
					Keywords:    []string{"memo", "usememo", "usecallback", "profiler", "dependency array", "virtual dom"},
					Explanation: "I'd start by using the **React Profiler** to identify expensive renders. Then, I'd apply `React.memo` for components, and `useMemo`/`useCallback` to cache values and functions.",
				},
				{
					Text:        "How would you design a button component that needs to support multiple themes (light/dark) and sizes without prop drilling?",
					Keywords:    []string{"context api", "css variables", "styled components", "theme provider", "props"},
					Explanation: "I would use **React Context API** or a **Theme Provider** to pass theme data globally. For the component itself, I'd use CSS variables or a utility-first approach to handle the dynamic styles.",
				},
				{
					Text:        "Explain the Box Model to a junior developer who is confused why their element is wider than the specified width.",
					Keywords:    []string{"box-sizing", "border-box", "padding", "border", "content-box"},
					Explanation: "The default `content-box` adds padding and border to the defined width. I'd explain how `box-sizing: border-box` solves this by including padding and border *within* the total width.",
				},
			},
		},
		Track{
			Name: "Backend",
			Questions: []Question{
				{
					Text:        "We need to choose a database for a social media app with millions of interconnected users. SQL or NoSQL? Defend your choice.",
					Keywords:    []string{"nosql", "graph database", "relationships", "scaling", "flexible schema", "sql"},
					Explanation: "For complex relationships (friends of friends), a **Graph Database** (NoSQL) like Neo4j is ideal. If strict consistency is key (payments), SQL is better. For general feeds, a document store (MongoDB) works well for scaling.",
				},
				{
					Text:        "You have an endpoint that performs a heavy image processing task. How do you prevent this from blocking the main thread in Node.js?",
					Keywords:    []string{"worker threads", "child process", "queue", "offload", "asynchronous", "cluster"},
					Explanation: "Since Node is single-threaded, I would offload CPU-intensive tasks to **Worker Threads**, a separate **Microservice**, or use a message queue (like RabbitMQ) to process it asynchronously background.",
				},
				{
					Text:        "I want to log every incoming request method and URL in my Express app. Where would I put this logic?",
					Keywords:    []string{"middleware", "app.use", "before routes", "logging", "next"},
					Explanation: "I would create a custom **Middleware** function using `app.use()` at the top level of the application, before any route definitions, ensuring it intercepts every request.",
				},
			},
		},
		Track{
			Name: "Behavioral",
			Questions: []Question{
				{
					Text:        "Tell me about a time you had to deal with a legacy codebase with no documentation. How did you handle it?",
					Keywords:    []string{"read code", "tests", "debug", "small changes", "documentation", "ask team"},
					Explanation: "I started by reading existing tests to understand expected behavior. I used debuggers to trace execution flow, refactored small pieces incrementally, and wrote documentation as I learned.",
				},
				{
					Text:        "A Product Manager gives you a feature requirement that you know will cause performance issues. What do you do?",
					Keywords:    []string{"communicate", "trade-offs", "alternative", "data", "compromise", "solution"},
					Explanation: "I would communicate the technical risks clearly, explaining *why* it affects performance. I'd then propose an **alternative solution** that meets the user need without compromising the system.",
				},
			},
		},
	)
}
