package repository

import (
	"context"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
)

type activityKey struct {
	userID uint
	day    string
}

// memoryDB 数据库不可用时的进程内存储，所有集合共用一把锁
type memoryDB struct {
	mu sync.Mutex

	nextUserID     uint
	nextActivityID uint
	nextSessionID  uint
	nextQuestionID uint
	nextResumeID   uint

	users      map[uint]*model.User
	solved     map[uint]map[uint]struct{}
	activities map[activityKey]*model.Activity
	sessions   []model.InterviewSession
	questions  []model.Question
	resumes    []model.Resume
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:      make(map[uint]*model.User),
		solved:     make(map[uint]map[uint]struct{}),
		activities: make(map[activityKey]*model.Activity),
	}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.LastActive != nil {
		t := *u.LastActive
		c.LastActive = &t
	}
	c.Skills = append(datatypes.JSONSlice[string](nil), u.Skills...)
	c.Badges = append(datatypes.JSONSlice[string](nil), u.Badges...)
	return &c
}

type memoryUsers struct{ db *memoryDB }

func (m *memoryUsers) Create(ctx context.Context, user *model.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, u := range m.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return util.ErrEmailRegistered
		}
		if u.Username == user.Username {
			return util.ErrDuplicateAccount
		}
	}
	m.db.nextUserID++
	now := time.Now()
	user.ID = m.db.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	m.db.users[user.ID] = cloneUser(user)
	return nil
}

func (m *memoryUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	u, ok := m.db.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (m *memoryUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, u := range m.db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (m *memoryUsers) UpdateProfile(ctx context.Context, id uint, fields ProfileFields) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	u, ok := m.db.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	if fields.Username != nil {
		for _, other := range m.db.users {
			if other.ID != id && other.Username == *fields.Username {
				return nil, util.ErrDuplicateAccount
			}
		}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Username, fields.Username)
	set(&u.Bio, fields.Bio)
	set(&u.CurrentPosition, fields.CurrentPosition)
	set(&u.Location, fields.Location)
	set(&u.Avatar, fields.Avatar)
	set(&u.Banner, fields.Banner)
	set(&u.Resume, fields.Resume)
	set(&u.SocialLinks.GitHub, fields.GitHub)
	set(&u.SocialLinks.LinkedIn, fields.LinkedIn)
	set(&u.SocialLinks.Portfolio, fields.Portfolio)
	if fields.Skills != nil {
		u.Skills = append(datatypes.JSONSlice[string](nil), fields.Skills...)
	}
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

func (m *memoryUsers) ClearResume(ctx context.Context, id uint) error {
	return m.mutate(id, func(u *model.User) { u.Resume = "" })
}

func (m *memoryUsers) UpdateStreak(ctx context.Context, id uint, streak int, lastActive time.Time) error {
	return m.mutate(id, func(u *model.User) {
		u.Streak = streak
		u.LastActive = &lastActive
	})
}

func (m *memoryUsers) AddCoins(ctx context.Context, id uint, amount int) (int, error) {
	var coins int
	err := m.mutate(id, func(u *model.User) {
		u.Coins += amount
		coins = u.Coins
	})
	return coins, err
}

func (m *memoryUsers) IncQuestionSolved(ctx context.Context, id uint, difficulty string) (*model.Stats, error) {
	return m.mutateStats(id, func(s *model.Stats) {
		s.TotalQuestionsSolved++
		switch difficulty {
		case model.DifficultyEasy:
			s.QuestionsByDifficulty.Easy++
		case model.DifficultyMedium:
			s.QuestionsByDifficulty.Medium++
		case model.DifficultyHard:
			s.QuestionsByDifficulty.Hard++
		}
	})
}

func (m *memoryUsers) RecordInterviewScore(ctx context.Context, id uint, score float64) (*model.Stats, error) {
	return m.mutateStats(id, func(s *model.Stats) {
		n := float64(s.InterviewsCompleted)
		s.AverageInterviewScore = (s.AverageInterviewScore*n + score) / (n + 1)
		s.InterviewsCompleted++
	})
}

func (m *memoryUsers) IncResumesCreated(ctx context.Context, id uint) (*model.Stats, error) {
	return m.mutateStats(id, func(s *model.Stats) { s.ResumesCreated++ })
}

func (m *memoryUsers) MarkSolved(ctx context.Context, userID, questionID uint) (bool, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	set, ok := m.db.solved[userID]
	if !ok {
		set = make(map[uint]struct{})
		m.db.solved[userID] = set
	}
	if _, done := set[questionID]; done {
		return false, nil
	}
	set[questionID] = struct{}{}
	return true, nil
}

func (m *memoryUsers) mutate(id uint, fn func(u *model.User)) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	u, ok := m.db.users[id]
	if !ok {
		return util.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

func (m *memoryUsers) mutateStats(id uint, fn func(s *model.Stats)) (*model.Stats, error) {
	var stats model.Stats
	err := m.mutate(id, func(u *model.User) {
		fn(&u.Stats)
		stats = u.Stats
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

type memoryActivities struct{ db *memoryDB }

func (m *memoryActivities) Upsert(ctx context.Context, userID uint, day time.Time, delta model.ActivityDelta) (*model.Activity, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	now := time.Now()
	key := activityKey{userID: userID, day: day.Format(util.DateFormat)}
	a, ok := m.db.activities[key]
	if !ok {
		m.db.nextActivityID++
		a = &model.Activity{ID: m.db.nextActivityID, UserID: userID, Date: day, CreatedAt: now}
		m.db.activities[key] = a
	}
	a.QuestionsSolved += delta.QuestionsSolved
	a.InterviewsCompleted += delta.InterviewsCompleted
	a.ResumesCreated += delta.ResumesCreated
	a.CoinsEarned += delta.CoinsEarned
	a.UpdatedAt = now

	c := *a
	return &c, nil
}

func (m *memoryActivities) Find(ctx context.Context, userID uint, day time.Time) (*model.Activity, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	a, ok := m.db.activities[activityKey{userID: userID, day: day.Format(util.DateFormat)}]
	if !ok {
		return nil, util.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (m *memoryActivities) ListSince(ctx context.Context, userID uint, since time.Time, ascending bool) ([]model.Activity, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var out []model.Activity
	for _, a := range m.db.activities {
		if a.UserID == userID && !a.Date.Before(since) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

type memorySessions struct{ db *memoryDB }

func (m *memorySessions) Insert(ctx context.Context, session *model.InterviewSession) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	m.db.nextSessionID++
	session.ID = m.db.nextSessionID
	session.CreatedAt = time.Now()
	if session.CompletedAt.IsZero() {
		session.CompletedAt = session.CreatedAt
	}
	m.db.sessions = append(m.db.sessions, *session)
	return nil
}

func (m *memorySessions) List(ctx context.Context, userID uint, filter SessionFilter) ([]model.InterviewSession, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var out []model.InterviewSession
	for _, s := range m.db.sessions {
		if s.UserID != userID {
			continue
		}
		if !filter.Since.IsZero() && s.CompletedAt.Before(filter.Since) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if filter.Ascending {
			return out[i].CompletedAt.Before(out[j].CompletedAt)
		}
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type memoryQuestions struct{ db *memoryDB }

func (m *memoryQuestions) List(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var out []model.Question
	for _, q := range m.db.questions {
		if filter.Category != "" && string(q.Category) != filter.Category {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		q.TestCases = nil
		q.StarterCode = ""
		out = append(out, q)
	}
	return out, nil
}

func (m *memoryQuestions) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, q := range m.db.questions {
		if q.ID == id {
			c := q
			return &c, nil
		}
	}
	return nil, util.ErrQuestionNotFound
}

func (m *memoryQuestions) Count(ctx context.Context) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return int64(len(m.db.questions)), nil
}

func (m *memoryQuestions) CreateBatch(ctx context.Context, questions []model.Question) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	now := time.Now()
	for i := range questions {
		m.db.nextQuestionID++
		questions[i].ID = m.db.nextQuestionID
		questions[i].CreatedAt = now
		questions[i].UpdatedAt = now
		m.db.questions = append(m.db.questions, questions[i])
	}
	return nil
}

type memoryResumes struct{ db *memoryDB }

func (m *memoryResumes) Create(ctx context.Context, resume *model.Resume) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	m.db.nextResumeID++
	resume.ID = m.db.nextResumeID
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = time.Now()
	}
	m.db.resumes = append(m.db.resumes, *resume)
	return nil
}

func (m *memoryResumes) ListRecent(ctx context.Context, userID uint, limit int) ([]model.Resume, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var out []model.Resume
	for _, r := range m.db.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
