// Package memory holds in-process implementations of the server repositories.
// They back the server when no database DSN is configured and serve as
// realistic doubles in service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/google/uuid"
)

type tagKey struct{ userID, name string }

// Store is shared by all repositories it vends.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User // by account
	tokens   map[string]*models.RefreshToken
	diaries  map[string]*models.Diary
	tags     map[tagKey]*models.Tag
	lastTime time.Time
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of creation and expiry times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:   make(map[string]*models.User),
		tokens:  make(map[string]*models.RefreshToken),
		diaries: make(map[string]*models.Diary),
		tags:    make(map[tagKey]*models.Tag),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stamp returns a strictly increasing timestamp so newest-first ordering is
// stable even for entries created within the same clock tick. Caller holds mu.
func (s *Store) stamp() time.Time {
	t := s.now()
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Nanosecond)
	}
	s.lastTime = t
	return t
}

func (s *Store) Users() *Users                 { return &Users{s} }
func (s *Store) RefreshTokens() *RefreshTokens { return &RefreshTokens{s} }
func (s *Store) Diaries() *Diaries             { return &Diaries{s} }
func (s *Store) Tags() *Tags                   { return &Tags{s} }

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Account]; ok {
		return nil, common.ErrorAlreadyExists
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.s.stamp()
	cp := *user
	r.s.users[user.Account] = &cp
	return user, nil
}

func (r *Users) GetUserByAccount(_ context.Context, account string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[account]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type RefreshTokens struct{ s *Store }

func (r *RefreshTokens) Create(_ context.Context, userID string, token string, validity time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tokens[token] = &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Expires:   r.s.now().Add(validity),
		CreatedAt: r.s.now(),
	}
	return nil
}

func (r *RefreshTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rt, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *rt
	return &cp, nil
}

func (r *RefreshTokens) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tokens, token)
	return nil
}

type Diaries struct{ s *Store }

func copyDiary(d *models.Diary) *models.Diary {
	cp := *d
	if d.Tags != nil {
		cp.Tags = append([]string{}, d.Tags...)
	}
	return &cp
}

func (r *Diaries) Create(_ context.Context, d *models.Diary) (*models.Diary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = uuid.NewString()
	d.CreatedAt = r.s.stamp()
	r.s.diaries[d.ID] = copyDiary(d)
	return d, nil
}

func (r *Diaries) GetByID(_ context.Context, id string) (*models.Diary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.diaries[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyDiary(d), nil
}

func (r *Diaries) Update(_ context.Context, d *models.Diary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.diaries[d.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Title, cur.Content, cur.Mood = d.Title, d.Content, d.Mood
	cur.Tags = append([]string{}, d.Tags...)
	return nil
}

func (r *Diaries) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.diaries[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.diaries, id)
	return nil
}

func (r *Diaries) ListByUser(_ context.Context, userID string) ([]*models.Diary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*models.Diary
	for _, d := range r.s.diaries {
		if d.UserID == userID {
			result = append(result, copyDiary(d))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type Tags struct{ s *Store }

func (r *Tags) Ensure(_ context.Context, userID, name string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := tagKey{userID, name}
	if t, ok := r.s.tags[k]; ok {
		return t.ID, nil
	}
	t := &models.Tag{ID: uuid.NewString(), Name: name, UserID: userID}
	r.s.tags[k] = t
	return t.ID, nil
}

func (r *Tags) ListByUser(_ context.Context, userID string) ([]*models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []*models.Tag
	for k, t := range r.s.tags {
		if k.userID == userID {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
