package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/client/client"
	"github.com/dmitrijs2005/diarykeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/rpc"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-process stand-in for the server. It stores whatever
// the services send, so tests can assert that only ciphertext leaves them.
type fakeClient struct {
	mu sync.Mutex

	salts     map[string][]byte
	verifiers map[string][]byte
	diaries   map[string]*rpc.Diary
	order     []string
	nextID    int

	access, refresh string

	pingErr   error
	saltErr   error
	removeErr error
	exportKey string
	exportURL string
	exportErr error
	activity  []*rpc.DayActivity

	lastSave   *rpc.SaveDiaryRequest
	lastUpdate *rpc.UpdateDiaryRequest
	lastTag    string
	closed     bool
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		salts:     map[string][]byte{},
		verifiers: map[string][]byte{},
		diaries:   map[string]*rpc.Diary{},
	}
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) GetSalt(_ context.Context, account string) ([]byte, bool, error) {
	if f.saltErr != nil {
		return nil, false, f.saltErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if salt, ok := f.salts[account]; ok {
		return salt, true, nil
	}
	return common.GenerateRandByteArray(32), false, nil
}

func (f *fakeClient) Login(_ context.Context, account string, salt, verifier []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.verifiers[account]; ok {
		if string(stored) != string(verifier) {
			return false, common.ErrInvalidCredentials
		}
		f.access, f.refresh = "access-"+account, "refresh-"+account
		return false, nil
	}
	f.salts[account] = salt
	f.verifiers[account] = verifier
	f.access, f.refresh = "access-"+account, "refresh-"+account
	return true, nil
}

func (f *fakeClient) Tokens() (string, string) { return f.access, f.refresh }

func (f *fakeClient) SetTokens(access, refresh string) { f.access, f.refresh = access, refresh }

func (f *fakeClient) SaveDiary(_ context.Context, req *rpc.SaveDiaryRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSave = req
	f.nextID++
	id := fmt.Sprintf("d%d", f.nextID)
	f.diaries[id] = &rpc.Diary{
		ID: id, Title: req.Title, Content: req.Content, Mood: req.Mood, Tags: req.Tags,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, f.nextID, 0, time.UTC),
	}
	f.order = append([]string{id}, f.order...)
	return id, nil
}

func (f *fakeClient) UpdateDiary(_ context.Context, req *rpc.UpdateDiaryRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate = req
	d, ok := f.diaries[req.ID]
	if !ok {
		return common.ErrorNotFound
	}
	d.Title, d.Content, d.Mood, d.Tags = req.Title, req.Content, req.Mood, req.Tags
	return nil
}

func (f *fakeClient) RemoveDiary(_ context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.diaries[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.diaries, id)
	return nil
}

func (f *fakeClient) ListDiaries(_ context.Context, tag string) ([]*rpc.Diary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTag = tag
	var out []*rpc.Diary
	for _, id := range f.order {
		d, ok := f.diaries[id]
		if !ok {
			continue
		}
		if tag != "" && !contains(d.Tags, tag) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeClient) ListTags(context.Context) ([]*rpc.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []*rpc.Tag
	for _, id := range f.order {
		d, ok := f.diaries[id]
		if !ok {
			continue
		}
		for _, t := range d.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, &rpc.Tag{ID: "t-" + t, Name: t})
			}
		}
	}
	return out, nil
}

func (f *fakeClient) Activity(context.Context, int) ([]*rpc.DayActivity, error) {
	return f.activity, nil
}

func (f *fakeClient) Export(context.Context) (string, string, error) {
	return f.exportKey, f.exportURL, f.exportErr
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func newMetadataRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "diarykeeper.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}
