package client

import (
	"context"

	"github.com/dmitrijs2005/diarykeeper/internal/rpc"
)

// Client is the transport-agnostic view of the DiaryKeeper backend used by
// the CLI services. Diary fields crossing this boundary are already
// encrypted.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	GetSalt(ctx context.Context, account string) (salt []byte, exists bool, err error)
	Login(ctx context.Context, account string, salt, verifier []byte) (registered bool, err error)
	Tokens() (access, refresh string)
	SetTokens(access, refresh string)

	SaveDiary(ctx context.Context, req *rpc.SaveDiaryRequest) (string, error)
	UpdateDiary(ctx context.Context, req *rpc.UpdateDiaryRequest) error
	RemoveDiary(ctx context.Context, id string) error
	ListDiaries(ctx context.Context, tag string) ([]*rpc.Diary, error)
	ListTags(ctx context.Context) ([]*rpc.Tag, error)
	Activity(ctx context.Context, days int) ([]*rpc.DayActivity, error)
	Export(ctx context.Context) (key, url string, err error)
}
