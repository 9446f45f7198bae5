package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// saltTimeout bounds GetSalt, which runs before the user has a session.
const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.DiaryKeeperClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the access token to every call. When the
// server reports an expired token it rotates the pair once and retries.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.Tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || method == rpc.MethodRefreshToken {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily. Extra options are appended to the
// defaults, which use plaintext transport and the JSON codec.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(rpc.CallOptions()...),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewDiaryKeeperClient(conn)
	return c, nil
}

func (s *GRPCClient) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, account string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &rpc.GetSaltRequest{Account: account})
	if err != nil {
		return nil, false, mapError(err)
	}
	return resp.Salt, resp.Exists, nil
}

func (s *GRPCClient) Login(ctx context.Context, account string, salt, verifier []byte) (bool, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Account: account, Salt: salt, Verifier: verifier})
	if err != nil {
		return false, mapError(err)
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp.Registered, nil
}

func (s *GRPCClient) SaveDiary(ctx context.Context, req *rpc.SaveDiaryRequest) (string, error) {
	resp, err := s.client.SaveDiary(ctx, req)
	if err != nil {
		return "", mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) UpdateDiary(ctx context.Context, req *rpc.UpdateDiaryRequest) error {
	_, err := s.client.UpdateDiary(ctx, req)
	return mapError(err)
}

func (s *GRPCClient) RemoveDiary(ctx context.Context, id string) error {
	_, err := s.client.RemoveDiary(ctx, &rpc.RemoveDiaryRequest{ID: id})
	return mapError(err)
}

func (s *GRPCClient) ListDiaries(ctx context.Context, tag string) ([]*rpc.Diary, error) {
	resp, err := s.client.ListDiaries(ctx, &rpc.ListDiariesRequest{Tag: tag})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Diaries, nil
}

func (s *GRPCClient) ListTags(ctx context.Context) ([]*rpc.Tag, error) {
	resp, err := s.client.ListTags(ctx, &rpc.ListTagsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tags, nil
}

func (s *GRPCClient) Activity(ctx context.Context, days int) ([]*rpc.DayActivity, error) {
	resp, err := s.client.Activity(ctx, &rpc.ActivityRequest{Days: days})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Days, nil
}

func (s *GRPCClient) Export(ctx context.Context) (string, string, error) {
	resp, err := s.client.Export(ctx, &rpc.ExportRequest{})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.Key, resp.URL, nil
}

// mapError converts gRPC statuses into the sentinels callers match with
// errors.Is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrInvalidCredentials.Error() {
			return common.ErrInvalidCredentials
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrorUnauthorized)
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.InvalidArgument:
		if st.Message() == common.ErrTagLimitExceeded.Error() {
			return common.ErrTagLimitExceeded
		}
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrRateLimited, st.Message())
	case codes.Unimplemented:
		return fmt.Errorf("%w: %s", ErrNotSupported, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
