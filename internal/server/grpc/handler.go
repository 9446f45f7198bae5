package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/rpc"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/dmitrijs2005/diarykeeper/internal/server/services"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC status codes. Unknown errors are
// logged and hidden behind a generic Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.PermissionDenied, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrTagLimitExceeded):
		return status.Error(codes.InvalidArgument, common.ErrTagLimitExceeded.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func (s *GRPCServer) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return status.Errorf(codes.InvalidArgument, "invalid %s: %s", verrs[0].Field(), verrs[0].Tag())
		}
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func (s *GRPCServer) callerID(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}
	return id, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *rpc.GetSaltRequest) (*rpc.GetSaltResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	salt, exists, err := s.users.GetSalt(ctx, req.Account)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.GetSaltResponse{Salt: salt, Exists: exists}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	pair, err := s.users.Login(ctx, req.Account, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if pair.Registered {
		s.logger.Info(ctx, "account registered", "account", req.Account)
	}
	return &rpc.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Registered:   pair.Registered,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) SaveDiary(ctx context.Context, req *rpc.SaveDiaryRequest) (*rpc.SaveDiaryResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	id, err := s.diaries.Save(ctx, userID, services.DiaryInput{
		Title: req.Title, Content: req.Content, Mood: req.Mood, Tags: req.Tags,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.SaveDiaryResponse{ID: id}, nil
}

func (s *GRPCServer) UpdateDiary(ctx context.Context, req *rpc.UpdateDiaryRequest) (*rpc.UpdateDiaryResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	err = s.diaries.Update(ctx, userID, req.ID, services.DiaryInput{
		Title: req.Title, Content: req.Content, Mood: req.Mood, Tags: req.Tags,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.UpdateDiaryResponse{}, nil
}

func (s *GRPCServer) RemoveDiary(ctx context.Context, req *rpc.RemoveDiaryRequest) (*rpc.RemoveDiaryResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := s.diaries.Remove(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.RemoveDiaryResponse{}, nil
}

func (s *GRPCServer) ListDiaries(ctx context.Context, req *rpc.ListDiariesRequest) (*rpc.ListDiariesResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.diaries.List(ctx, userID, req.Tag)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &rpc.ListDiariesResponse{Diaries: make([]*rpc.Diary, 0, len(list))}
	for _, d := range list {
		resp.Diaries = append(resp.Diaries, toRPCDiary(d))
	}
	return resp, nil
}

func (s *GRPCServer) ListTags(ctx context.Context, _ *rpc.ListTagsRequest) (*rpc.ListTagsResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.tags.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &rpc.ListTagsResponse{Tags: make([]*rpc.Tag, 0, len(list))}
	for _, t := range list {
		resp.Tags = append(resp.Tags, &rpc.Tag{ID: t.ID, Name: t.Name})
	}
	return resp, nil
}

func (s *GRPCServer) Activity(ctx context.Context, req *rpc.ActivityRequest) (*rpc.ActivityResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	days, err := s.diaries.Activity(ctx, userID, req.Days, time.Now())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &rpc.ActivityResponse{Days: make([]*rpc.DayActivity, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, &rpc.DayActivity{Date: d.Day.Format(time.DateOnly), Count: d.Count})
	}
	return resp, nil
}

func (s *GRPCServer) Export(ctx context.Context, _ *rpc.ExportRequest) (*rpc.ExportResponse, error) {
	userID, err := s.callerID(ctx)
	if err != nil {
		return nil, err
	}
	if s.exports == nil {
		return nil, status.Error(codes.Unimplemented, "export storage is not configured")
	}
	key, url, err := s.exports.Export(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "export created", "user_id", userID, "key", key)
	return &rpc.ExportResponse{Key: key, URL: url}, nil
}

func toRPCDiary(d *models.Diary) *rpc.Diary {
	return &rpc.Diary{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Mood:      d.Mood,
		Tags:      d.Tags,
		CreatedAt: d.CreatedAt,
	}
}
