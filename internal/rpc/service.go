package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "diarykeeper.DiaryKeeper"

const (
	MethodPing         = "/" + ServiceName + "/Ping"
	MethodGetSalt      = "/" + ServiceName + "/GetSalt"
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodRefreshToken = "/" + ServiceName + "/RefreshToken"
	MethodSaveDiary    = "/" + ServiceName + "/SaveDiary"
	MethodUpdateDiary  = "/" + ServiceName + "/UpdateDiary"
	MethodRemoveDiary  = "/" + ServiceName + "/RemoveDiary"
	MethodListDiaries  = "/" + ServiceName + "/ListDiaries"
	MethodListTags     = "/" + ServiceName + "/ListTags"
	MethodActivity     = "/" + ServiceName + "/Activity"
	MethodExport       = "/" + ServiceName + "/Export"
)

// DiaryKeeperServer is the server API of the DiaryKeeper service.
type DiaryKeeperServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SaveDiary(context.Context, *SaveDiaryRequest) (*SaveDiaryResponse, error)
	UpdateDiary(context.Context, *UpdateDiaryRequest) (*UpdateDiaryResponse, error)
	RemoveDiary(context.Context, *RemoveDiaryRequest) (*RemoveDiaryResponse, error)
	ListDiaries(context.Context, *ListDiariesRequest) (*ListDiariesResponse, error)
	ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error)
	Activity(context.Context, *ActivityRequest) (*ActivityResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
}

// UnimplementedDiaryKeeperServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible when methods are added.
type UnimplementedDiaryKeeperServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedDiaryKeeperServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedDiaryKeeperServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, unimplemented("GetSalt")
}
func (UnimplementedDiaryKeeperServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedDiaryKeeperServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedDiaryKeeperServer) SaveDiary(context.Context, *SaveDiaryRequest) (*SaveDiaryResponse, error) {
	return nil, unimplemented("SaveDiary")
}
func (UnimplementedDiaryKeeperServer) UpdateDiary(context.Context, *UpdateDiaryRequest) (*UpdateDiaryResponse, error) {
	return nil, unimplemented("UpdateDiary")
}
func (UnimplementedDiaryKeeperServer) RemoveDiary(context.Context, *RemoveDiaryRequest) (*RemoveDiaryResponse, error) {
	return nil, unimplemented("RemoveDiary")
}
func (UnimplementedDiaryKeeperServer) ListDiaries(context.Context, *ListDiariesRequest) (*ListDiariesResponse, error) {
	return nil, unimplemented("ListDiaries")
}
func (UnimplementedDiaryKeeperServer) ListTags(context.Context, *ListTagsRequest) (*ListTagsResponse, error) {
	return nil, unimplemented("ListTags")
}
func (UnimplementedDiaryKeeperServer) Activity(context.Context, *ActivityRequest) (*ActivityResponse, error) {
	return nil, unimplemented("Activity")
}
func (UnimplementedDiaryKeeperServer) Export(context.Context, *ExportRequest) (*ExportResponse, error) {
	return nil, unimplemented("Export")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(DiaryKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DiaryKeeperServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DiaryKeeperServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for the DiaryKeeper service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiaryKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, DiaryKeeperServer.Ping)},
		{MethodName: "GetSalt", Handler: unaryHandler(MethodGetSalt, DiaryKeeperServer.GetSalt)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, DiaryKeeperServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(MethodRefreshToken, DiaryKeeperServer.RefreshToken)},
		{MethodName: "SaveDiary", Handler: unaryHandler(MethodSaveDiary, DiaryKeeperServer.SaveDiary)},
		{MethodName: "UpdateDiary", Handler: unaryHandler(MethodUpdateDiary, DiaryKeeperServer.UpdateDiary)},
		{MethodName: "RemoveDiary", Handler: unaryHandler(MethodRemoveDiary, DiaryKeeperServer.RemoveDiary)},
		{MethodName: "ListDiaries", Handler: unaryHandler(MethodListDiaries, DiaryKeeperServer.ListDiaries)},
		{MethodName: "ListTags", Handler: unaryHandler(MethodListTags, DiaryKeeperServer.ListTags)},
		{MethodName: "Activity", Handler: unaryHandler(MethodActivity, DiaryKeeperServer.Activity)},
		{MethodName: "Export", Handler: unaryHandler(MethodExport, DiaryKeeperServer.Export)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "diarykeeper",
}

// RegisterDiaryKeeperServer registers srv on s.
func RegisterDiaryKeeperServer(s grpc.ServiceRegistrar, srv DiaryKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// DiaryKeeperClient is the client API of the DiaryKeeper service.
type DiaryKeeperClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SaveDiary(ctx context.Context, in *SaveDiaryRequest, opts ...grpc.CallOption) (*SaveDiaryResponse, error)
	UpdateDiary(ctx context.Context, in *UpdateDiaryRequest, opts ...grpc.CallOption) (*UpdateDiaryResponse, error)
	RemoveDiary(ctx context.Context, in *RemoveDiaryRequest, opts ...grpc.CallOption) (*RemoveDiaryResponse, error)
	ListDiaries(ctx context.Context, in *ListDiariesRequest, opts ...grpc.CallOption) (*ListDiariesResponse, error)
	ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error)
	Activity(ctx context.Context, in *ActivityRequest, opts ...grpc.CallOption) (*ActivityResponse, error)
	Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error)
}

type diaryKeeperClient struct {
	cc grpc.ClientConnInterface
}

// NewDiaryKeeperClient returns a client bound to cc.
func NewDiaryKeeperClient(cc grpc.ClientConnInterface) DiaryKeeperClient {
	return &diaryKeeperClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *diaryKeeperClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *diaryKeeperClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *diaryKeeperClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *diaryKeeperClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *diaryKeeperClient) SaveDiary(ctx context.Context, in *SaveDiaryRequest, opts ...grpc.CallOption) (*SaveDiaryResponse, error) {
	return invoke[SaveDiaryResponse](ctx, c.cc, MethodSaveDiary, in, opts)
}

func (c *diaryKeeperClient) UpdateDiary(ctx context.Context, in *UpdateDiaryRequest, opts ...grpc.CallOption) (*UpdateDiaryResponse, error) {
	return invoke[UpdateDiaryResponse](ctx, c.cc, MethodUpdateDiary, in, opts)
}

func (c *diaryKeeperClient) RemoveDiary(ctx context.Context, in *RemoveDiaryRequest, opts ...grpc.CallOption) (*RemoveDiaryResponse, error) {
	return invoke[RemoveDiaryResponse](ctx, c.cc, MethodRemoveDiary, in, opts)
}

func (c *diaryKeeperClient) ListDiaries(ctx context.Context, in *ListDiariesRequest, opts ...grpc.CallOption) (*ListDiariesResponse, error) {
	return invoke[ListDiariesResponse](ctx, c.cc, MethodListDiaries, in, opts)
}

func (c *diaryKeeperClient) ListTags(ctx context.Context, in *ListTagsRequest, opts ...grpc.CallOption) (*ListTagsResponse, error) {
	return invoke[ListTagsResponse](ctx, c.cc, MethodListTags, in, opts)
}

func (c *diaryKeeperClient) Activity(ctx context.Context, in *ActivityRequest, opts ...grpc.CallOption) (*ActivityResponse, error) {
	return invoke[ActivityResponse](ctx, c.cc, MethodActivity, in, opts)
}

func (c *diaryKeeperClient) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, MethodExport, in, opts)
}
