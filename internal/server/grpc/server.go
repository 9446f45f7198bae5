// Package grpc exposes the DiaryKeeper services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/rpc"
	"github.com/dmitrijs2005/diarykeeper/internal/server/services"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	rpc.UnimplementedDiaryKeeperServer
	address   string
	users     *services.UserService
	diaries   *services.DiaryService
	tags      *services.TagService
	exports   *services.ExportService
	limiter   *LoginLimiter
	validate  *validator.Validate
	logger    logging.Logger
	jwtSecret []byte
}

// Services groups the business services the server dispatches to. Exports
// may be nil, in which case Export answers Unimplemented.
type Services struct {
	Users   *services.UserService
	Diaries *services.DiaryService
	Tags    *services.TagService
	Exports *services.ExportService
}

func NewGRPCServer(address string, l logging.Logger, svc Services, limiter *LoginLimiter, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		users:     svc.Users,
		diaries:   svc.Diaries,
		tags:      svc.Tags,
		exports:   svc.Exports,
		limiter:   limiter,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a *grpc.Server with the interceptor chain and the
// DiaryKeeper service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.accessTokenInterceptor,
		s.rateLimitInterceptor,
	))
	srv := grpc.NewServer(opts...)
	rpc.RegisterDiaryKeeperServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
