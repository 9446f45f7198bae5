// Package client talks to the DiaryKeeper backend on behalf of the CLI.
//
// # Overview
//
// The package provides:
//  1. The Client interface: GetSalt/Login, token access, Ping and the diary
//     operations (save, update, remove, list, tags, activity, export).
//  2. GRPCClient, a gRPC implementation that injects the access token via an
//     interceptor, refreshes an expired token once and maps status codes to
//     sentinel errors.
//  3. InitDatabase and RunMigrations, which open the local SQLite file and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match errors with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrNoSession, ErrRateLimited, ErrNotSupported, plus the common sentinels
// ErrInvalidCredentials, ErrorNotFound, ErrTagLimitExceeded and
// ErrorValidation returned as-is from the server.
package client
