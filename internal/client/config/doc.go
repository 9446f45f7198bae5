// Package config loads runtime configuration for the DiaryKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: a .env file named by -env-file, then DIARYKEEPER_CLIENT_*
//     variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-f string   local session database file
//	-i int      online status check interval (seconds)
//	-o string   export directory
//	-v string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "diarykeeper.db",
//	  "online_check_interval": "3s",
//	  "export_dir": "exports",
//	  "log_level": "warn"
//	}
package config
