// Package cli provides the interactive DiaryKeeper command-line client.
//
// It wires configuration, the local session store, the API services and a
// REPL. On start the last session is restored if one was saved; otherwise the
// user logs in (unknown accounts are registered on the spot). A background
// watcher pings the server and shows online/offline in the prompt.
//
// Commands: login, logout, write, edit <id>, delete <id>, list [tag], tags,
// heatmap [days], export, help, exit.
package cli
