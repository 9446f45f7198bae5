package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/diarykeeper/internal/server"
	"github.com/dmitrijs2005/diarykeeper/internal/server/config"
)

// Set with -ldflags "-X main.buildVersion=...".
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	fmt.Fprintf(os.Stderr, "diarykeeper server %s (built %s)\n", buildVersion, buildDate)

	ctx := context.Background()
	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
