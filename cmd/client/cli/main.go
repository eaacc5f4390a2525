package main

import (
	"context"

	"github.com/dmitrijs2005/schoolchat/internal/client/cli"
	"github.com/dmitrijs2005/schoolchat/internal/client/config"
	"github.com/dmitrijs2005/schoolchat/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg, logging.NewDefault())

	app.Run(ctx)

}
