// StoryCraft
// @title StoryCraft
// @version 0.1.0
// @description A REST API that turns one prompt into a story and two derived illustrations

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"go.uber.org/fx"

	"github.com/aicraft/storycraft/internal/components/auth"
	"github.com/aicraft/storycraft/internal/components/story"
	"github.com/aicraft/storycraft/internal/providers"
	"github.com/aicraft/storycraft/internal/server"
	"github.com/aicraft/storycraft/internal/shared/config"
	"github.com/aicraft/storycraft/internal/shared/database"
	"github.com/aicraft/storycraft/internal/shared/logging"
	"github.com/aicraft/storycraft/internal/shared/token"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logging.NewLogger,
			database.NewPgxPool,
			token.NewManager,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			auth.NewRepo,
			auth.NewService,
			fx.Annotate(auth.NewRouter, fx.ResultTags(`name:"authRouter"`)),
			providers.NewCompletionClient,
			providers.NewImageClient,
			story.NewRegexStrategy,
			story.NewPipeline,
			fx.Annotate(story.NewRouter, fx.ResultTags(`name:"storyRouter"`)),
			server.NewServer,
		),
		fx.Invoke((*server.Server).Start),
	).Run()
}
