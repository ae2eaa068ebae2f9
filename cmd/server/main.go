// Ocean Professional sign-in service.
//
// Serves the sign-in screen, the client configuration endpoint and a health
// check. Configuration is read from APP_* variables, optionally overridden by
// the YAML file named in ENV_OVERRIDES_FILE.

package main

import (
	"go.uber.org/fx"

	"github.com/andrasnagy-data/oceanpro/internal/components/auth"
	"github.com/andrasnagy-data/oceanpro/internal/components/login"
	"github.com/andrasnagy-data/oceanpro/internal/server"
	"github.com/andrasnagy-data/oceanpro/internal/shared/config"
	"github.com/andrasnagy-data/oceanpro/internal/shared/env"
	"github.com/andrasnagy-data/oceanpro/internal/shared/logging"
)

func main() {
	fx.New(
		fx.Provide(
			env.NewDefault,
			config.NewConfig,
			logging.NewLogger,
			server.NewServer,
			server.NewHealthSrvc,
			server.NewHealthHandler,
			fx.Annotate(auth.NewService, fx.As(new(login.Authenticator))),
			fx.Annotate(login.NewRouter, fx.ResultTags(`name:"loginRouter"`)),
		),
		fx.Invoke(server.Register),
	).Run()
}
