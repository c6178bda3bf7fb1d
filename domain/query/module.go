package query

import (
	"go.uber.org/fx"
)

var Module = fx.Module("query",
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
