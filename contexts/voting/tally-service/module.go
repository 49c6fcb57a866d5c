package tallyservice

import (
	"log/slog"

	httpadapter "halalan/contexts/voting/tally-service/adapters/http"
	"halalan/contexts/voting/tally-service/adapters/memory"
	"halalan/contexts/voting/tally-service/application/queries"
	"halalan/contexts/voting/tally-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Reader ports.TallyReader
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	tallyUseCase := queries.TallyUseCase{
		Reader: deps.Reader,
		Clock:  deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Tally:  tallyUseCase,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Reader: store,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
