package lifecycleservice

import (
	"log/slog"

	httpadapter "halalan/contexts/election-administration/lifecycle-service/adapters/http"
	"halalan/contexts/election-administration/lifecycle-service/adapters/memory"
	"halalan/contexts/election-administration/lifecycle-service/application/commands"
	"halalan/contexts/election-administration/lifecycle-service/application/queries"
	"halalan/contexts/election-administration/lifecycle-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections  ports.ElectionRepository
	Positions  ports.PositionRepository
	Partylists ports.PartylistRepository
	Candidates ports.CandidateRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	electionUseCase := commands.ElectionUseCase{
		Elections: deps.Elections,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	positionUseCase := commands.PositionUseCase{
		Elections: deps.Elections,
		Positions: deps.Positions,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	partylistUseCase := commands.PartylistUseCase{
		Elections:  deps.Elections,
		Partylists: deps.Partylists,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	candidateUseCase := commands.CandidateUseCase{
		Elections:  deps.Elections,
		Positions:  deps.Positions,
		Partylists: deps.Partylists,
		Candidates: deps.Candidates,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	catalogUseCase := queries.CatalogUseCase{
		Elections:  deps.Elections,
		Positions:  deps.Positions,
		Partylists: deps.Partylists,
		Candidates: deps.Candidates,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Elections:  electionUseCase,
			Positions:  positionUseCase,
			Partylists: partylistUseCase,
			Candidates: candidateUseCase,
			Catalog:    catalogUseCase,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections:  store,
		Positions:  store,
		Partylists: store,
		Candidates: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
