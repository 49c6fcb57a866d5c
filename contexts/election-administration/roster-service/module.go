package rosterservice

import (
	"log/slog"

	httpadapter "halalan/contexts/election-administration/roster-service/adapters/http"
	"halalan/contexts/election-administration/roster-service/adapters/memory"
	"halalan/contexts/election-administration/roster-service/application/commands"
	"halalan/contexts/election-administration/roster-service/application/queries"
	"halalan/contexts/election-administration/roster-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionReader
	Roster    ports.RosterRepository
	Votes     ports.VoteChecker
	Directory ports.IdentityDirectory
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	rosterUseCase := commands.RosterUseCase{
		Elections: deps.Elections,
		Roster:    deps.Roster,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	queryUseCase := queries.RosterQueryUseCase{
		Elections: deps.Elections,
		Roster:    deps.Roster,
		Votes:     deps.Votes,
		Directory: deps.Directory,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Roster:  rosterUseCase,
			Queries: queryUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections: store,
		Roster:    store,
		Votes:     store,
		Directory: store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
