package ballotservice

import (
	"log/slog"

	httpadapter "halalan/contexts/voting/ballot-service/adapters/http"
	"halalan/contexts/voting/ballot-service/adapters/memory"
	"halalan/contexts/voting/ballot-service/application/commands"
	"halalan/contexts/voting/ballot-service/application/queries"
	"halalan/contexts/voting/ballot-service/domain/entities"
	"halalan/contexts/voting/ballot-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Access  queries.AccessUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionReader
	Roster    ports.RosterReader
	Votes     ports.VoteRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ballotUseCase := commands.BallotUseCase{
		Elections: deps.Elections,
		Roster:    deps.Roster,
		Votes:     deps.Votes,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	accessUseCase := queries.AccessUseCase{
		Elections: deps.Elections,
		Roster:    deps.Roster,
		Votes:     deps.Votes,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ballots: ballotUseCase,
			Access:  accessUseCase,
			Logger:  deps.Logger,
		},
		Access: accessUseCase,
	}
}

func NewInMemoryModule(seed []entities.Vote, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Elections: store,
		Roster:    store,
		Votes:     store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
