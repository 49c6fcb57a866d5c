package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"halalan/contexts/voting/tally-service/domain/entities"
	domainerrors "halalan/contexts/voting/tally-service/domain/errors"
	"halalan/contexts/voting/tally-service/ports"

	"gorm.io/gorm"
)

// Repository reads the shared election schema for tallying. It is strictly
// read-only.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetElectionBySlug(ctx context.Context, slug string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.TrimSpace(slug)).
		Where("deleted_at IS NULL").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("tally_repo_get_election_by_slug_failed", err,
			"slug", strings.TrimSpace(slug),
		)
	}
	return entities.Election{
		ElectionID: row.ID,
		Slug:       row.Slug,
		Name:       row.Name,
		StartDate:  row.StartDate.UTC(),
		EndDate:    row.EndDate.UTC(),
	}, nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID string) ([]entities.Position, error) {
	var rows []positionModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("tally_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Position{
			PositionID: row.ID,
			ElectionID: row.ElectionID,
			Name:       row.Name,
			Order:      row.SortOrder,
		})
	}
	return items, nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	var rows []candidateRow
	err := r.db.WithContext(ctx).
		Table("candidates AS c").
		Select("c.*, p.acronym AS partylist_acronym").
		Joins("LEFT JOIN partylists AS p ON p.id = c.partylist_id").
		Where("c.election_id = ?", strings.TrimSpace(electionID)).
		Order("c.created_at ASC, c.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("tally_repo_list_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Candidate{
			CandidateID:      row.ID,
			ElectionID:       row.ElectionID,
			PositionID:       row.PositionID,
			FirstName:        row.FirstName,
			MiddleName:       row.MiddleName,
			LastName:         row.LastName,
			PartylistAcronym: row.PartylistAcronym,
			CreatedAt:        row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) CountVotesByCandidate(ctx context.Context, electionID string) (map[string]int, error) {
	var rows []candidateCountRow
	err := r.db.WithContext(ctx).
		Table("votes").
		Select("candidate_id, COUNT(*) AS vote_count").
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Group("candidate_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("tally_repo_count_votes_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CandidateID] = row.VoteCount
	}
	return counts, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "voting/tally-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("tally repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	Slug      string     `gorm:"column:slug"`
	Name      string     `gorm:"column:name"`
	StartDate time.Time  `gorm:"column:start_date"`
	EndDate   time.Time  `gorm:"column:end_date"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

type positionModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	ElectionID string `gorm:"column:election_id"`
	Name       string `gorm:"column:name"`
	SortOrder  int    `gorm:"column:sort_order"`
}

func (positionModel) TableName() string {
	return "positions"
}

type candidateRow struct {
	ID               string    `gorm:"column:id"`
	ElectionID       string    `gorm:"column:election_id"`
	PositionID       string    `gorm:"column:position_id"`
	FirstName        string    `gorm:"column:first_name"`
	MiddleName       string    `gorm:"column:middle_name"`
	LastName         string    `gorm:"column:last_name"`
	PartylistAcronym string    `gorm:"column:partylist_acronym"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

type candidateCountRow struct {
	CandidateID string `gorm:"column:candidate_id"`
	VoteCount   int    `gorm:"column:vote_count"`
}

var _ ports.TallyReader = (*Repository)(nil)
