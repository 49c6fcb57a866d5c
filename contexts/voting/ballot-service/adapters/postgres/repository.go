package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"
	"halalan/contexts/voting/ballot-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository implements the ballot ports against the shared election
// schema. It only ever writes to the votes table; everything else is
// read-only configuration owned by the election-administration context.
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

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		Where("deleted_at IS NULL").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("ballot_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), nil
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
		return entities.Election{}, r.logError("ballot_repo_get_election_by_slug_failed", err,
			"slug", strings.TrimSpace(slug),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID string) ([]entities.Position, error) {
	var rows []positionModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
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
		return nil, r.logError("ballot_repo_list_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetVoterByUser(ctx context.Context, electionID string, userID string) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("ballot_repo_get_voter_by_user_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetVoterByEmail(ctx context.Context, electionID string, email string) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("ballot_repo_get_voter_by_email_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) IsCommissioner(ctx context.Context, electionID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&commissionerModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("ballot_repo_is_commissioner_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return count > 0, nil
}

func (r *Repository) IsCommissionerEmail(ctx context.Context, electionID string, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&commissionerModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("ballot_repo_is_commissioner_email_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return count > 0, nil
}

func (r *Repository) HasVoted(ctx context.Context, electionID string, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("ballot_repo_has_voted_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return count > 0, nil
}

// RecordBallot writes the whole ballot in one transaction. The prior-vote
// check is re-run inside the transaction and the (election_id, voter_id,
// candidate_id) unique index backs it up, so a concurrent second ballot
// surfaces as ErrAlreadyVoted, never as a partial write.
func (r *Repository) RecordBallot(ctx context.Context, electionID string, voterID string, votes []entities.Vote) error {
	rows := make([]voteModel, 0, len(votes))
	for _, vote := range votes {
		rows = append(rows, voteModelFromEntity(vote))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&voteModel{}).
			Where("election_id = ?", strings.TrimSpace(electionID)).
			Where("voter_id = ?", strings.TrimSpace(voterID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrAlreadyVoted
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) || isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("ballot_repo_record_ballot_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"voter_id", strings.TrimSpace(voterID),
			"votes", len(votes),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "voting/ballot-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Slug            string     `gorm:"column:slug"`
	Name            string     `gorm:"column:name"`
	Publicity       string     `gorm:"column:publicity"`
	StartDate       time.Time  `gorm:"column:start_date"`
	EndDate         time.Time  `gorm:"column:end_date"`
	VotingHourStart *int       `gorm:"column:voting_hour_start"`
	VotingHourEnd   *int       `gorm:"column:voting_hour_end"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:      m.ID,
		Slug:            m.Slug,
		Name:            m.Name,
		Publicity:       entities.Publicity(m.Publicity),
		StartDate:       m.StartDate.UTC(),
		EndDate:         m.EndDate.UTC(),
		VotingHourStart: m.VotingHourStart,
		VotingHourEnd:   m.VotingHourEnd,
	}
}

type positionModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ElectionID string    `gorm:"column:election_id"`
	Name       string    `gorm:"column:name"`
	SortOrder  int       `gorm:"column:sort_order"`
	MinSelect  int       `gorm:"column:min_select"`
	MaxSelect  int       `gorm:"column:max_select"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (positionModel) TableName() string {
	return "positions"
}

func (m positionModel) toEntity() entities.Position {
	return entities.Position{
		PositionID: m.ID,
		ElectionID: m.ElectionID,
		Name:       m.Name,
		Order:      m.SortOrder,
		Min:        m.MinSelect,
		Max:        m.MaxSelect,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type candidateRow struct {
	ID               string    `gorm:"column:id"`
	ElectionID       string    `gorm:"column:election_id"`
	PositionID       string    `gorm:"column:position_id"`
	PartylistID      string    `gorm:"column:partylist_id"`
	Slug             string    `gorm:"column:slug"`
	FirstName        string    `gorm:"column:first_name"`
	MiddleName       string    `gorm:"column:middle_name"`
	LastName         string    `gorm:"column:last_name"`
	PartylistAcronym string    `gorm:"column:partylist_acronym"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (m candidateRow) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID:      m.ID,
		ElectionID:       m.ElectionID,
		PositionID:       m.PositionID,
		PartylistID:      m.PartylistID,
		Slug:             m.Slug,
		FirstName:        m.FirstName,
		MiddleName:       m.MiddleName,
		LastName:         m.LastName,
		PartylistAcronym: m.PartylistAcronym,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

type voterModel struct {
	ID         string  `gorm:"column:id;primaryKey"`
	ElectionID string  `gorm:"column:election_id"`
	UserID     *string `gorm:"column:user_id"`
	Email      string  `gorm:"column:email"`
}

func (voterModel) TableName() string {
	return "voters"
}

func (m voterModel) toEntity() entities.Voter {
	userID := ""
	if m.UserID != nil {
		userID = *m.UserID
	}
	return entities.Voter{
		VoterID:    m.ID,
		ElectionID: m.ElectionID,
		UserID:     userID,
		Email:      m.Email,
	}
}

type commissionerModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	ElectionID string `gorm:"column:election_id"`
	UserID     string `gorm:"column:user_id"`
	Email      string `gorm:"column:email"`
}

func (commissionerModel) TableName() string {
	return "commissioners"
}

type voteModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ElectionID  string    `gorm:"column:election_id"`
	PositionID  string    `gorm:"column:position_id"`
	CandidateID string    `gorm:"column:candidate_id"`
	VoterID     string    `gorm:"column:voter_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:          strings.TrimSpace(vote.VoteID),
		ElectionID:  strings.TrimSpace(vote.ElectionID),
		PositionID:  strings.TrimSpace(vote.PositionID),
		CandidateID: strings.TrimSpace(vote.CandidateID),
		VoterID:     strings.TrimSpace(vote.VoterID),
		CreatedAt:   vote.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ElectionReader = (*Repository)(nil)
var _ ports.RosterReader = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
