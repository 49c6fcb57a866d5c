package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	"halalan/contexts/election-administration/lifecycle-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the write side of the election schema. It owns elections,
// commissioners, partylists, positions, and candidates; votes and the
// roster are written by the voting and roster contexts.
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

func (r *Repository) CreateElection(
	ctx context.Context,
	election entities.Election,
	commissioner entities.Commissioner,
	partylist entities.Partylist,
	positions []entities.Position,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		electionRow := electionModelFromEntity(election)
		if err := tx.Create(&electionRow).Error; err != nil {
			return err
		}
		commissionerRow := commissionerModelFromEntity(commissioner)
		if err := tx.Create(&commissionerRow).Error; err != nil {
			return err
		}
		partylistRow := partylistModelFromEntity(partylist)
		if err := tx.Create(&partylistRow).Error; err != nil {
			return err
		}
		if len(positions) > 0 {
			rows := make([]positionModel, 0, len(positions))
			for _, position := range positions {
				rows = append(rows, positionModelFromEntity(position))
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSlugTaken
		}
		return r.logError("lifecycle_repo_create_election_failed", err,
			"election_id", strings.TrimSpace(election.ElectionID),
			"slug", strings.TrimSpace(election.Slug),
		)
	}
	return nil
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
		return entities.Election{}, r.logError("lifecycle_repo_get_election_failed", err,
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
		return entities.Election{}, r.logError("lifecycle_repo_get_election_by_slug_failed", err,
			"slug", strings.TrimSpace(slug),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	result := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("id = ?", row.ID).
		Where("deleted_at IS NULL").
		Updates(map[string]any{
			"slug":              row.Slug,
			"name":              row.Name,
			"description":       row.Description,
			"publicity":         row.Publicity,
			"logo_url":          row.LogoURL,
			"start_date":        row.StartDate,
			"end_date":          row.EndDate,
			"voting_hour_start": row.VotingHourStart,
			"voting_hour_end":   row.VotingHourEnd,
			"updated_at":        row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrSlugTaken
		}
		return r.logError("lifecycle_repo_update_election_failed", result.Error,
			"election_id", row.ID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrElectionNotFound
	}
	return nil
}

func (r *Repository) SoftDeleteElection(ctx context.Context, electionID string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("id = ?", strings.TrimSpace(electionID)).
		Where("deleted_at IS NULL").
		Update("deleted_at", deletedAt.UTC())
	if result.Error != nil {
		return r.logError("lifecycle_repo_delete_election_failed", result.Error,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrElectionNotFound
	}
	return nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string, excludeElectionID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&electionModel{}).
		Where("slug = ?", strings.TrimSpace(slug)).
		Where("deleted_at IS NULL")
	if strings.TrimSpace(excludeElectionID) != "" {
		tx = tx.Where("id <> ?", strings.TrimSpace(excludeElectionID))
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, r.logError("lifecycle_repo_slug_exists_failed", err,
			"slug", strings.TrimSpace(slug),
		)
	}
	return count > 0, nil
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
		return false, r.logError("lifecycle_repo_is_commissioner_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return count > 0, nil
}

func (r *Repository) IsVoter(ctx context.Context, electionID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("voters").
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("lifecycle_repo_is_voter_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return count > 0, nil
}

func (r *Repository) ListElectionsByCommissioner(ctx context.Context, userID string) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Table("elections AS e").
		Select("e.*").
		Joins("JOIN commissioners AS c ON c.election_id = e.id").
		Where("c.user_id = ?", strings.TrimSpace(userID)).
		Where("e.deleted_at IS NULL").
		Order("e.created_at ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("lifecycle_repo_list_by_commissioner_failed", err,
			"user_id", strings.TrimSpace(userID),
		)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) ListVotableElections(ctx context.Context, userID string) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Table("elections AS e").
		Select("e.*").
		Joins("JOIN voters AS v ON v.election_id = e.id").
		Where("v.user_id = ?", strings.TrimSpace(userID)).
		Where("e.publicity <> ?", string(entities.PublicityPrivate)).
		Where("e.deleted_at IS NULL").
		Order("e.created_at ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("lifecycle_repo_list_votable_failed", err,
			"user_id", strings.TrimSpace(userID),
		)
	}
	return toElectionEntities(rows), nil
}

func (r *Repository) GetOverview(ctx context.Context, electionID string) (entities.Overview, error) {
	electionID = strings.TrimSpace(electionID)
	overview := entities.Overview{ElectionID: electionID}

	counts := []struct {
		target *int
		table  string
	}{
		{&overview.Voters, "voters"},
		{&overview.InvitedVoters, "invited_voters"},
		{&overview.Positions, "positions"},
		{&overview.Candidates, "candidates"},
		{&overview.Partylists, "partylists"},
	}
	for _, item := range counts {
		var count int64
		if err := r.db.WithContext(ctx).
			Table(item.table).
			Where("election_id = ?", electionID).
			Count(&count).Error; err != nil {
			return entities.Overview{}, r.logError("lifecycle_repo_overview_count_failed", err,
				"election_id", electionID,
				"table", item.table,
			)
		}
		*item.target = int(count)
	}

	var voted int64
	if err := r.db.WithContext(ctx).
		Table("votes").
		Where("election_id = ?", electionID).
		Distinct("voter_id").
		Count(&voted).Error; err != nil {
		return entities.Overview{}, r.logError("lifecycle_repo_overview_voted_failed", err,
			"election_id", electionID,
		)
	}
	overview.VotedVoters = int(voted)
	return overview, nil
}

func (r *Repository) CreatePosition(ctx context.Context, position entities.Position) error {
	row := positionModelFromEntity(position)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("lifecycle_repo_create_position_failed", err,
			"position_id", row.ID,
			"election_id", row.ElectionID,
		)
	}
	return nil
}

func (r *Repository) GetPosition(ctx context.Context, positionID string) (entities.Position, error) {
	var row positionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(positionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Position{}, domainerrors.ErrPositionNotFound
		}
		return entities.Position{}, r.logError("lifecycle_repo_get_position_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePosition(ctx context.Context, position entities.Position) error {
	row := positionModelFromEntity(position)
	result := r.db.WithContext(ctx).
		Model(&positionModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":       row.Name,
			"min_select": row.MinSelect,
			"max_select": row.MaxSelect,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("lifecycle_repo_update_position_failed", result.Error,
			"position_id", row.ID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPositionNotFound
	}
	return nil
}

func (r *Repository) DeletePosition(ctx context.Context, positionID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(positionID)).
		Delete(&positionModel{})
	if result.Error != nil {
		return r.logError("lifecycle_repo_delete_position_failed", result.Error,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPositionNotFound
	}
	return nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID string) ([]entities.Position, error) {
	var rows []positionModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("sort_order ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("lifecycle_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountPositions(ctx context.Context, electionID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&positionModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("lifecycle_repo_count_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return int(count), nil
}

func (r *Repository) CreatePartylist(ctx context.Context, partylist entities.Partylist) error {
	row := partylistModelFromEntity(partylist)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAcronymTaken
		}
		return r.logError("lifecycle_repo_create_partylist_failed", err,
			"partylist_id", row.ID,
			"election_id", row.ElectionID,
		)
	}
	return nil
}

func (r *Repository) GetPartylist(ctx context.Context, partylistID string) (entities.Partylist, error) {
	var row partylistModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(partylistID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Partylist{}, domainerrors.ErrPartylistNotFound
		}
		return entities.Partylist{}, r.logError("lifecycle_repo_get_partylist_failed", err,
			"partylist_id", strings.TrimSpace(partylistID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePartylist(ctx context.Context, partylist entities.Partylist) error {
	row := partylistModelFromEntity(partylist)
	result := r.db.WithContext(ctx).
		Model(&partylistModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":        row.Name,
			"acronym":     row.Acronym,
			"description": row.Description,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAcronymTaken
		}
		return r.logError("lifecycle_repo_update_partylist_failed", result.Error,
			"partylist_id", row.ID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPartylistNotFound
	}
	return nil
}

func (r *Repository) DeletePartylist(ctx context.Context, partylistID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(partylistID)).
		Delete(&partylistModel{})
	if result.Error != nil {
		return r.logError("lifecycle_repo_delete_partylist_failed", result.Error,
			"partylist_id", strings.TrimSpace(partylistID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPartylistNotFound
	}
	return nil
}

func (r *Repository) ListPartylists(ctx context.Context, electionID string, includeIndependent bool) ([]entities.Partylist, error) {
	tx := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID))
	if !includeIndependent {
		tx = tx.Where("acronym <> ?", entities.IndependentAcronym)
	}
	var rows []partylistModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("lifecycle_repo_list_partylists_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Partylist, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AcronymExists(ctx context.Context, electionID string, acronym string, excludePartylistID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&partylistModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("acronym = ?", strings.ToUpper(strings.TrimSpace(acronym)))
	if strings.TrimSpace(excludePartylistID) != "" {
		tx = tx.Where("id <> ?", strings.TrimSpace(excludePartylistID))
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, r.logError("lifecycle_repo_acronym_exists_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return count > 0, nil
}

func (r *Repository) CreateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCandidateSlugTaken
		}
		return r.logError("lifecycle_repo_create_candidate_failed", err,
			"candidate_id", row.ID,
			"election_id", row.ElectionID,
		)
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("lifecycle_repo_get_candidate_failed", err,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	result := r.db.WithContext(ctx).
		Model(&candidateModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"position_id":  row.PositionID,
			"partylist_id": row.PartylistID,
			"slug":         row.Slug,
			"first_name":   row.FirstName,
			"middle_name":  row.MiddleName,
			"last_name":    row.LastName,
			"image_url":    row.ImageURL,
			"updated_at":   row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrCandidateSlugTaken
		}
		return r.logError("lifecycle_repo_update_candidate_failed", result.Error,
			"candidate_id", row.ID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *Repository) DeleteCandidate(ctx context.Context, candidateID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		Delete(&candidateModel{})
	if result.Error != nil {
		return r.logError("lifecycle_repo_delete_candidate_failed", result.Error,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("lifecycle_repo_list_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CandidateSlugExists(ctx context.Context, electionID string, slug string, excludeCandidateID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&candidateModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("slug = ?", strings.TrimSpace(slug))
	if strings.TrimSpace(excludeCandidateID) != "" {
		tx = tx.Where("id <> ?", strings.TrimSpace(excludeCandidateID))
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, r.logError("lifecycle_repo_candidate_slug_exists_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-administration/lifecycle-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("lifecycle repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	Slug            string     `gorm:"column:slug"`
	Name            string     `gorm:"column:name"`
	Description     string     `gorm:"column:description"`
	Publicity       string     `gorm:"column:publicity"`
	LogoURL         string     `gorm:"column:logo_url"`
	StartDate       time.Time  `gorm:"column:start_date"`
	EndDate         time.Time  `gorm:"column:end_date"`
	VotingHourStart *int       `gorm:"column:voting_hour_start"`
	VotingHourEnd   *int       `gorm:"column:voting_hour_end"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func electionModelFromEntity(election entities.Election) electionModel {
	return electionModel{
		ID:              strings.TrimSpace(election.ElectionID),
		Slug:            strings.TrimSpace(election.Slug),
		Name:            strings.TrimSpace(election.Name),
		Description:     strings.TrimSpace(election.Description),
		Publicity:       string(election.Publicity),
		LogoURL:         strings.TrimSpace(election.LogoURL),
		StartDate:       election.StartDate.UTC(),
		EndDate:         election.EndDate.UTC(),
		VotingHourStart: election.VotingHourStart,
		VotingHourEnd:   election.VotingHourEnd,
		CreatedAt:       election.CreatedAt.UTC(),
		UpdatedAt:       election.UpdatedAt.UTC(),
		DeletedAt:       normalizeOptionalTime(election.DeletedAt),
	}
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:      m.ID,
		Slug:            m.Slug,
		Name:            m.Name,
		Description:     m.Description,
		Publicity:       entities.Publicity(m.Publicity),
		LogoURL:         m.LogoURL,
		StartDate:       m.StartDate.UTC(),
		EndDate:         m.EndDate.UTC(),
		VotingHourStart: m.VotingHourStart,
		VotingHourEnd:   m.VotingHourEnd,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
		DeletedAt:       normalizeOptionalTime(m.DeletedAt),
	}
}

type commissionerModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ElectionID string    `gorm:"column:election_id"`
	UserID     string    `gorm:"column:user_id"`
	Email      string    `gorm:"column:email"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (commissionerModel) TableName() string {
	return "commissioners"
}

func commissionerModelFromEntity(commissioner entities.Commissioner) commissionerModel {
	return commissionerModel{
		ID:         strings.TrimSpace(commissioner.CommissionerID),
		ElectionID: strings.TrimSpace(commissioner.ElectionID),
		UserID:     strings.TrimSpace(commissioner.UserID),
		Email:      strings.ToLower(strings.TrimSpace(commissioner.Email)),
		CreatedAt:  commissioner.CreatedAt.UTC(),
	}
}

type partylistModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ElectionID  string    `gorm:"column:election_id"`
	Name        string    `gorm:"column:name"`
	Acronym     string    `gorm:"column:acronym"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (partylistModel) TableName() string {
	return "partylists"
}

func partylistModelFromEntity(partylist entities.Partylist) partylistModel {
	return partylistModel{
		ID:          strings.TrimSpace(partylist.PartylistID),
		ElectionID:  strings.TrimSpace(partylist.ElectionID),
		Name:        strings.TrimSpace(partylist.Name),
		Acronym:     strings.ToUpper(strings.TrimSpace(partylist.Acronym)),
		Description: strings.TrimSpace(partylist.Description),
		CreatedAt:   partylist.CreatedAt.UTC(),
	}
}

func (m partylistModel) toEntity() entities.Partylist {
	return entities.Partylist{
		PartylistID: m.ID,
		ElectionID:  m.ElectionID,
		Name:        m.Name,
		Acronym:     m.Acronym,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
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
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (positionModel) TableName() string {
	return "positions"
}

func positionModelFromEntity(position entities.Position) positionModel {
	return positionModel{
		ID:         strings.TrimSpace(position.PositionID),
		ElectionID: strings.TrimSpace(position.ElectionID),
		Name:       strings.TrimSpace(position.Name),
		SortOrder:  position.Order,
		MinSelect:  position.Min,
		MaxSelect:  position.Max,
		CreatedAt:  position.CreatedAt.UTC(),
		UpdatedAt:  position.UpdatedAt.UTC(),
	}
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
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type candidateModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ElectionID  string    `gorm:"column:election_id"`
	PositionID  string    `gorm:"column:position_id"`
	PartylistID string    `gorm:"column:partylist_id"`
	Slug        string    `gorm:"column:slug"`
	FirstName   string    `gorm:"column:first_name"`
	MiddleName  string    `gorm:"column:middle_name"`
	LastName    string    `gorm:"column:last_name"`
	ImageURL    string    `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

func candidateModelFromEntity(candidate entities.Candidate) candidateModel {
	return candidateModel{
		ID:          strings.TrimSpace(candidate.CandidateID),
		ElectionID:  strings.TrimSpace(candidate.ElectionID),
		PositionID:  strings.TrimSpace(candidate.PositionID),
		PartylistID: strings.TrimSpace(candidate.PartylistID),
		Slug:        strings.TrimSpace(candidate.Slug),
		FirstName:   strings.TrimSpace(candidate.FirstName),
		MiddleName:  strings.TrimSpace(candidate.MiddleName),
		LastName:    strings.TrimSpace(candidate.LastName),
		ImageURL:    strings.TrimSpace(candidate.ImageURL),
		CreatedAt:   candidate.CreatedAt.UTC(),
		UpdatedAt:   candidate.UpdatedAt.UTC(),
	}
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID: m.ID,
		ElectionID:  m.ElectionID,
		PositionID:  m.PositionID,
		PartylistID: m.PartylistID,
		Slug:        m.Slug,
		FirstName:   m.FirstName,
		MiddleName:  m.MiddleName,
		LastName:    m.LastName,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toElectionEntities(rows []electionModel) []entities.Election {
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ElectionRepository = (*Repository)(nil)
var _ ports.PositionRepository = (*Repository)(nil)
var _ ports.PartylistRepository = (*Repository)(nil)
var _ ports.CandidateRepository = (*Repository)(nil)
