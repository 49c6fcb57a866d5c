package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"halalan/contexts/election-administration/roster-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/roster-service/domain/errors"
	"halalan/contexts/election-administration/roster-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the gorm-backed roster adapter. It owns the voters,
// invited_voters, and voter_fields tables and reads elections,
// commissioners, and votes as projections.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) logError(event string, err error, attrs ...any) {
	fields := append([]any{
		"event", event,
		"module", "election-administration/roster-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, attrs...)
	r.logger.Error("roster repository failure", fields...)
}

type electionRow struct {
	ID        string
	Slug      string
	Publicity string
}

type voterModel struct {
	ID         string `gorm:"primaryKey"`
	ElectionID string
	UserID     *string
	Email      string
	Field      string
	CreatedAt  time.Time
}

func (voterModel) TableName() string { return "voters" }

func voterModelFromEntity(voter entities.Voter) (voterModel, error) {
	field, err := encodeField(voter.Field)
	if err != nil {
		return voterModel{}, err
	}
	model := voterModel{
		ID:         voter.VoterID,
		ElectionID: voter.ElectionID,
		Email:      voter.Email,
		Field:      field,
		CreatedAt:  voter.CreatedAt,
	}
	if voter.UserID != "" {
		userID := voter.UserID
		model.UserID = &userID
	}
	return model, nil
}

func (m voterModel) toEntity() (entities.Voter, error) {
	field, err := decodeField(m.Field)
	if err != nil {
		return entities.Voter{}, err
	}
	voter := entities.Voter{
		VoterID:    m.ID,
		ElectionID: m.ElectionID,
		Email:      m.Email,
		Field:      field,
		CreatedAt:  m.CreatedAt,
	}
	if m.UserID != nil {
		voter.UserID = *m.UserID
	}
	return voter, nil
}

type invitedVoterModel struct {
	ID         string `gorm:"primaryKey"`
	ElectionID string
	Email      string
	Status     string
	Field      string
	CreatedAt  time.Time
}

func (invitedVoterModel) TableName() string { return "invited_voters" }

func invitedVoterModelFromEntity(invite entities.InvitedVoter) (invitedVoterModel, error) {
	field, err := encodeField(invite.Field)
	if err != nil {
		return invitedVoterModel{}, err
	}
	return invitedVoterModel{
		ID:         invite.InviteID,
		ElectionID: invite.ElectionID,
		Email:      invite.Email,
		Status:     string(invite.Status),
		Field:      field,
		CreatedAt:  invite.CreatedAt,
	}, nil
}

func (m invitedVoterModel) toEntity() (entities.InvitedVoter, error) {
	field, err := decodeField(m.Field)
	if err != nil {
		return entities.InvitedVoter{}, err
	}
	return entities.InvitedVoter{
		InviteID:   m.ID,
		ElectionID: m.ElectionID,
		Email:      m.Email,
		Status:     entities.AccountStatus(m.Status),
		Field:      field,
		CreatedAt:  m.CreatedAt,
	}, nil
}

type voterFieldModel struct {
	ID         string `gorm:"primaryKey"`
	ElectionID string
	Name       string
	CreatedAt  time.Time
}

func (voterFieldModel) TableName() string { return "voter_fields" }

func (m voterFieldModel) toEntity() entities.VoterField {
	return entities.VoterField{
		FieldID:    m.ID,
		ElectionID: m.ElectionID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
	}
}

// Field maps are stored as a JSONB document; an empty map is stored as
// the empty object so the column stays NOT NULL.
func encodeField(field map[string]string) (string, error) {
	if len(field) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(field)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeField(raw string) (map[string]string, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	field := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &field); err != nil {
		return nil, err
	}
	if len(field) == 0 {
		return nil, nil
	}
	return field, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionRow
	err := r.db.WithContext(ctx).
		Table("elections").
		Select("id, slug, publicity").
		Where("id = ? AND deleted_at IS NULL", strings.TrimSpace(electionID)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	if err != nil {
		r.logError("election_lookup_failed", err, "election_id", electionID)
		return entities.Election{}, err
	}
	return entities.Election{ElectionID: row.ID, Slug: row.Slug, Publicity: row.Publicity}, nil
}

func (r *Repository) IsCommissioner(ctx context.Context, electionID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("commissioners").
		Where("election_id = ? AND user_id = ?", strings.TrimSpace(electionID), strings.TrimSpace(userID)).
		Count(&count).Error
	if err != nil {
		r.logError("commissioner_lookup_failed", err, "election_id", electionID)
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) HasVoted(ctx context.Context, electionID string, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("votes").
		Where("election_id = ? AND voter_id = ?", strings.TrimSpace(electionID), strings.TrimSpace(voterID)).
		Count(&count).Error
	if err != nil {
		r.logError("vote_lookup_failed", err, "election_id", electionID, "voter_id", voterID)
		return false, err
	}
	return count > 0, nil
}

// GetUserEmail resolves an identity to an email through the rows that
// already carry one. Commissioner seats win over voter rows.
func (r *Repository) GetUserEmail(ctx context.Context, userID string) (string, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", false, nil
	}
	var row struct{ Email string }
	err := r.db.WithContext(ctx).
		Table("commissioners").
		Select("email").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(1).
		Take(&row).Error
	if err == nil && row.Email != "" {
		return strings.ToLower(row.Email), true, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logError("user_email_lookup_failed", err, "user_id", userID)
		return "", false, err
	}
	err = r.db.WithContext(ctx).
		Table("voters").
		Select("email").
		Where("user_id = ? AND email <> ''", userID).
		Order("created_at ASC").
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		r.logError("user_email_lookup_failed", err, "user_id", userID)
		return "", false, err
	}
	return strings.ToLower(row.Email), row.Email != "", nil
}

func (r *Repository) CreateVoter(ctx context.Context, voter entities.Voter) error {
	model, err := voterModelFromEntity(voter)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailAlreadyOnRoster
		}
		r.logError("voter_create_failed", err, "voter_id", voter.VoterID)
		return err
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	var model voterModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	if err != nil {
		r.logError("voter_lookup_failed", err, "voter_id", voterID)
		return entities.Voter{}, err
	}
	return model.toEntity()
}

func (r *Repository) UpdateVoter(ctx context.Context, voter entities.Voter) error {
	field, err := encodeField(voter.Field)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&voterModel{}).
		Where("id = ?", voter.VoterID).
		Updates(map[string]any{
			"email": voter.Email,
			"field": field,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrEmailAlreadyOnRoster
		}
		r.logError("voter_update_failed", result.Error, "voter_id", voter.VoterID)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) DeleteVoter(ctx context.Context, voterID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		Delete(&voterModel{})
	if result.Error != nil {
		r.logError("voter_delete_failed", result.Error, "voter_id", voterID)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) ListVoters(ctx context.Context, electionID string) ([]entities.Voter, error) {
	var models []voterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		r.logError("voter_list_failed", err, "election_id", electionID)
		return nil, err
	}
	voters := make([]entities.Voter, 0, len(models))
	for _, model := range models {
		voter, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		voters = append(voters, voter)
	}
	return voters, nil
}

func (r *Repository) FindVoterByEmail(ctx context.Context, electionID string, email string) (entities.Voter, bool, error) {
	var model voterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND LOWER(email) = LOWER(?)", strings.TrimSpace(electionID), strings.TrimSpace(email)).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Voter{}, false, nil
	}
	if err != nil {
		r.logError("voter_email_lookup_failed", err, "election_id", electionID)
		return entities.Voter{}, false, err
	}
	voter, err := model.toEntity()
	if err != nil {
		return entities.Voter{}, false, err
	}
	return voter, true, nil
}

func (r *Repository) CreateInvitedVoter(ctx context.Context, invite entities.InvitedVoter) error {
	model, err := invitedVoterModelFromEntity(invite)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailAlreadyOnRoster
		}
		r.logError("invite_create_failed", err, "invite_id", invite.InviteID)
		return err
	}
	return nil
}

func (r *Repository) GetInvitedVoter(ctx context.Context, inviteID string) (entities.InvitedVoter, error) {
	var model invitedVoterModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(inviteID)).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.InvitedVoter{}, domainerrors.ErrInviteNotFound
	}
	if err != nil {
		r.logError("invite_lookup_failed", err, "invite_id", inviteID)
		return entities.InvitedVoter{}, err
	}
	return model.toEntity()
}

func (r *Repository) UpdateInvitedVoter(ctx context.Context, invite entities.InvitedVoter) error {
	field, err := encodeField(invite.Field)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&invitedVoterModel{}).
		Where("id = ?", invite.InviteID).
		Updates(map[string]any{
			"email":  invite.Email,
			"status": string(invite.Status),
			"field":  field,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrEmailAlreadyOnRoster
		}
		r.logError("invite_update_failed", result.Error, "invite_id", invite.InviteID)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInviteNotFound
	}
	return nil
}

func (r *Repository) DeleteInvitedVoter(ctx context.Context, inviteID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(inviteID)).
		Delete(&invitedVoterModel{})
	if result.Error != nil {
		r.logError("invite_delete_failed", result.Error, "invite_id", inviteID)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInviteNotFound
	}
	return nil
}

func (r *Repository) ListInvitedVoters(ctx context.Context, electionID string) ([]entities.InvitedVoter, error) {
	var models []invitedVoterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		r.logError("invite_list_failed", err, "election_id", electionID)
		return nil, err
	}
	invites := make([]entities.InvitedVoter, 0, len(models))
	for _, model := range models {
		invite, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, nil
}

func (r *Repository) FindInvitedVoterByEmail(ctx context.Context, electionID string, email string) (entities.InvitedVoter, bool, error) {
	// A declined row may coexist with a newer pending one for the same
	// address; the pending invitation wins the lookup.
	var model invitedVoterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND LOWER(email) = LOWER(?)", strings.TrimSpace(electionID), strings.TrimSpace(email)).
		Order("(status = 'INVITED') DESC, created_at DESC").
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.InvitedVoter{}, false, nil
	}
	if err != nil {
		r.logError("invite_email_lookup_failed", err, "election_id", electionID)
		return entities.InvitedVoter{}, false, err
	}
	invite, err := model.toEntity()
	if err != nil {
		return entities.InvitedVoter{}, false, err
	}
	return invite, true, nil
}

func (r *Repository) CreateVoterField(ctx context.Context, field entities.VoterField) error {
	model := voterFieldModel{
		ID:         field.FieldID,
		ElectionID: field.ElectionID,
		Name:       field.Name,
		CreatedAt:  field.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.logError("voter_field_create_failed", err, "field_id", field.FieldID)
		return err
	}
	return nil
}

func (r *Repository) DeleteVoterField(ctx context.Context, fieldID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(fieldID)).
		Delete(&voterFieldModel{})
	if result.Error != nil {
		r.logError("voter_field_delete_failed", result.Error, "field_id", fieldID)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrFieldNotFound
	}
	return nil
}

func (r *Repository) ListVoterFields(ctx context.Context, electionID string) ([]entities.VoterField, error) {
	var models []voterFieldModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		r.logError("voter_field_list_failed", err, "election_id", electionID)
		return nil, err
	}
	fields := make([]entities.VoterField, 0, len(models))
	for _, model := range models {
		fields = append(fields, model.toEntity())
	}
	return fields, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	_ ports.ElectionReader    = (*Repository)(nil)
	_ ports.RosterRepository  = (*Repository)(nil)
	_ ports.VoteChecker       = (*Repository)(nil)
	_ ports.IdentityDirectory = (*Repository)(nil)
)
