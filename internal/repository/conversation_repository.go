package repository

import (
	"context"
	"time"

	"helpdesk-agent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var conversationColumns = []string{"id", "user_id", "resolution_state", "current_attempt", "proposed_solution_id", "created_at", "updated_at"}

type ConversationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewConversationRepository(db *pgxpool.Pool, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := squirrel.Insert("conversations").
		Columns(conversationColumns...).
		Values(conv.ID, conv.UserID, conv.State, conv.CurrentAttempt, conv.ProposedSolutionID, conv.CreatedAt, conv.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	query := squirrel.Select(conversationColumns...).
		From("conversations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var conv models.Conversation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&conv.ID, &conv.UserID, &conv.State, &conv.CurrentAttempt, &conv.ProposedSolutionID, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &conv, nil
}

// UpdateState persists the resolution state together with the attempt
// bookkeeping fields.
func (r *ConversationRepository) UpdateState(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = time.Now()
	query := squirrel.Update("conversations").
		Set("resolution_state", conv.State).
		Set("current_attempt", conv.CurrentAttempt).
		Set("proposed_solution_id", conv.ProposedSolutionID).
		Set("updated_at", conv.UpdatedAt).
		Where(squirrel.Eq{"id": conv.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseOpenByUser marks every non-terminal conversation of the user as
// resolved and returns how many were closed.
func (r *ConversationRepository) CloseOpenByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := squirrel.Update("conversations").
		Set("resolution_state", models.StateResolved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID, "resolution_state": models.OpenStates}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
