package repository

import (
	"context"

	"helpdesk-agent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var messageColumns = []string{"id", "conversation_id", "sender_id", "sender_type", "kind", "body", "sent_at"}

type MessageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMessageRepository(db *pgxpool.Pool, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := squirrel.Insert("messages").
		Columns(messageColumns...).
		Values(msg.ID, msg.ConversationID, msg.SenderID, msg.SenderType, msg.Kind, msg.Body, msg.SentAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Delete removes a single message.
func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("messages").
		Where(squirrel.Eq{"id": id}).
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

// ListByConversation returns the whole transcript, oldest first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	return r.list(ctx, buildTranscriptQuery(conversationID))
}

// ListRecent returns the newest limit messages, oldest first.
func (r *MessageRepository) ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	messages, err := r.list(ctx, buildRecentQuery(conversationID, limit))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// seq breaks ties between rows stored within the same timestamp tick.
func buildTranscriptQuery(conversationID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(messageColumns...).
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("sent_at ASC", "seq ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func buildRecentQuery(conversationID uuid.UUID, limit int) squirrel.SelectBuilder {
	return squirrel.Select(messageColumns...).
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("sent_at DESC", "seq DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *MessageRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Message, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func scanMessage(rows pgx.Rows) (*models.Message, error) {
	var msg models.Message
	if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.SenderType, &msg.Kind, &msg.Body, &msg.SentAt); err != nil {
		return nil, err
	}
	return &msg, nil
}
