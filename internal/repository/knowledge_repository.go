package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"helpdesk-agent/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var knowledgeColumns = []string{"id", "incident_id", "problem_description", "solution", "transcript", "resolved_by", "created_at"}

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Create(ctx context.Context, entry *models.KnowledgeEntry) error {
	transcript, err := encodeTranscript(entry.Transcript)
	if err != nil {
		return err
	}

	query := squirrel.Insert("knowledge_base").
		Columns(knowledgeColumns...).
		Values(entry.ID, entry.IncidentID, entry.Problem, entry.Solution, transcript, entry.ResolvedBy, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Upsert inserts the entry or leaves an existing row with the same id alone.
// Used by the seeder so it can run repeatedly.
func (r *KnowledgeRepository) Upsert(ctx context.Context, entry *models.KnowledgeEntry) error {
	transcript, err := encodeTranscript(entry.Transcript)
	if err != nil {
		return err
	}

	query := squirrel.Insert("knowledge_base").
		Columns(knowledgeColumns...).
		Values(entry.ID, entry.IncidentID, entry.Problem, entry.Solution, transcript, entry.ResolvedBy, entry.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// SearchByKeywords returns entries whose problem description contains any of
// the keywords, in insertion order. No keywords means no matches.
func (r *KnowledgeRepository) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*models.KnowledgeEntry, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	sql, args, err := buildKeywordSearch(keywords, limit).ToSql()
	if err != nil {
		return nil, err
	}

	return r.list(ctx, sql, args)
}

func buildKeywordSearch(keywords []string, limit int) squirrel.SelectBuilder {
	matches := squirrel.Or{}
	for _, keyword := range keywords {
		matches = append(matches, squirrel.ILike{"problem_description": "%" + keyword + "%"})
	}

	return squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		Where(matches).
		Where(squirrel.NotEq{"solution": ""}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *KnowledgeRepository) List(ctx context.Context, limit, offset int) ([]*models.KnowledgeEntry, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.list(ctx, sql, args)
}

func (r *KnowledgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	entries, err := r.list(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries[0], nil
}

func (r *KnowledgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("knowledge_base").
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

func (r *KnowledgeRepository) list(ctx context.Context, sql string, args []interface{}) ([]*models.KnowledgeEntry, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.KnowledgeEntry
	for rows.Next() {
		entry, err := scanKnowledgeEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}

	return results, rows.Err()
}

func encodeTranscript(transcript []string) (string, error) {
	if transcript == nil {
		return "[]", nil
	}
	data, err := json.Marshal(transcript)
	if err != nil {
		return "", fmt.Errorf("failed to encode transcript: %w", err)
	}
	return string(data), nil
}

func scanKnowledgeEntry(rows pgx.Rows) (*models.KnowledgeEntry, error) {
	var entry models.KnowledgeEntry
	var transcript []byte
	if err := rows.Scan(
		&entry.ID, &entry.IncidentID, &entry.Problem, &entry.Solution, &transcript, &entry.ResolvedBy, &entry.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(transcript) > 0 {
		if err := json.Unmarshal(transcript, &entry.Transcript); err != nil {
			return nil, fmt.Errorf("failed to decode transcript: %w", err)
		}
	}
	return &entry, nil
}
