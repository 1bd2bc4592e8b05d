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

var (
	incidentColumns = []string{"id", "description", "category", "priority", "status", "conversation_id", "reporter_id", "assignee_id", "created_at", "updated_at"}
	detailColumns   = []string{"id", "incident_id", "technician_id", "status", "comment", "opened_at", "closed_at"}
)

type IncidentFilter struct {
	Status *models.IncidentStatus
	Limit  int
	Offset int
}

type IncidentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewIncidentRepository(db *pgxpool.Pool, logger *zap.Logger) *IncidentRepository {
	return &IncidentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *IncidentRepository) Create(ctx context.Context, inc *models.Incident) error {
	query := squirrel.Insert("incidents").
		Columns(incidentColumns...).
		Values(inc.ID, inc.Description, inc.Category, inc.Priority, inc.Status, inc.ConversationID, inc.ReporterID, inc.AssigneeID, inc.CreatedAt, inc.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByConversationID returns the oldest incident linked to the conversation.
func (r *IncidentRepository) GetByConversationID(ctx context.Context, conversationID uuid.UUID) (*models.Incident, error) {
	return r.getOne(ctx, squirrel.Eq{"conversation_id": conversationID})
}

func (r *IncidentRepository) Update(ctx context.Context, inc *models.Incident) error {
	inc.UpdatedAt = time.Now()
	query := squirrel.Update("incidents").
		Set("description", inc.Description).
		Set("category", inc.Category).
		Set("priority", inc.Priority).
		Set("status", inc.Status).
		Set("assignee_id", inc.AssigneeID).
		Set("updated_at", inc.UpdatedAt).
		Where(squirrel.Eq{"id": inc.ID}).
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

func (r *IncidentRepository) List(ctx context.Context, filter IncidentFilter) ([]*models.Incident, error) {
	query := squirrel.Select(incidentColumns...).
		From("incidents").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"status": *filter.Status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []*models.Incident
	for rows.Next() {
		var inc models.Incident
		if err := rows.Scan(
			&inc.ID, &inc.Description, &inc.Category, &inc.Priority, &inc.Status, &inc.ConversationID, &inc.ReporterID, &inc.AssigneeID, &inc.CreatedAt, &inc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		incidents = append(incidents, &inc)
	}

	return incidents, rows.Err()
}

func (r *IncidentRepository) CreateDetail(ctx context.Context, detail *models.IncidentDetail) error {
	query := squirrel.Insert("incident_details").
		Columns(detailColumns...).
		Values(detail.ID, detail.IncidentID, detail.TechnicianID, detail.Status, detail.Comment, detail.OpenedAt, detail.ClosedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListDetails returns the attention history of an incident, oldest first.
func (r *IncidentRepository) ListDetails(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentDetail, error) {
	query := squirrel.Select(detailColumns...).
		From("incident_details").
		Where(squirrel.Eq{"incident_id": incidentID}).
		OrderBy("opened_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*models.IncidentDetail
	for rows.Next() {
		var d models.IncidentDetail
		if err := rows.Scan(&d.ID, &d.IncidentID, &d.TechnicianID, &d.Status, &d.Comment, &d.OpenedAt, &d.ClosedAt); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}

	return details, rows.Err()
}

func (r *IncidentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Incident, error) {
	query := squirrel.Select(incidentColumns...).
		From("incidents").
		Where(where).
		OrderBy("created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var inc models.Incident
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&inc.ID, &inc.Description, &inc.Category, &inc.Priority, &inc.Status, &inc.ConversationID, &inc.ReporterID, &inc.AssigneeID, &inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &inc, nil
}
