package service

import (
	"context"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/repository"

	"github.com/google/uuid"
)

// The interfaces below are satisfied by the postgres repositories.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Directory finds a user holding a role. A nil user with a nil error means
// nobody holds it.
type Directory interface {
	FindByRole(ctx context.Context, role models.Role) (*models.User, error)
}

type ConversationStore interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	UpdateState(ctx context.Context, conv *models.Conversation) error
	CloseOpenByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error)
	ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error)
}

type KnowledgeStore interface {
	Create(ctx context.Context, entry *models.KnowledgeEntry) error
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*models.KnowledgeEntry, error)
	List(ctx context.Context, limit, offset int) ([]*models.KnowledgeEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type IncidentStore interface {
	Create(ctx context.Context, inc *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	GetByConversationID(ctx context.Context, conversationID uuid.UUID) (*models.Incident, error)
	Update(ctx context.Context, inc *models.Incident) error
	List(ctx context.Context, filter repository.IncidentFilter) ([]*models.Incident, error)
	CreateDetail(ctx context.Context, detail *models.IncidentDetail) error
	ListDetails(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentDetail, error)
}

// AIResolver proposes a solution for a problem. details carries extra
// context such as the category and recent history.
type AIResolver interface {
	Name() string
	Resolve(ctx context.Context, problem string, details map[string]string) (string, error)
}

type TaskQueue interface {
	Enqueue(task ResolutionTask) error
}
