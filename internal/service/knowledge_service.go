package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var stopWords = toSet([]string{
	"el", "la", "de", "que", "y", "a", "en", "un", "ser", "se", "no", "por", "con", "para", "una", "su", "al", "lo",
	"como", "más", "pero", "sus", "le", "ya", "o", "fue", "este", "ha", "sí", "porque", "esta", "son", "entre",
	"está", "cuando", "muy", "sin", "sobre", "también", "me", "hasta", "hay", "donde", "han", "quien", "están",
	"estado", "desde", "todo", "nos", "durante", "estados", "todos", "uno", "les", "ni", "contra", "otros",
	"fueron", "ese", "eso", "había", "ante", "ellos", "e", "esto", "mí", "antes", "algunos", "qué", "unos", "yo",
	"otro", "otras", "otra", "él", "tanto", "esa", "estos", "mucho", "quienes", "nada", "muchos", "cual", "sea",
	"poco", "ella", "estar", "haber", "estas", "estaba", "estamos", "algunas", "algo", "nosotros",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ExtractKeywords lowercases text, splits it on anything that is not a letter
// or digit and keeps the words longer than three characters that are not
// stop words. Order of first appearance is kept.
func ExtractKeywords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(words))
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
	}
	return keywords
}

type KnowledgeService struct {
	knowledge KnowledgeStore
	limit     int
	logger    *zap.Logger
}

func NewKnowledgeService(knowledge KnowledgeStore, limit int, logger *zap.Logger) *KnowledgeService {
	if limit <= 0 {
		limit = 3
	}
	return &KnowledgeService{
		knowledge: knowledge,
		limit:     limit,
		logger:    logger.Named("knowledge"),
	}
}

// Search returns up to the configured number of entries whose problem
// description contains any keyword of query. No ranking is applied.
func (s *KnowledgeService) Search(ctx context.Context, query string) ([]*models.KnowledgeEntry, error) {
	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	results, err := s.knowledge.SearchByKeywords(ctx, keywords, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}

	s.logger.Info("Knowledge search completed",
		zap.Strings("keywords", keywords),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (s *KnowledgeService) List(ctx context.Context, limit, offset int) ([]*models.KnowledgeEntry, error) {
	limit, offset = pageBounds(limit, offset)
	return s.knowledge.List(ctx, limit, offset)
}

func (s *KnowledgeService) Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error) {
	entry, err := s.knowledge.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrKnowledgeNotFound
	}
	return entry, err
}

func (s *KnowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.knowledge.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrKnowledgeNotFound
		}
		return fmt.Errorf("failed to delete knowledge entry: %w", err)
	}
	s.logger.Info("Knowledge entry deleted", zap.String("entry_id", id.String()))
	return nil
}

// FormatAnswer renders a stored entry as the chat reply shown to the user.
func FormatAnswer(entry *models.KnowledgeEntry) string {
	var b strings.Builder
	b.WriteString("He encontrado una solución similar en nuestra base de conocimientos:\n\n")
	b.WriteString(fmt.Sprintf("**Problema similar:** %s\n\n", entry.Problem))
	b.WriteString(fmt.Sprintf("**Solución:**\n%s\n\n", entry.Solution))
	if entry.ResolvedBy != "" {
		b.WriteString(fmt.Sprintf("_Esta solución fue proporcionada por: %s_\n", entry.ResolvedBy))
	}
	return b.String()
}
