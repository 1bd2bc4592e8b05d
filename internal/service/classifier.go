package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"helpdesk-agent/internal/models"
)

const (
	CategoryHardware = "hardware"
	CategoryNetwork  = "network"
	CategoryPrinter  = "printer"
	CategorySoftware = "software"
	CategoryEmail    = "email"
	CategoryAccess   = "access"
	CategoryGeneral  = "general"
)

type categoryRule struct {
	category string
	keywords []string
}

// Order matters: the first category with a matching keyword wins.
var categoryRules = []categoryRule{
	{CategoryHardware, []string{"computadora", "pc", "laptop", "teclado", "mouse", "monitor", "disco", "memoria", "cpu"}},
	{CategoryNetwork, []string{"internet", "wifi", "red", "conexión", "conectar", "ethernet", "router", "switch"}},
	{CategoryPrinter, []string{"impresora", "imprimir", "impresión", "toner", "papel", "escáner"}},
	{CategorySoftware, []string{"programa", "aplicación", "software", "instalar", "actualizar", "error", "sistema operativo", "windows"}},
	{CategoryEmail, []string{"correo", "email", "outlook", "gmail", "mensaje", "enviar correo"}},
	{CategoryAccess, []string{"contraseña", "password", "acceso", "login", "usuario", "cuenta", "bloqueado"}},
}

// DetectCategory maps a problem description onto a support category by
// keyword substring. Unknown problems are "general".
func DetectCategory(problem string) string {
	text := strings.ToLower(problem)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

const (
	ProblemTotalFailure  = "total_failure"
	ProblemPerformance   = "performance"
	ProblemSoftwareError = "software_error"
	ProblemQuestion      = "question"
	ProblemOther         = "other"
)

var problemTypeRules = []categoryRule{
	{ProblemTotalFailure, []string{"no funciona", "no enciende"}},
	{ProblemPerformance, []string{"lento", "demora"}},
	{ProblemSoftwareError, []string{"error", "mensaje"}},
	{ProblemQuestion, []string{"cómo", "como"}},
}

func ClassifyProblemType(problem string) string {
	text := strings.ToLower(problem)
	for _, rule := range problemTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return ProblemOther
}

// PriorityForCategory returns the incident priority used when a chat is
// escalated.
func PriorityForCategory(category string) models.IncidentPriority {
	switch category {
	case CategoryHardware, CategoryNetwork, "server", "security", "error_sistema":
		return models.PriorityHigh
	case CategorySoftware:
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

const knowledgeBaseConfidence = 0.9

var (
	numberedStep       = regexp.MustCompile(`\d+\.\s`)
	uncertaintyMarkers = []string{"quizás", "tal vez", "posiblemente", "puede que", "no estoy seguro"}
)

// ScoreConfidence rates an AI answer in [0, 1]. The score is reported to
// clients and never drives the conversation flow.
func ScoreConfidence(answer string) float64 {
	score := 0.5
	if numberedStep.MatchString(answer) {
		score += 0.2
	}
	if utf8.RuneCountInString(answer) > 300 {
		score += 0.1
	}
	lower := strings.ToLower(answer)
	for _, marker := range uncertaintyMarkers {
		if strings.Contains(lower, marker) {
			score -= 0.2
			break
		}
	}
	return clamp(score, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
