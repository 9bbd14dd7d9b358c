package tutor

import (
	"github.com/ashureev/learnzverse/internal/cache"
	"github.com/ashureev/learnzverse/internal/domain"
)

// ResponseCache is the memoization layer consulted before generating.
type ResponseCache interface {
	GetOrGenerate(key string, generate func() string) (string, bool)
}

// Answer is a tutor response plus whether it came from the cache.
type Answer struct {
	Text   string
	Cached bool
}

// Service answers questions using the cache first and the generator on a miss.
type Service struct {
	cache     ResponseCache
	generator *Generator
}

// NewService creates a tutor service.
func NewService(c ResponseCache, g *Generator) *Service {
	if g == nil {
		g = NewGenerator()
	}
	return &Service{
		cache:     c,
		generator: g,
	}
}

// Ask returns the response for question, generating it only on a cache miss.
func (s *Service) Ask(p domain.Persona, classLevel, question string) Answer {
	key := cache.Key(p.Name, classLevel, question)
	text, hit := s.cache.GetOrGenerate(key, func() string {
		return s.generator.Generate(p, classLevel, question)
	})
	return Answer{Text: text, Cached: hit}
}
