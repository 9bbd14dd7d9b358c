package tutor_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashureev/learnzverse/internal/cache"
	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/ashureev/learnzverse/internal/tutor"
	"github.com/m-mizutani/gt"
)

func fixed(i int) func(int) int {
	return func(n int) int { return i % n }
}

func newton(t *testing.T) domain.Persona {
	t.Helper()
	p, ok := domain.PersonaByKey("1")
	gt.True(t, ok)
	return p
}

func TestGenerateSections(t *testing.T) {
	p := newton(t)
	out := tutor.NewGenerator().Generate(p, "10", "What is Newton's second law?")

	gt.S(t, out).Contains(p.Avatar)
	gt.S(t, out).Contains(p.Name)
	gt.S(t, out).Contains("Class 10")
	gt.S(t, out).Contains("Step 1:")
	gt.S(t, out).Contains("Step 2:")
	gt.S(t, out).Contains("Step 3:")
	gt.S(t, out).Contains("Practice:")
	gt.True(t, strings.Contains(out, "Imagine this like") || strings.Contains(out, "This works similar to"))
}

func TestGenerateIsDeterministicForFixedPicks(t *testing.T) {
	p := newton(t)
	g := tutor.NewGenerator(tutor.WithPicker(fixed(0)))

	a := g.Generate(p, "9", "What is inertia?")
	b := g.Generate(p, "9", "What is inertia?")
	gt.Equal(t, a, b)
	gt.S(t, a).Contains("Imagine this like")
	gt.S(t, a).Contains("in your own words")

	c := tutor.NewGenerator(tutor.WithPicker(fixed(1))).Generate(p, "9", "What is inertia?")
	gt.S(t, c).Contains("This works similar to")
	gt.S(t, c).Contains("for a Class 9 student")
}

func TestGenerateCoversEveryPersona(t *testing.T) {
	g := tutor.NewGenerator()
	for _, p := range domain.Personas() {
		out := g.Generate(p, "11", "Why?")
		gt.S(t, out).Contains(p.Name)
		gt.S(t, out).Contains(p.Subject)
	}
}

func TestAskUsesCacheOnSecondCall(t *testing.T) {
	c := cache.Load(filepath.Join(t.TempDir(), "cache.json"), nil)

	picks := 0
	g := tutor.NewGenerator(tutor.WithPicker(func(n int) int {
		picks++
		return picks % n
	}))
	svc := tutor.NewService(c, g)
	p := newton(t)

	first := svc.Ask(p, "10", "What is Newton's second law?")
	gt.False(t, first.Cached)
	gt.Equal(t, picks, 2)

	second := svc.Ask(p, "10", "What is Newton's second law?")
	gt.True(t, second.Cached)
	gt.Equal(t, second.Text, first.Text)
	gt.Equal(t, picks, 2)

	other := svc.Ask(p, "11", "What is Newton's second law?")
	gt.False(t, other.Cached)
}

func TestAskLongQuestionCollision(t *testing.T) {
	c := cache.Load(filepath.Join(t.TempDir(), "cache.json"), nil)
	svc := tutor.NewService(c, nil)
	p := newton(t)

	first := svc.Ask(p, "10", "Explain gravity please help me understand this concept in depth today now")
	second := svc.Ask(p, "10", "Explain gravity please help me understand this concept with examples")
	gt.True(t, second.Cached)
	gt.Equal(t, second.Text, first.Text)
}
