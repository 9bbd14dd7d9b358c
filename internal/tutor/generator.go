// Package tutor builds templated tutor explanations and memoizes them.
package tutor

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ashureev/learnzverse/internal/domain"
)

// Example openers. The generator picks one per response.
var examples = [...]func(analogy string) string{
	func(analogy string) string {
		return "Imagine this like " + analogy + ": every part has a job, and the whole only works when each part does its job in the right order."
	},
	func(analogy string) string {
		return "This works similar to " + analogy + ": you start from what you already know and build one small step at a time."
	},
}

var analogies = map[string]string{
	"Physics":     "pushing a shopping cart across a car park",
	"Chemistry":   "following a recipe in a kitchen",
	"Biology":     "a busy city with roads, factories and power stations",
	"Mathematics": "climbing a staircase where each step rests on the one below",
}

var practices = [...]func(topic, classLevel string) string{
	func(topic, _ string) string {
		return fmt.Sprintf("Practice: try explaining %q in your own words to a friend, then write down one question you still have.", topic)
	},
	func(topic, classLevel string) string {
		return fmt.Sprintf("Practice: write a short problem about %q for a Class %s student and solve it step by step.", topic, classLevel)
	},
}

// Generator renders tutor responses.
type Generator struct {
	pick func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithPicker replaces the uniform random choice, mainly for tests.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(g *Generator) {
		g.pick = pick
	}
}

// NewGenerator creates a generator backed by math/rand/v2.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{pick: rand.IntN}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the explanation for question at the given class level.
// The only non-deterministic parts are the example and the practice prompt.
func (g *Generator) Generate(p domain.Persona, classLevel, question string) string {
	topic := strings.TrimSpace(question)
	analogy, ok := analogies[p.Subject]
	if !ok {
		analogy = "learning to ride a bicycle"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s (%s tutor, Class %s)\n", p.Avatar, p.Name, p.Subject, classLevel)
	fmt.Fprintf(&b, "Question: %s\n\n", topic)

	b.WriteString("📘 Concept\n")
	fmt.Fprintf(&b, "Let's look at %q the way a Class %s %s student would. "+
		"As your tutor for %s, I will connect it to the ideas you already use and keep the language simple.\n\n",
		topic, classLevel, p.Subject, p.Specialty)

	b.WriteString("🪜 Step-by-step\n")
	fmt.Fprintf(&b, "Step 1: Identify the key %s terms in the question and write down what each one means.\n", strings.ToLower(p.Subject))
	b.WriteString("Step 2: Connect those terms with the rule, formula or process that links them.\n")
	b.WriteString("Step 3: Apply that rule to the situation in the question and check that the result makes sense.\n\n")

	b.WriteString("💡 Example\n")
	b.WriteString(examples[g.pick(len(examples))](analogy))
	b.WriteString("\n\n")

	b.WriteString("✏️ ")
	b.WriteString(practices[g.pick(len(practices))](topic, classLevel))
	b.WriteString("\n")

	return b.String()
}
