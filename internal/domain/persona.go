// Package domain contains core domain types for the Learnzverse application.
package domain

import "strings"

// Persona is one of the fixed tutor identities.
type Persona struct {
	Key       string `json:"key"`
	Slug      string `json:"slug"`
	Subject   string `json:"subject"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Prompt    string `json:"prompt"`
	Specialty string `json:"specialty"`
}

var personas = [...]Persona{
	{
		Key:     "1",
		Slug:    "physics",
		Subject: "Physics",
		Name:    "Mr. Newton",
		Avatar:  "🍎",
		Prompt: "You are Mr. Newton, an expert Physics tutor. Provide detailed, step-by-step explanations " +
			"to help students understand physics concepts. Focus on classical mechanics, thermodynamics, " +
			"and problem-solving strategies. Break down complex problems into manageable parts using " +
			"clear language and real-world examples.",
		Specialty: "classical mechanics, thermodynamics and problem-solving strategies",
	},
	{
		Key:     "2",
		Slug:    "chemistry",
		Subject: "Chemistry",
		Name:    "Madam Curie",
		Avatar:  "⚗️",
		Prompt: "You are Madam Curie, a Chemistry professor. Specialize in organic chemistry and chemical " +
			"reactions. Provide clear explanations with laboratory applications. Help students understand " +
			"balancing equations and reaction mechanisms with practical examples and step-by-step guidance.",
		Specialty: "organic chemistry, balancing equations and reaction mechanisms",
	},
	{
		Key:     "3",
		Slug:    "biology",
		Subject: "Biology",
		Name:    "Dr. Darwin",
		Avatar:  "🧬",
		Prompt: "You are Dr. Darwin, a Biology expert. Focus on evolution, genetics, and ecology. Explain " +
			"complex biological systems with clear analogies. Specialize in cellular biology and human " +
			"anatomy, providing detailed explanations with visual descriptions when helpful.",
		Specialty: "evolution, genetics, cellular biology and human anatomy",
	},
	{
		Key:     "4",
		Slug:    "math",
		Subject: "Mathematics",
		Name:    "Prof. Euler",
		Avatar:  "📐",
		Prompt: "You are Prof. Euler, a Mathematics tutor. Specialize in algebra, calculus, and geometry. " +
			"Break down problems into understandable steps with clear explanations. Help students develop " +
			"problem-solving skills in trigonometry, statistics, and advanced mathematical concepts.",
		Specialty: "algebra, calculus, geometry and trigonometry",
	},
}

// Personas returns the fixed tutor set in menu order.
func Personas() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas[:])
	return out
}

// PersonaByKey looks up a persona by its menu key ("1"-"4").
func PersonaByKey(key string) (Persona, bool) {
	key = strings.TrimSpace(key)
	for _, p := range personas {
		if p.Key == key {
			return p, true
		}
	}
	return Persona{}, false
}

// PersonaBySlug looks up a persona by its slug, case-insensitively.
func PersonaBySlug(slug string) (Persona, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range personas {
		if p.Slug == slug {
			return p, true
		}
	}
	return Persona{}, false
}
