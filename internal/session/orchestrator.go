// Package session drives the interactive tutoring loop.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/ashureev/learnzverse/internal/preferences"
	"github.com/ashureev/learnzverse/internal/shared"
	"github.com/ashureev/learnzverse/internal/store"
	"github.com/ashureev/learnzverse/internal/transcript"
	"github.com/ashureev/learnzverse/internal/tutor"
)

// State is the orchestrator's position in the menu/session loop.
type State int

const (
	// StateMenu shows the tutor menu and waits for a choice.
	StateMenu State = iota
	// StateInSession answers questions for the selected tutor.
	StateInSession
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateInSession:
		return "in_session"
	default:
		return "unknown"
	}
}

// HistoryLimit is how many sessions the "h" command shows.
const HistoryLimit = 5

// NewInput contains parameters for creating an Orchestrator.
type NewInput struct {
	Repo       store.Repository
	Tutor      *tutor.Service
	Prefs      *preferences.Store
	Transcript *transcript.Logger
	Logger     *slog.Logger
	In         io.Reader
	Out        io.Writer
}

// Orchestrator runs the interactive loop over a reader and a writer.
type Orchestrator struct {
	repo       store.Repository
	tutor      *tutor.Service
	prefs      *preferences.Store
	transcript *transcript.Logger
	logger     *slog.Logger

	in    *bufio.Scanner
	out   io.Writer
	theme Theme

	state      State
	persona    domain.Persona
	classLevel string
}

// New creates an Orchestrator in the menu state.
func New(input NewInput) *Orchestrator {
	logger := input.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		repo:       input.Repo,
		tutor:      input.Tutor,
		prefs:      input.Prefs,
		transcript: input.Transcript,
		logger:     logger,

		in:    bufio.NewScanner(input.In),
		out:   input.Out,
		theme: NewTheme(input.Out, input.Prefs.Get().DarkMode),

		state: StateMenu,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run loops until the user quits, input ends or ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.println(o.theme.Title.Render("🎓 Welcome to Learnzverse, your personal AI tutors"))

	for {
		if err := ctx.Err(); err != nil {
			o.println(o.theme.Muted.Render("Session interrupted. Goodbye!"))
			return nil
		}

		var done bool
		switch o.state {
		case StateMenu:
			done = o.menuStep(ctx)
		case StateInSession:
			done = o.sessionStep(ctx)
		}

		if done {
			o.println(o.theme.Muted.Render("Goodbye! Keep learning. 👋"))
			return nil
		}
	}
}

func (o *Orchestrator) menuStep(ctx context.Context) bool {
	o.printMenu()

	line, ok := o.readLine("Choose an option: ")
	if !ok {
		return true
	}

	choice := strings.ToLower(strings.TrimSpace(line))
	switch choice {
	case "q":
		return true
	case "h":
		o.showHistory(ctx)
		return false
	case "s":
		return o.settings()
	}

	p, found := domain.PersonaByKey(choice)
	if !found {
		o.println(o.theme.Error.Render(fmt.Sprintf("Invalid choice %q. Pick 1-4, h, s or q.", line)))
		return false
	}
	return o.startSession(p)
}

func (o *Orchestrator) printMenu() {
	prefs := o.prefs.Get()

	o.println("")
	o.println(o.theme.Title.Render("Choose your tutor:"))
	for _, p := range domain.Personas() {
		line := fmt.Sprintf("  %s. %s %s (%s)", p.Key, p.Avatar, p.Name, p.Subject)
		if p.Slug == prefs.PreferredPersona {
			line += " ★"
		}
		o.println(line)
	}
	o.println("  h. View recent sessions")
	o.println("  s. Settings")
	o.println("  q. Quit")
}

func (o *Orchestrator) startSession(p domain.Persona) bool {
	prefs := o.prefs.Get()

	line, ok := o.readLine(fmt.Sprintf("Enter your class level [%s]: ", prefs.ClassLevel))
	if !ok {
		return true
	}
	level := strings.TrimSpace(line)
	if level == "" {
		level = prefs.ClassLevel
	}

	if err := o.prefs.Update(func(pr *domain.Preferences) {
		pr.ClassLevel = level
		pr.PreferredPersona = p.Slug
	}); err != nil {
		o.logger.Warn("failed to save preferences", "error", err)
	}

	o.persona = p
	o.classLevel = level
	o.state = StateInSession

	o.println("")
	o.println(o.theme.Tutor.Render(fmt.Sprintf("%s %s is ready to help with %s (Class %s).", p.Avatar, p.Name, p.Subject, level)))
	o.println(o.theme.Muted.Render("Ask a question, or type 'back' to return to the menu."))
	return false
}

func (o *Orchestrator) sessionStep(ctx context.Context) bool {
	o.println("")
	line, ok := o.readLine("❓ Your question: ")
	if !ok {
		return true
	}

	question := strings.TrimSpace(line)
	if question == "" {
		return false
	}
	if strings.EqualFold(question, "back") {
		o.state = StateMenu
		return false
	}

	o.answer(ctx, question)
	return false
}

func (o *Orchestrator) answer(ctx context.Context, question string) {
	p, level := o.persona, o.classLevel

	o.transcript.Log(transcript.Event{
		Channel:    "cli",
		EventType:  transcript.EventQuestion,
		Persona:    p.Name,
		Subject:    p.Subject,
		ClassLevel: level,
		Content:    question,
	})

	ans := o.tutor.Ask(p, level, question)
	o.printAnswer(ans)

	o.transcript.Log(transcript.Event{
		Channel:    "cli",
		EventType:  transcript.EventResponse,
		Persona:    p.Name,
		Subject:    p.Subject,
		ClassLevel: level,
		Content:    ans.Text,
		Meta:       map[string]any{"cached": ans.Cached},
	})

	rec := domain.NewSessionRecord(p, level, question, ans.Text)
	if err := o.repo.SaveSession(ctx, rec); err != nil {
		o.logger.Error("failed to save session", "subject", p.Subject, "error", err)
		o.println(o.theme.Warn.Render("⚠️  " + shared.SaveFailureNotice(err)))
		return
	}
	o.logger.Debug("session saved", "id", rec.ID, "subject", p.Subject, "cached", ans.Cached)
}

var sectionTitles = map[string]bool{
	"📘 Concept":      true,
	"🪜 Step-by-step": true,
	"💡 Example":      true,
}

func (o *Orchestrator) printAnswer(ans tutor.Answer) {
	o.println("")
	lines := strings.Split(strings.TrimRight(ans.Text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			o.println(o.theme.Tutor.Render(line))
		case sectionTitles[line]:
			o.println(o.theme.Section.Render(line))
		default:
			o.println(line)
		}
	}
	if ans.Cached {
		o.println(o.theme.Muted.Render("(from cache)"))
	}
}

func (o *Orchestrator) showHistory(ctx context.Context) {
	sessions, err := o.repo.RecentSessions(ctx, HistoryLimit)
	if err != nil {
		o.logger.Error("failed to load history", "error", err)
		o.println(o.theme.Error.Render("Could not load history: storage is unavailable."))
		return
	}

	o.println("")
	o.println(o.theme.Title.Render("📜 Recent sessions"))
	if len(sessions) == 0 {
		o.println(o.theme.Muted.Render("No sessions yet. Pick a tutor and ask a question!"))
		return
	}
	for _, s := range sessions {
		o.println(fmt.Sprintf("  [%s] %s, %s (Class %s): %s", s.Timestamp, s.PersonaName, s.Subject, s.ClassLevel, truncate(s.Question, 60)))
	}

	progress, err := o.repo.ListProgress(ctx)
	if err != nil {
		o.logger.Error("failed to load progress", "error", err)
		return
	}
	o.println("")
	o.println(o.theme.Title.Render("📈 Progress"))
	for _, p := range progress {
		o.println(fmt.Sprintf("  %s: %d session(s), last on %s", p.Subject, p.SessionCount, p.LastAccessed))
	}
}

func (o *Orchestrator) settings() bool {
	prefs := o.prefs.Get()

	preferred := "none"
	if p, ok := domain.PersonaBySlug(prefs.PreferredPersona); ok {
		preferred = p.Avatar + " " + p.Name
	}
	dark := "off"
	if prefs.DarkMode {
		dark = "on"
	}

	o.println("")
	o.println(o.theme.Title.Render("⚙️  Settings"))
	o.println(fmt.Sprintf("  Class level:     %s", prefs.ClassLevel))
	o.println(fmt.Sprintf("  Preferred tutor: %s", preferred))
	o.println(fmt.Sprintf("  Dark mode:       %s", dark))

	line, ok := o.readLine("Toggle dark mode? (y/N): ")
	if !ok {
		return true
	}
	if !strings.EqualFold(strings.TrimSpace(line), "y") {
		return false
	}

	if err := o.prefs.Update(func(pr *domain.Preferences) {
		pr.DarkMode = !pr.DarkMode
	}); err != nil {
		o.logger.Warn("failed to save preferences", "error", err)
	}
	o.theme = NewTheme(o.out, o.prefs.Get().DarkMode)
	o.println(o.theme.OK.Render("Dark mode updated."))
	return false
}

func (o *Orchestrator) readLine(prompt string) (string, bool) {
	fmt.Fprint(o.out, o.theme.Prompt.Render(prompt))
	if !o.in.Scan() {
		if err := o.in.Err(); err != nil {
			o.logger.Warn("failed to read input", "error", err)
		}
		o.println("")
		return "", false
	}
	return o.in.Text(), true
}

func (o *Orchestrator) println(s string) {
	fmt.Fprintln(o.out, s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
