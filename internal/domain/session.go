package domain

import (
	"time"
)

// TimestampLayout is the ISO-8601 layout used for stored timestamps.
// Fixed-width fractional seconds keep lexical order equal to time order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SessionRecord is one logged question/response exchange.
type SessionRecord struct {
	ID          int64  `json:"id"`
	Timestamp   string `json:"timestamp"`
	PersonaName string `json:"persona_name"`
	Subject     string `json:"subject"`
	ClassLevel  string `json:"class_level"`
	Question    string `json:"question"`
	Response    string `json:"response"`
}

// NewSessionRecord builds a record for an answered question, stamped now.
func NewSessionRecord(p Persona, classLevel, question, response string) *SessionRecord {
	return &SessionRecord{
		Timestamp:   FormatTimestamp(time.Now()),
		PersonaName: p.Name,
		Subject:     p.Subject,
		ClassLevel:  classLevel,
		Question:    question,
		Response:    response,
	}
}

// ProgressRecord is the cumulative session count for one subject.
type ProgressRecord struct {
	Subject      string `json:"subject"`
	SessionCount int    `json:"session_count"`
	LastAccessed string `json:"last_accessed"`
}
