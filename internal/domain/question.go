package domain

import (
	"fmt"
	"time"
)

// QuestionStatus represents the moderation status of a community question
type QuestionStatus string

const (
	QuestionStatusActive   QuestionStatus = "active"
	QuestionStatusHidden   QuestionStatus = "hidden"
	QuestionStatusResolved QuestionStatus = "resolved"
)

// Question represents a community Q&A post
type Question struct {
	ID         string
	Title      string
	Content    string
	Category   string
	Language   string
	Status     QuestionStatus
	IsUrgent   bool
	Upvotes    int
	Views      int
	Tags       []string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// ValidateQuestion validates a Question instance
func ValidateQuestion(q *Question) error {
	if q == nil {
		return fmt.Errorf("question cannot be nil")
	}
	if q.ID == "" {
		return fmt.Errorf("question ID is required")
	}
	if q.Title == "" {
		return fmt.Errorf("question Title is required")
	}
	if q.Language == "" {
		return fmt.Errorf("question Language is required")
	}
	if !isValidQuestionStatus(q.Status) {
		return fmt.Errorf("question Status is invalid: %s", q.Status)
	}
	return nil
}

func isValidQuestionStatus(s QuestionStatus) bool {
	switch s {
	case QuestionStatusActive, QuestionStatusHidden, QuestionStatusResolved:
		return true
	}
	return false
}
