package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrMenuNotFound           = errors.New("no menu saved for today")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrEmptyQuery             = errors.New("search query is required")
)

// ValidationError maps an input field to the message shown for it.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, e[field])
	}
	return strings.Join(messages, ". ")
}
