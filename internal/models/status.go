package models

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var ErrUnknownStatus = errors.New("unknown roadmap status")

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPlanning, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownStatus)
}

func (s Status) Planning() bool   { return s == StatusPlanning }
func (s Status) InProgress() bool { return s == StatusInProgress }
func (s Status) Completed() bool  { return s == StatusCompleted }
