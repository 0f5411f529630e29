package model

import "time"

// Run is one execution of a stored command, kept in the history database.
type Run struct {
	ID        int64
	Name      string
	Cmd       string
	ExitCode  int
	StartedAt time.Time
	Duration  time.Duration
}
