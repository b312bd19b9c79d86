package student

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// TimelineSize is the number of interactions shown on the profile timeline.
const TimelineSize = 10

type Profile struct {
	Student        Student         `json:"student"`
	Interactions   []Interaction   `json:"interactions"`
	Timeline       []Interaction   `json:"timeline"` // first TimelineSize interactions
	Communications []Communication `json:"communications"`
	Notes          []Note          `json:"notes"`
	Tasks          []Task          `json:"tasks"`
	LastActiveAgo  string          `json:"last_active_ago"`
}

// LoadProfile assembles everything known about a student. Child collections are only
// queried once the student is known to exist; ErrNotFound is returned as-is.
func LoadProfile(ctx context.Context, repo Repository, id string, now time.Time) (Profile, error) {
	s, err := repo.GetStudentByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	interactions, err := repo.QueryInteractions(ctx, id)
	if err != nil {
		return Profile{}, errors.Wrap(err, "querying interactions")
	}
	comms, err := repo.QueryCommunications(ctx, id)
	if err != nil {
		return Profile{}, errors.Wrap(err, "querying communications")
	}
	notes, err := repo.QueryNotes(ctx, id)
	if err != nil {
		return Profile{}, errors.Wrap(err, "querying notes")
	}
	tasks, err := repo.QueryTasks(ctx, id)
	if err != nil {
		return Profile{}, errors.Wrap(err, "querying tasks")
	}

	n := len(interactions)
	if n > TimelineSize {
		n = TimelineSize
	}
	timeline := make([]Interaction, n)
	copy(timeline, interactions)

	return Profile{
		Student:        s,
		Interactions:   interactions,
		Timeline:       timeline,
		Communications: comms,
		Notes:          notes,
		Tasks:          tasks,
		LastActiveAgo:  humanize.RelTime(s.LastActive, now, "ago", "from now"),
	}, nil
}
