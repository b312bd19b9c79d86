package inmemdb

import (
	"sync"

	"github.com/trezcool/admitcrm/core/student"
)

type (
	DB struct {
		student *studentTable
	}

	studentTable struct {
		sync.RWMutex
		rows           []student.Student // seeded order
		index          map[string]int    // {id: row}
		interactions   map[string][]student.Interaction
		communications map[string][]student.Communication
		notes          map[string][]student.Note
		tasks          map[string][]student.Task
	}
)

// Open loads snap into a new in-memory database. The snapshot is copied.
func Open(snap Snapshot) (*DB, error) {
	tbl := &studentTable{
		rows:           make([]student.Student, len(snap.Students)),
		index:          make(map[string]int, len(snap.Students)),
		interactions:   make(map[string][]student.Interaction, len(snap.Interactions)),
		communications: make(map[string][]student.Communication, len(snap.Communications)),
		notes:          make(map[string][]student.Note, len(snap.Notes)),
		tasks:          make(map[string][]student.Task, len(snap.Tasks)),
	}
	copy(tbl.rows, snap.Students)
	for i, s := range tbl.rows {
		tbl.index[s.ID] = i
	}
	for id, rows := range snap.Interactions {
		tbl.interactions[id] = append([]student.Interaction(nil), rows...)
	}
	for id, rows := range snap.Communications {
		tbl.communications[id] = append([]student.Communication(nil), rows...)
	}
	for id, rows := range snap.Notes {
		tbl.notes[id] = append([]student.Note(nil), rows...)
	}
	for id, rows := range snap.Tasks {
		tbl.tasks[id] = append([]student.Task(nil), rows...)
	}
	return &DB{student: tbl}, nil
}

// Snapshot returns a copy of the whole database.
func (db *DB) Snapshot() Snapshot {
	tbl := db.student
	tbl.RLock()
	defer tbl.RUnlock()

	snap := Snapshot{
		Students:       append([]student.Student(nil), tbl.rows...),
		Interactions:   make(map[string][]student.Interaction, len(tbl.interactions)),
		Communications: make(map[string][]student.Communication, len(tbl.communications)),
		Notes:          make(map[string][]student.Note, len(tbl.notes)),
		Tasks:          make(map[string][]student.Task, len(tbl.tasks)),
	}
	for id, rows := range tbl.interactions {
		snap.Interactions[id] = append([]student.Interaction(nil), rows...)
	}
	for id, rows := range tbl.communications {
		snap.Communications[id] = append([]student.Communication(nil), rows...)
	}
	for id, rows := range tbl.notes {
		snap.Notes[id] = append([]student.Note(nil), rows...)
	}
	for id, rows := range tbl.tasks {
		snap.Tasks[id] = append([]student.Task(nil), rows...)
	}
	return snap
}
