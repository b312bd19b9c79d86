package inmemdb

import (
	"context"

	"github.com/trezcool/admitcrm/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, len(repo.db.rows))
	copy(students, repo.db.rows)
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i, ok := repo.db.index[id]; ok {
		return repo.db.rows[i], nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryInteractions(ctx context.Context, studentID string) ([]student.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]student.Interaction, 0, len(repo.db.interactions[studentID])), repo.db.interactions[studentID]...), nil
}

func (repo *studentRepository) QueryCommunications(ctx context.Context, studentID string) ([]student.Communication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]student.Communication, 0, len(repo.db.communications[studentID])), repo.db.communications[studentID]...), nil
}

func (repo *studentRepository) QueryNotes(ctx context.Context, studentID string) ([]student.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]student.Note, 0, len(repo.db.notes[studentID])), repo.db.notes[studentID]...), nil
}

func (repo *studentRepository) QueryTasks(ctx context.Context, studentID string) ([]student.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]student.Task, 0, len(repo.db.tasks[studentID])), repo.db.tasks[studentID]...), nil
}
