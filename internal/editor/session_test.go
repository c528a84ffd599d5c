package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThamannaGM/Assignment-Tracker/internal/assignment"
	"github.com/ThamannaGM/Assignment-Tracker/internal/config"
	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
	"github.com/ThamannaGM/Assignment-Tracker/internal/subject"
)

func fixture(t *testing.T) (*Controller, model.AssignmentID) {
	t.Helper()

	subjects := subject.NewMemoryRepo(config.DefaultPalette)
	_, err := subjects.Create("Math", "#B58463")
	require.NoError(t, err)
	_, err = subjects.Create("History", "#845C66")
	require.NoError(t, err)

	repo := assignment.NewMemoryRepo(subjects)
	res, err := repo.Create(assignment.CreateInput{
		Subject: "Math",
		Name:    "Problem set 1",
		DueDate: "2026-04-01",
	})
	require.NoError(t, err)

	return NewController(repo), res.Assignment.ID
}

func TestParseField(t *testing.T) {
	for _, s := range []string{"name", "dueDate", "status", "subject"} {
		_, ok := ParseField(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseField("color")
	assert.False(t, ok)

	assert.True(t, FieldStatus.Enumerated())
	assert.True(t, FieldSubject.Enumerated())
	assert.False(t, FieldName.Enumerated())
	assert.False(t, FieldDueDate.Enumerated())
}

func TestBeginRejectsSecondSession(t *testing.T) {
	ctrl, id := fixture(t)

	_, err := ctrl.Begin(id, FieldName)
	require.NoError(t, err)

	_, err = ctrl.Begin(id, FieldName)
	assert.ErrorIs(t, err, ErrEditing)

	// A different field of the same record is fine.
	_, err = ctrl.Begin(id, FieldDueDate)
	assert.NoError(t, err)
}

func TestBeginUnknownAssignment(t *testing.T) {
	ctrl, _ := fixture(t)
	_, err := ctrl.Begin("asg_nope", FieldName)
	assert.ErrorIs(t, err, assignment.ErrNotFound)
}

func TestCommitAppliesAndCloses(t *testing.T) {
	ctrl, id := fixture(t)

	_, err := ctrl.Begin(id, FieldName)
	require.NoError(t, err)

	res, err := ctrl.Commit(id, FieldName, "Problem set 1 (revised)")
	require.NoError(t, err)
	assert.Equal(t, "Problem set 1 (revised)", res.Assignment.Name)

	// Session is closed: committing again needs a fresh Begin.
	_, err = ctrl.Commit(id, FieldName, "x")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = ctrl.Begin(id, FieldName)
	assert.NoError(t, err)
}

func TestCommitBlankKeepsPrevious(t *testing.T) {
	ctrl, id := fixture(t)

	_, err := ctrl.Begin(id, FieldName)
	require.NoError(t, err)

	res, err := ctrl.Commit(id, FieldName, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Problem set 1", res.Assignment.Name)
}

func TestCommitStatusCompletedSignals(t *testing.T) {
	ctrl, id := fixture(t)

	_, err := ctrl.Begin(id, FieldStatus)
	require.NoError(t, err)

	res, err := ctrl.Commit(id, FieldStatus, "Completed")
	require.NoError(t, err)
	assert.True(t, res.BecameCompleted)
	assert.Equal(t, model.StatusCompleted, res.Assignment.Status)
}

func TestCommitSubjectReassignRecolors(t *testing.T) {
	ctrl, id := fixture(t)

	_, err := ctrl.Begin(id, FieldSubject)
	require.NoError(t, err)

	res, err := ctrl.Commit(id, FieldSubject, "History")
	require.NoError(t, err)
	assert.Equal(t, "History", res.Assignment.Subject)
	assert.Equal(t, "#845C66", res.Assignment.Color)
}

func TestCommitFailureStillClosesSession(t *testing.T) {
	ctrl, id := fixture(t)

	_, err := ctrl.Begin(id, FieldSubject)
	require.NoError(t, err)

	_, err = ctrl.Commit(id, FieldSubject, "Chemistry")
	assert.ErrorIs(t, err, assignment.ErrUnknownSubject)

	// Even a failed commit releases the key.
	_, err = ctrl.Begin(id, FieldSubject)
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	ctrl, id := fixture(t)

	assert.ErrorIs(t, ctrl.Cancel(id, FieldName), ErrNoSession)

	_, err := ctrl.Begin(id, FieldName)
	require.NoError(t, err)
	require.NoError(t, ctrl.Cancel(id, FieldName))

	_, err = ctrl.Commit(id, FieldName, "x")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, ctrl.Open())
}
