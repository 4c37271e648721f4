package statemachine

import (
	"context"
	"testing"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentFSM_MarkLeft(t *testing.T) {
	student := &models.Student{Status: models.StudentStatusActive}
	fsm := NewEnrollmentFSM(student)

	assert.Equal(t, models.StudentStatusActive, fsm.Current())
	assert.True(t, fsm.Can("mark_left"))

	require.NoError(t, fsm.MarkLeft(context.Background()))
	assert.Equal(t, models.StudentStatusLeft, student.Status)
	assert.Equal(t, models.StudentStatusLeft, fsm.Current())
}

func TestEnrollmentFSM_LeftIsTerminal(t *testing.T) {
	student := &models.Student{Status: models.StudentStatusLeft}
	fsm := NewEnrollmentFSM(student)

	assert.False(t, fsm.Can("mark_left"))
	assert.Error(t, fsm.MarkLeft(context.Background()))
	assert.Equal(t, models.StudentStatusLeft, student.Status)
}
