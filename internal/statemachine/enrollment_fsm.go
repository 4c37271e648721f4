package statemachine

import (
	"context"
	"fmt"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/looplab/fsm"
)

// EnrollmentFSM wraps a student with their enrollment state machine.
// "left" is terminal; there is no re-admission transition, a returning
// student gets a fresh admission.
type EnrollmentFSM struct {
	student *models.Student
	fsm     *fsm.FSM
}

// NewEnrollmentFSM creates a new enrollment state machine
func NewEnrollmentFSM(student *models.Student) *EnrollmentFSM {
	efsm := &EnrollmentFSM{
		student: student,
	}

	efsm.fsm = fsm.NewFSM(
		student.Status,
		fsm.Events{
			// active → left
			{Name: "mark_left", Src: []string{models.StudentStatusActive}, Dst: models.StudentStatusLeft},
		},
		fsm.Callbacks{},
	)

	return efsm
}

// MarkLeft transitions the student to left state
func (e *EnrollmentFSM) MarkLeft(ctx context.Context) error {
	if !e.student.MayMarkLeft() {
		return fmt.Errorf("student cannot be marked left in current state: %s", e.student.Status)
	}

	if err := e.fsm.Event(ctx, "mark_left"); err != nil {
		return fmt.Errorf("failed to mark student left: %w", err)
	}

	e.student.Status = e.fsm.Current()
	return nil
}

// Current returns the current state
func (e *EnrollmentFSM) Current() string {
	return e.fsm.Current()
}

// Can checks if a transition is possible
func (e *EnrollmentFSM) Can(event string) bool {
	return e.fsm.Can(event)
}
