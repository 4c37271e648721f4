package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"gorm.io/gorm"
)

// FeeService is the fee ledger engine: it computes what a student owes for
// a billing period net of scholarship, applies payments additively and
// capped, and keeps the student's lastFeePaidOn marker in sync.
type FeeService struct {
	repo        repository.FeeRepository
	studentRepo repository.StudentRepository

	// injectable clock so period-boundary behavior is testable
	now func() time.Time
}

// NewFeeService creates a new fee service
func NewFeeService(repo repository.FeeRepository, studentRepo repository.StudentRepository) *FeeService {
	return &FeeService{
		repo:        repo,
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// RecordPaymentInput carries one fee payment request
type RecordPaymentInput struct {
	StudentID           uint
	Month               int
	Year                int
	Amount              float64
	Method              string
	ScholarshipPercent  *float64
	ScholarshipAmount   *float64
	AdmissionFeePortion *float64
	Remarks             *string
}

// RecordPayment applies a payment to the (student, month, year) ledger slot.
// Payments are additive and capped at the due amount; the first payment for
// a period creates the record, later ones update it through the same
// conditional write, so a concurrent duplicate never produces two rows.
func (s *FeeService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.FeeRecord, error) {
	if input.StudentID == 0 {
		return nil, fmt.Errorf("%w: student id is required", ErrInvalidArgument)
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidArgument)
	}
	if input.Year < 2000 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidArgument, input.Year)
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalidArgument)
	}

	student, err := s.studentRepo.FindByID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %d", ErrNotFound, input.StudentID)
		}
		return nil, err
	}

	percent := student.ScholarshipPercent
	if input.ScholarshipPercent != nil {
		percent = *input.ScholarshipPercent
	}
	percent = clamp(percent, 0, 100)

	scholarshipAmount := student.MonthlyFee * percent / 100
	if input.ScholarshipAmount != nil {
		scholarshipAmount = clamp(*input.ScholarshipAmount, 0, student.MonthlyFee)
	}

	amountDue := student.MonthlyFee - scholarshipAmount
	if amountDue < 0 {
		amountDue = 0
	}

	now := s.now()
	firstPaid := input.Amount
	if firstPaid > amountDue {
		firstPaid = amountDue
	}

	record := &models.FeeRecord{
		StudentID:           student.ID,
		Month:               input.Month,
		Year:                input.Year,
		AmountDue:           amountDue,
		AmountPaid:          firstPaid,
		AdmissionFeePortion: input.AdmissionFeePortion,
		ScholarshipPercent:  percent,
		ScholarshipAmount:   scholarshipAmount,
		Status:              models.DeriveFeeStatus(firstPaid, amountDue),
		PaidOn:              &now,
		Method:              input.Method,
		SlipNumber:          GenerateSlipNumber(SlipPrefixFee, now),
		Remarks:             input.Remarks,
	}

	if err := s.repo.UpsertPayment(ctx, record, input.Amount); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	// The conflict arm recomputes amounts in SQL; re-read the winning row
	// so the caller sees the authoritative state.
	record, err = s.repo.FindForPeriod(ctx, student.ID, input.Month, input.Year)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.UpdateLastFeePaidOn(ctx, student.ID, &now); err != nil {
		return nil, fmt.Errorf("update last fee paid on: %w", err)
	}

	return record, nil
}

// DeleteRecord removes a ledger entry and re-derives the student's
// lastFeePaidOn from the remaining history (nil when none remains).
func (s *FeeService) DeleteRecord(ctx context.Context, id uint) error {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: fee record %d", ErrNotFound, id)
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	latest, err := s.repo.LatestPaidOn(ctx, record.StudentID)
	if err != nil {
		return err
	}
	return s.studentRepo.UpdateLastFeePaidOn(ctx, record.StudentID, latest)
}

func (s *FeeService) FindByID(ctx context.Context, id uint) (*models.FeeRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: fee record %d", ErrNotFound, id)
		}
		return nil, err
	}
	return record, nil
}

func (s *FeeService) List(ctx context.Context, query *repository.ListQuery) ([]models.FeeRecord, int64, error) {
	return s.repo.List(ctx, query)
}

// Summary returns the overall collected/outstanding totals plus the
// per-month breakdown, newest period first.
func (s *FeeService) Summary(ctx context.Context) (*models.FeeSummary, error) {
	breakdown, err := s.repo.MonthlyTotals(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.FeeSummary{Breakdown: breakdown}
	for _, row := range breakdown {
		summary.Overall.Collected += row.Collected
		summary.Overall.Outstanding += row.Outstanding
	}
	return summary, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
