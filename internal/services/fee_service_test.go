package services

import (
	"context"
	"testing"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordPayment_ScholarshipMath(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	studentRepo := &mockStudentRepo{}
	studentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Student, error) {
		return &models.Student{
			ID:                 1,
			MonthlyFee:         5000,
			ScholarshipPercent: 20,
			Status:             models.StudentStatusActive,
		}, nil
	}

	var upserted *models.FeeRecord
	var incoming float64
	feeRepo := &mockFeeRepo{}
	feeRepo.mockUpsertPayment = func(ctx context.Context, record *models.FeeRecord, amount float64) error {
		upserted = record
		incoming = amount
		return nil
	}
	feeRepo.mockFindForPeriod = func(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error) {
		return upserted, nil
	}

	var lastPaidOn *time.Time
	studentRepo.mockUpdateLastFeePaidOn = func(ctx context.Context, id uint, paidOn *time.Time) error {
		lastPaidOn = paidOn
		return nil
	}

	service := NewFeeService(feeRepo, studentRepo)
	service.now = fixedClock(now)

	record, err := service.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID: 1,
		Month:     3,
		Year:      2025,
		Amount:    2500,
		Method:    models.PaymentMethodCash,
	})
	require.NoError(t, err)

	// 20% of 5000 leaves 4000 due
	assert.Equal(t, 4000.0, upserted.AmountDue)
	assert.Equal(t, 1000.0, upserted.ScholarshipAmount)
	assert.Equal(t, 2500.0, upserted.AmountPaid)
	assert.Equal(t, models.FeeStatusPartial, upserted.Status)
	assert.Equal(t, 2500.0, incoming)

	require.NotNil(t, lastPaidOn)
	assert.Equal(t, now, *lastPaidOn)
	assert.Equal(t, upserted, record)
}

func TestRecordPayment_CapsAtDue(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Student, error) {
		return &models.Student{ID: 1, MonthlyFee: 4000, Status: models.StudentStatusActive}, nil
	}

	var upserted *models.FeeRecord
	feeRepo := &mockFeeRepo{}
	feeRepo.mockUpsertPayment = func(ctx context.Context, record *models.FeeRecord, amount float64) error {
		upserted = record
		return nil
	}
	feeRepo.mockFindForPeriod = func(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error) {
		return upserted, nil
	}

	service := NewFeeService(feeRepo, studentRepo)

	_, err := service.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID: 1, Month: 1, Year: 2025, Amount: 9999,
	})
	require.NoError(t, err)

	assert.Equal(t, 4000.0, upserted.AmountPaid)
	assert.Equal(t, models.FeeStatusPaid, upserted.Status)
}

func TestRecordPayment_ScholarshipOverrideClamped(t *testing.T) {
	studentRepo := &mockStudentRepo{}
	studentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Student, error) {
		return &models.Student{ID: 1, MonthlyFee: 3000, Status: models.StudentStatusActive}, nil
	}

	var upserted *models.FeeRecord
	feeRepo := &mockFeeRepo{}
	feeRepo.mockUpsertPayment = func(ctx context.Context, record *models.FeeRecord, amount float64) error {
		upserted = record
		return nil
	}
	feeRepo.mockFindForPeriod = func(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error) {
		return upserted, nil
	}

	service := NewFeeService(feeRepo, studentRepo)

	percent := 150.0
	_, err := service.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID: 1, Month: 1, Year: 2025, Amount: 0, ScholarshipPercent: &percent,
	})
	require.NoError(t, err)

	// percent clamps to 100, so nothing is due and the record is paid
	assert.Equal(t, 100.0, upserted.ScholarshipPercent)
	assert.Equal(t, 0.0, upserted.AmountDue)
	assert.Equal(t, models.FeeStatusPaid, upserted.Status)

	amount := 99999.0
	_, err = service.RecordPayment(context.Background(), RecordPaymentInput{
		StudentID: 1, Month: 2, Year: 2025, Amount: 0, ScholarshipAmount: &amount,
	})
	require.NoError(t, err)

	// amount override clamps to the monthly fee
	assert.Equal(t, 3000.0, upserted.ScholarshipAmount)
	assert.Equal(t, 0.0, upserted.AmountDue)
}

func TestRecordPayment_Validation(t *testing.T) {
	service := NewFeeService(&mockFeeRepo{}, &mockStudentRepo{})

	_, err := service.RecordPayment(context.Background(), RecordPaymentInput{StudentID: 1, Month: 13, Year: 2025, Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = service.RecordPayment(context.Background(), RecordPaymentInput{StudentID: 1, Month: 5, Year: 2025, Amount: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// default mock returns record-not-found for any student
	_, err = service.RecordPayment(context.Background(), RecordPaymentInput{StudentID: 42, Month: 5, Year: 2025, Amount: 100})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecord_RederivesLastPaidOn(t *testing.T) {
	earlier := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	feeRepo := &mockFeeRepo{}
	feeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.FeeRecord, error) {
		return &models.FeeRecord{ID: id, StudentID: 7}, nil
	}
	deleted := false
	feeRepo.mockDelete = func(ctx context.Context, id uint) error {
		deleted = true
		return nil
	}
	feeRepo.mockLatestPaidOn = func(ctx context.Context, studentID uint) (*time.Time, error) {
		return &earlier, nil
	}

	var lastPaidOn *time.Time
	updateCalled := false
	studentRepo := &mockStudentRepo{}
	studentRepo.mockUpdateLastFeePaidOn = func(ctx context.Context, id uint, paidOn *time.Time) error {
		updateCalled = true
		lastPaidOn = paidOn
		return nil
	}

	service := NewFeeService(feeRepo, studentRepo)

	require.NoError(t, service.DeleteRecord(context.Background(), 3))
	assert.True(t, deleted)
	assert.True(t, updateCalled)
	require.NotNil(t, lastPaidOn)
	assert.Equal(t, earlier, *lastPaidOn)
}

func TestDeleteRecord_NoHistoryClearsMarker(t *testing.T) {
	feeRepo := &mockFeeRepo{}
	feeRepo.mockFindByID = func(ctx context.Context, id uint) (*models.FeeRecord, error) {
		return &models.FeeRecord{ID: id, StudentID: 7}, nil
	}

	var lastPaidOn *time.Time
	updateCalled := false
	studentRepo := &mockStudentRepo{}
	studentRepo.mockUpdateLastFeePaidOn = func(ctx context.Context, id uint, paidOn *time.Time) error {
		updateCalled = true
		lastPaidOn = paidOn
		return nil
	}

	service := NewFeeService(feeRepo, studentRepo)

	require.NoError(t, service.DeleteRecord(context.Background(), 3))
	assert.True(t, updateCalled)
	assert.Nil(t, lastPaidOn)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	service := NewFeeService(&mockFeeRepo{}, &mockStudentRepo{})
	err := service.DeleteRecord(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeeSummary_SumsBreakdown(t *testing.T) {
	feeRepo := &mockFeeRepo{}
	feeRepo.mockMonthlyTotals = func(ctx context.Context) ([]models.FeePeriodTotal, error) {
		return []models.FeePeriodTotal{
			{Year: 2025, Month: 2, Collected: 12000, Outstanding: 3000},
			{Year: 2025, Month: 1, Collected: 10000, Outstanding: 5000},
		}, nil
	}

	service := NewFeeService(feeRepo, &mockStudentRepo{})

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22000.0, summary.Overall.Collected)
	assert.Equal(t, 8000.0, summary.Overall.Outstanding)
	assert.Len(t, summary.Breakdown, 2)
}
