package repository

import (
	"context"
	"time"

	"github.com/aqeelraza/maktab-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeeRepository defines the interface for fee ledger data access
type FeeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.FeeRecord, error)
	FindForPeriod(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error)
	UpsertPayment(ctx context.Context, record *models.FeeRecord, incoming float64) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.FeeRecord, int64, error)
	FindByStudent(ctx context.Context, studentID uint) ([]models.FeeRecord, error)
	FindAllForPeriod(ctx context.Context, month, year int) ([]models.FeeRecord, error)
	FindOutstanding(ctx context.Context) ([]models.FeeRecord, error)
	LatestPaidOn(ctx context.Context, studentID uint) (*time.Time, error)
	Totals(ctx context.Context, month, year *int) (collected, outstanding float64, err error)
	MonthlyTotals(ctx context.Context) ([]models.FeePeriodTotal, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) FindByID(ctx context.Context, id uint) (*models.FeeRecord, error) {
	var record models.FeeRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *feeRepository) FindForPeriod(ctx context.Context, studentID uint, month, year int) (*models.FeeRecord, error) {
	var record models.FeeRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ? AND month = ? AND year = ?", studentID, month, year).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertPayment applies a payment to the (student, month, year) ledger slot
// in a single conditional write. The insert arm carries the precomputed
// first-payment amounts; the conflict arm recomputes amount_paid additively,
// capped at the due amount, and re-derives status in SQL so two concurrent
// payments can neither create a second row nor lose an increment.
func (r *feeRepository) UpsertPayment(ctx context.Context, record *models.FeeRecord, incoming float64) error {
	capped := "LEAST(EXCLUDED.amount_due, fee_records.amount_paid + ?)"

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount_due":  gorm.Expr("EXCLUDED.amount_due"),
			"amount_paid": gorm.Expr(capped, incoming),
			"status": gorm.Expr(
				"CASE WHEN "+capped+" >= EXCLUDED.amount_due THEN 'paid'"+
					" WHEN "+capped+" > 0 THEN 'partial'"+
					" ELSE 'pending' END", incoming, incoming),
			"admission_fee_portion": record.AdmissionFeePortion,
			"scholarship_percent":   record.ScholarshipPercent,
			"scholarship_amount":    record.ScholarshipAmount,
			"paid_on":               record.PaidOn,
			"method":                record.Method,
			"remarks":               record.Remarks,
			"slip_number":           record.SlipNumber,
			"updated_at":            gorm.Expr("NOW()"),
		}),
	}).Create(record).Error
}

func (r *feeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FeeRecord{}, id).Error
}

func (r *feeRepository) List(ctx context.Context, query *ListQuery) ([]models.FeeRecord, int64, error) {
	var records []models.FeeRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FeeRecord{})

	if month := query.Filters["month"]; month != "" {
		db = db.Where("fee_records.month = ?", month)
	}
	if year := query.Filters["year"]; year != "" {
		db = db.Where("fee_records.year = ?", year)
	}
	if studentID := query.Filters["student_id"]; studentID != "" {
		db = db.Where("fee_records.student_id = ?", studentID)
	}
	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Joins("JOIN students ON students.id = fee_records.student_id").
			Where("fee_records.slip_number ILIKE ? OR students.name ILIKE ? OR students.admission_no ILIKE ?",
				term, term, term)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Preload("Student").Order("fee_records.paid_on DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&records).Error
	return records, total, err
}

func (r *feeRepository) FindByStudent(ctx context.Context, studentID uint) ([]models.FeeRecord, error) {
	var records []models.FeeRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("year DESC, month DESC").
		Find(&records).Error
	return records, err
}

func (r *feeRepository) FindAllForPeriod(ctx context.Context, month, year int) ([]models.FeeRecord, error) {
	var records []models.FeeRecord
	err := r.db.WithContext(ctx).
		Where("month = ? AND year = ?", month, year).
		Find(&records).Error
	return records, err
}

// FindOutstanding returns every ledger row still owing, student preloaded.
// Used by the all-periods outstanding report, which has no unbilled fallback.
func (r *feeRepository) FindOutstanding(ctx context.Context) ([]models.FeeRecord, error) {
	var records []models.FeeRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("amount_due > amount_paid").
		Find(&records).Error
	return records, err
}

func (r *feeRepository) LatestPaidOn(ctx context.Context, studentID uint) (*time.Time, error) {
	var record models.FeeRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND paid_on IS NOT NULL", studentID).
		Order("paid_on DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return record.PaidOn, nil
}

// Totals sums collected and outstanding over matching records. Outstanding
// is clamped per record so an overpaid row can never offset another row.
func (r *feeRepository) Totals(ctx context.Context, month, year *int) (float64, float64, error) {
	var result struct {
		Collected   float64
		Outstanding float64
	}

	db := r.db.WithContext(ctx).
		Model(&models.FeeRecord{}).
		Select("COALESCE(SUM(amount_paid), 0) AS collected, COALESCE(SUM(GREATEST(amount_due - amount_paid, 0)), 0) AS outstanding")
	if month != nil {
		db = db.Where("month = ?", *month)
	}
	if year != nil {
		db = db.Where("year = ?", *year)
	}

	err := db.Scan(&result).Error
	return result.Collected, result.Outstanding, err
}

func (r *feeRepository) MonthlyTotals(ctx context.Context) ([]models.FeePeriodTotal, error) {
	var totals []models.FeePeriodTotal
	err := r.db.WithContext(ctx).
		Model(&models.FeeRecord{}).
		Select("year, month, COALESCE(SUM(amount_paid), 0) AS collected, COALESCE(SUM(GREATEST(amount_due - amount_paid, 0)), 0) AS outstanding").
		Group("year, month").
		Order("year DESC, month DESC").
		Scan(&totals).Error
	return totals, err
}
