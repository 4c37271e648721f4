package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/aqeelraza/maktab-api/internal/models"
	"github.com/aqeelraza/maktab-api/internal/repository"
)

// ReportService builds the classwise outstanding and unpaid reports.
// For a specific period an active student with no ledger row counts as
// owing the full monthly fee; the row simply has not been billed yet.
// Across all periods only actual ledger rows count, since there is no
// single fee to fall back to.
type ReportService struct {
	studentRepo repository.StudentRepository
	feeRepo     repository.FeeRepository
}

// NewReportService creates a new report service
func NewReportService(studentRepo repository.StudentRepository, feeRepo repository.FeeRepository) *ReportService {
	return &ReportService{
		studentRepo: studentRepo,
		feeRepo:     feeRepo,
	}
}

// OutstandingForPeriod builds the classwise outstanding report. Month and
// year select a single period; both nil means all periods. classGroup and
// className narrow the student set when non-empty.
func (s *ReportService) OutstandingForPeriod(ctx context.Context, month, year *int, classGroup, className string) (*models.OutstandingReport, error) {
	if (month == nil) != (year == nil) {
		return nil, fmt.Errorf("%w: month and year must be given together", ErrInvalidArgument)
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidArgument)
	}

	var rows []models.OutstandingStudent
	var err error
	if month != nil {
		rows, err = s.periodOutstanding(ctx, *month, *year, classGroup, className)
	} else {
		rows, err = s.ledgerOutstanding(ctx, classGroup, className)
	}
	if err != nil {
		return nil, err
	}

	report := &models.OutstandingReport{
		Month:  month,
		Year:   year,
		Groups: groupOutstanding(rows),
	}
	for _, row := range rows {
		report.Totals.OutstandingStudents++
		report.Totals.OutstandingAmount += row.Outstanding
	}
	return report, nil
}

// periodOutstanding walks every active student for one period. Students
// with a ledger row contribute its remaining balance; students without
// one owe the full monthly fee.
func (s *ReportService) periodOutstanding(ctx context.Context, month, year int, classGroup, className string) ([]models.OutstandingStudent, error) {
	students, err := s.studentRepo.FindActive(ctx, classGroup, className)
	if err != nil {
		return nil, err
	}

	records, err := s.feeRepo.FindAllForPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uint]*models.FeeRecord, len(records))
	for i := range records {
		byStudent[records[i].StudentID] = &records[i]
	}

	var rows []models.OutstandingStudent
	for _, student := range students {
		outstanding := student.MonthlyFee
		if record, ok := byStudent[student.ID]; ok {
			outstanding = record.Outstanding()
		}
		if outstanding <= 0 {
			continue
		}
		rows = append(rows, models.OutstandingStudent{
			StudentID:   student.ID,
			AdmissionNo: student.AdmissionNo,
			Name:        student.Name,
			ClassGroup:  student.ClassGroup,
			ClassName:   student.ClassName,
			Month:       month,
			Year:        year,
			MonthlyFee:  student.MonthlyFee,
			Outstanding: outstanding,
		})
	}
	return rows, nil
}

// ledgerOutstanding sums every owing ledger row per active student
func (s *ReportService) ledgerOutstanding(ctx context.Context, classGroup, className string) ([]models.OutstandingStudent, error) {
	records, err := s.feeRepo.FindOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint]*models.OutstandingStudent)
	var order []uint
	for i := range records {
		student := records[i].Student
		if !student.IsActive() {
			continue
		}
		if classGroup != "" && student.ClassGroup != classGroup {
			continue
		}
		if className != "" && student.ClassName != className {
			continue
		}

		row, ok := byStudent[student.ID]
		if !ok {
			row = &models.OutstandingStudent{
				StudentID:   student.ID,
				AdmissionNo: student.AdmissionNo,
				Name:        student.Name,
				ClassGroup:  student.ClassGroup,
				ClassName:   student.ClassName,
				MonthlyFee:  student.MonthlyFee,
			}
			byStudent[student.ID] = row
			order = append(order, student.ID)
		}
		row.Outstanding += records[i].Outstanding()
	}

	rows := make([]models.OutstandingStudent, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byStudent[id])
	}
	return rows, nil
}

// groupOutstanding rolls the flat rows up into per-class groups, sorted
// by group then class, students by admission number.
func groupOutstanding(rows []models.OutstandingStudent) []models.OutstandingClassGroup {
	type key struct{ group, class string }
	byClass := make(map[key]*models.OutstandingClassGroup)
	var keys []key

	for _, row := range rows {
		k := key{row.ClassGroup, row.ClassName}
		grp, ok := byClass[k]
		if !ok {
			grp = &models.OutstandingClassGroup{
				ClassGroup: row.ClassGroup,
				ClassName:  row.ClassName,
			}
			byClass[k] = grp
			keys = append(keys, k)
		}
		grp.Students = append(grp.Students, row)
		grp.OutstandingAmount += row.Outstanding
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].group != keys[j].group {
			return keys[i].group < keys[j].group
		}
		return keys[i].class < keys[j].class
	})

	groups := make([]models.OutstandingClassGroup, 0, len(keys))
	for _, k := range keys {
		grp := byClass[k]
		sort.Slice(grp.Students, func(i, j int) bool {
			return grp.Students[i].AdmissionNo < grp.Students[j].AdmissionNo
		})
		groups = append(groups, *grp)
	}
	return groups
}

// UnpaidStudents splits the active roster into paid and unpaid for one
// period and lists the students still owing.
func (s *ReportService) UnpaidStudents(ctx context.Context, month, year int) (*models.UnpaidReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidArgument)
	}

	students, err := s.studentRepo.FindActive(ctx, "", "")
	if err != nil {
		return nil, err
	}

	records, err := s.feeRepo.FindAllForPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uint]*models.FeeRecord, len(records))
	for i := range records {
		byStudent[records[i].StudentID] = &records[i]
	}

	report := &models.UnpaidReport{Month: month, Year: year}
	report.Summary.TotalActive = len(students)

	for _, student := range students {
		paid := 0.0
		outstanding := student.MonthlyFee
		if record, ok := byStudent[student.ID]; ok {
			paid = record.AmountPaid
			outstanding = record.Outstanding()
		}

		// PaidAmount only counts fully settled students; a partial payer's
		// collections stay out of it and the shortfall lands in UnpaidAmount.
		if outstanding <= 0 {
			report.Summary.PaidCount++
			report.Summary.PaidAmount += paid
			continue
		}

		report.Summary.UnpaidCount++
		report.Summary.UnpaidAmount += outstanding
		report.Unpaid = append(report.Unpaid, models.UnpaidStudent{
			StudentID:   student.ID,
			AdmissionNo: student.AdmissionNo,
			Name:        student.Name,
			ClassGroup:  student.ClassGroup,
			ClassName:   student.ClassName,
			MonthlyFee:  student.MonthlyFee,
			PaidAmount:  paid,
			Outstanding: outstanding,
		})
	}

	sort.Slice(report.Unpaid, func(i, j int) bool {
		return report.Unpaid[i].AdmissionNo < report.Unpaid[j].AdmissionNo
	})
	return report, nil
}
