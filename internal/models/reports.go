package models

// OutstandingStudent is one student's outstanding position for a period.
// Month/Year are zero in all-periods mode when taken from the ledger rows.
type OutstandingStudent struct {
	StudentID   uint    `json:"student_id"`
	AdmissionNo string  `json:"admission_no"`
	Name        string  `json:"name"`
	ClassGroup  string  `json:"class_group"`
	ClassName   string  `json:"class_name"`
	Month       int     `json:"month,omitempty"`
	Year        int     `json:"year,omitempty"`
	MonthlyFee  float64 `json:"monthly_fee"`
	Outstanding float64 `json:"outstanding"`
}

// OutstandingClassGroup is the per-(classGroup, className) rollup
type OutstandingClassGroup struct {
	ClassGroup        string               `json:"class_group"`
	ClassName         string               `json:"class_name"`
	Students          []OutstandingStudent `json:"students"`
	OutstandingAmount float64              `json:"outstanding_amount"`
}

// OutstandingTotals carries the grand totals across all groups
type OutstandingTotals struct {
	OutstandingStudents int     `json:"outstanding_students"`
	OutstandingAmount   float64 `json:"outstanding_amount"`
}

// OutstandingReport is the classwise outstanding report for a period
// (or across all periods when Month/Year are nil)
type OutstandingReport struct {
	Month  *int                    `json:"month,omitempty"`
	Year   *int                    `json:"year,omitempty"`
	Groups []OutstandingClassGroup `json:"groups"`
	Totals OutstandingTotals       `json:"totals"`
}

// UnpaidStudent is one row of the paid/unpaid split for a period
type UnpaidStudent struct {
	StudentID   uint    `json:"student_id"`
	AdmissionNo string  `json:"admission_no"`
	Name        string  `json:"name"`
	ClassGroup  string  `json:"class_group"`
	ClassName   string  `json:"class_name"`
	MonthlyFee  float64 `json:"monthly_fee"`
	PaidAmount  float64 `json:"paid_amount"`
	Outstanding float64 `json:"outstanding"`
}

// UnpaidSummary aggregates the paid/unpaid split
type UnpaidSummary struct {
	TotalActive  int     `json:"total_active"`
	PaidCount    int     `json:"paid_count"`
	UnpaidCount  int     `json:"unpaid_count"`
	PaidAmount   float64 `json:"paid_amount"`
	UnpaidAmount float64 `json:"unpaid_amount"`
}

// UnpaidReport lists students still owing for a period
type UnpaidReport struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Unpaid  []UnpaidStudent `json:"unpaid"`
	Summary UnpaidSummary   `json:"summary"`
}

// PeriodSnapshot is an aggregated financial summary for one reporting range
type PeriodSnapshot struct {
	Label            string             `json:"label"`
	Month            *int               `json:"month,omitempty"`
	Year             *int               `json:"year,omitempty"`
	FeeCollected     float64            `json:"fee_collected"`
	FeeOutstanding   float64            `json:"fee_outstanding"`
	Expenses         float64            `json:"expenses"`
	ExpenseBreakdown map[string]float64 `json:"expense_breakdown"`
	Net              float64            `json:"net"`
}

// PeriodOverview holds the four fixed reporting ranges
type PeriodOverview struct {
	CurrentMonth  PeriodSnapshot `json:"current_month"`
	PreviousMonth PeriodSnapshot `json:"previous_month"`
	YearToDate    PeriodSnapshot `json:"year_to_date"`
	Overall       PeriodSnapshot `json:"overall"`
}

// FeePeriodTotal is the per-month collected/outstanding breakdown row
type FeePeriodTotal struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
}

// FeeSummary is the overall + per-month fee rollup
type FeeSummary struct {
	Overall struct {
		Collected   float64 `json:"collected"`
		Outstanding float64 `json:"outstanding"`
	} `json:"overall"`
	Breakdown []FeePeriodTotal `json:"breakdown"`
}

// ExpensePeriodTotal is the per-month expense breakdown row
type ExpensePeriodTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// ExpenseSummary is the fixed-range expense rollup
type ExpenseSummary struct {
	Breakdown     []ExpensePeriodTotal `json:"breakdown"`
	CurrentMonth  float64              `json:"current_month"`
	PreviousMonth float64              `json:"previous_month"`
	YearToDate    float64              `json:"year_to_date"`
	Overall       float64              `json:"overall"`
}

// DashboardOverview is the landing-page headline summary
type DashboardOverview struct {
	Students       int64   `json:"students"`
	Teachers       int64   `json:"teachers"`
	FeeCollected   float64 `json:"fee_collected"`
	FeeOutstanding float64 `json:"fee_outstanding"`
	TotalExpenses  float64 `json:"total_expenses"`
	Net            float64 `json:"net"`
}
