package model

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillDone    BillStatus = "Done"
	BillProcess BillStatus = "Process"
	BillSkip    BillStatus = "Skip"
)

// Bill is one recurring expense due on a given day.
type Bill struct {
	ID      string     `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	DueDate string     `json:"dueDate" yaml:"due_date"` // "2025-09-01"
	Amount  float64    `json:"amount" yaml:"amount"`
	Status  BillStatus `json:"status" yaml:"status"`
}

// BillSummary holds the month totals shown above the bills table.
type BillSummary struct {
	Total     float64
	Done      float64
	Remaining float64
	Progress  int // 0-100
	Count     int
}
