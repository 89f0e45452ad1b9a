// Package bills groups monthly bills by due month and tracks how much of
// each month has been paid.
package bills

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/liftlog/internal/log"
	"github.com/theirongolddev/liftlog/internal/model"
	"github.com/theirongolddev/liftlog/internal/store"
)

// KeyBills is the KV key the bill list is stored under.
const KeyBills = "bills.v1"

var (
	// ErrBillNotFound is returned for an unknown bill ID.
	ErrBillNotFound = errors.New("bill not found")
	// ErrInvalidStatus is returned for a status other than Done, Process, or Skip.
	ErrInvalidStatus = errors.New("invalid bill status")
	// ErrInvalidBill is returned when a new bill lacks a title, a valid due date, or a positive amount.
	ErrInvalidBill = errors.New("invalid bill")
)

// SampleBills seeds an empty book.
var SampleBills = []model.Bill{
	{ID: "1", Title: "Rent / Housing", DueDate: "2025-09-01", Amount: 1200, Status: model.BillDone},
	{ID: "2", Title: "Utilities", DueDate: "2025-09-05", Amount: 180, Status: model.BillProcess},
	{ID: "3", Title: "Internet", DueDate: "2025-09-07", Amount: 60, Status: model.BillDone},
	{ID: "4", Title: "Groceries", DueDate: "2025-09-10", Amount: 350, Status: model.BillProcess},
	{ID: "5", Title: "Transportation", DueDate: "2025-09-12", Amount: 120, Status: model.BillSkip},
	{ID: "6", Title: "Subscriptions", DueDate: "2025-09-15", Amount: 45, Status: model.BillProcess},
	{ID: "7", Title: "Emergency Fund", DueDate: "2025-09-28", Amount: 150, Status: model.BillProcess},
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (model.BillStatus, error) {
	for _, st := range []model.BillStatus{model.BillDone, model.BillProcess, model.BillSkip} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// MonthKey returns the "YYYY-MM" bucket for a "YYYY-MM-DD" due date.
func MonthKey(dueDate string) string {
	if len(dueDate) < 7 {
		return ""
	}
	return dueDate[:7]
}

// MonthKeyOf returns the "YYYY-MM" bucket for t.
func MonthKeyOf(t time.Time) string {
	return t.Format("2006-01")
}

// IsOverdue reports whether b is still to be paid and due before today.
// Due dates are "YYYY-MM-DD", so they compare as strings.
func IsOverdue(b model.Bill, today time.Time) bool {
	return b.Status == model.BillProcess && b.DueDate < today.Format("2006-01-02")
}

// MonthLabel renders a month key as "September 2025".
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// Months returns the distinct month keys present in bills, newest first.
func Months(bills []model.Bill) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range bills {
		k := MonthKey(b.DueDate)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Filter returns the bills due in month whose title contains query
// (case-insensitive), ordered by due date. An empty month matches all.
func Filter(bills []model.Bill, month, query string) []model.Bill {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.Bill
	for _, b := range bills {
		if month != "" && MonthKey(b.DueDate) != month {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(b.Title), q) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

// Summarize totals bills and reports the paid share.
func Summarize(bills []model.Bill) model.BillSummary {
	var s model.BillSummary
	for _, b := range bills {
		s.Total += b.Amount
		if b.Status == model.BillDone {
			s.Done += b.Amount
		}
	}
	s.Count = len(bills)
	s.Remaining = math.Max(0, s.Total-s.Done)
	if s.Total > 0 {
		s.Progress = int(math.Round(s.Done / s.Total * 100))
	}
	return s
}

// Book is the persisted bill list.
type Book struct {
	mu    sync.Mutex
	kv    store.KV
	bills []model.Bill
	log   *log.Logger
}

// LoadBook reads the bill list from kv, seeding SampleBills when the key is
// missing or malformed.
func LoadBook(kv store.KV, logger *log.Logger) *Book {
	if logger == nil {
		logger = log.Discard()
	}
	b := &Book{
		kv:    kv,
		bills: append([]model.Bill{}, SampleBills...),
		log:   logger.WithComponent("bills"),
	}

	raw, ok, err := kv.Get(KeyBills)
	switch {
	case err != nil:
		b.log.Warn("reading bills, using samples", "error", err)
	case ok:
		var list []model.Bill
		if err := json.Unmarshal(raw, &list); err != nil {
			b.log.Warn("malformed bills, using samples", "error", err)
		} else {
			b.bills = list
		}
	}
	return b
}

// All returns a copy of every bill.
func (b *Book) All() []model.Bill {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Bill{}, b.bills...)
}

// SetStatus changes the status of bill id and saves.
func (b *Book) SetStatus(id string, status model.BillStatus) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.bills {
		if b.bills[i].ID == id {
			b.bills[i].Status = status
			return b.saveLocked()
		}
	}
	return fmt.Errorf("%w: %s", ErrBillNotFound, id)
}

// Add appends a new bill in Process state and saves.
func (b *Book) Add(title, dueDate string, amount float64) (model.Bill, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Bill{}, fmt.Errorf("%w: empty title", ErrInvalidBill)
	}
	if _, err := time.Parse("2006-01-02", dueDate); err != nil {
		return model.Bill{}, fmt.Errorf("%w: due date %q", ErrInvalidBill, dueDate)
	}
	if math.IsNaN(amount) || amount <= 0 {
		return model.Bill{}, fmt.Errorf("%w: amount must be positive", ErrInvalidBill)
	}

	bill := model.Bill{
		ID:      uuid.NewString(),
		Title:   title,
		DueDate: dueDate,
		Amount:  amount,
		Status:  model.BillProcess,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.bills = append(b.bills, bill)
	return bill, b.saveLocked()
}

// Remove deletes bill id and saves.
func (b *Book) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.bills {
		if b.bills[i].ID == id {
			b.bills = append(b.bills[:i], b.bills[i+1:]...)
			return b.saveLocked()
		}
	}
	return fmt.Errorf("%w: %s", ErrBillNotFound, id)
}

func (b *Book) saveLocked() error {
	data, err := json.Marshal(b.bills)
	if err != nil {
		return fmt.Errorf("encoding bills: %w", err)
	}
	if err := b.kv.Set(KeyBills, data); err != nil {
		b.log.Error("saving bills", "error", err)
		return fmt.Errorf("saving bills: %w", err)
	}
	return nil
}

// Replace swaps the whole bill list and saves. Bills missing an ID get one.
func (b *Book) Replace(list []model.Bill) error {
	next := make([]model.Bill, 0, len(list))
	for _, bill := range list {
		if _, err := ParseStatus(string(bill.Status)); err != nil {
			return fmt.Errorf("bill %q: %w", bill.Title, err)
		}
		if bill.ID == "" {
			bill.ID = uuid.NewString()
		}
		next = append(next, bill)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.bills = next
	return b.saveLocked()
}
