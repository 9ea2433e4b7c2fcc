package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/common"
)

type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

const MaxDescriptionLen = 500

// MaxAmount is the largest value the NUMERIC(14,2) amount column holds.
const MaxAmount = 999_999_999_999.99

// RoundAmount rounds a to whole cents the way Postgres rounds NUMERIC(14,2):
// the shortest decimal form of a, half away from zero. Plain a*100 would see
// 10.005 as 1000.4999...
func RoundAmount(a float64) float64 {
	mant, exp, _ := strings.Cut(strconv.FormatFloat(a, 'e', -1, 64), "e")
	e, _ := strconv.Atoi(exp)
	cents, err := strconv.ParseFloat(mant+"e"+strconv.Itoa(e+2), 64)
	if err != nil {
		return a
	}
	return math.Round(cents) / 100
}

var categories = map[RecordType][]string{
	RecordIncome: {
		"salary", "freelance", "business", "investment", "rental",
		"bonus", "gift", "refund", "side_hustle", "other",
	},
	RecordExpense: {
		"food", "transport", "utilities", "shopping", "entertainment",
		"health", "education", "bills", "travel", "other",
	},
}

// Categories returns the allowed categories for t, or nil for an unknown type.
func Categories(t RecordType) []string {
	return append([]string(nil), categories[t]...)
}

func ValidCategory(t RecordType, category string) bool {
	for _, c := range categories[t] {
		if c == category {
			return true
		}
	}
	return false
}

// Record is a single income or expense entry.
type Record struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Type        RecordType `json:"type"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type RecordPatch struct {
	Type        *RecordType
	Amount      *float64
	Description *string
	Category    *string
	Date        *time.Time
}

func (r *Record) Apply(p RecordPatch) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Amount != nil {
		r.Amount = RoundAmount(*p.Amount)
	}
	if p.Description != nil {
		r.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		r.Category = strings.TrimSpace(*p.Category)
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}

func (r *Record) Validate() error {
	if r.Type != RecordIncome && r.Type != RecordExpense {
		return common.NewValidationError("type", `type must be "income" or "expense"`)
	}
	if math.IsNaN(r.Amount) || r.Amount < 0 {
		return common.NewValidationError("amount", "amount must not be negative")
	}
	if r.Amount > MaxAmount {
		return common.NewValidationError("amount", "amount must be at most 999999999999.99")
	}
	if strings.TrimSpace(r.Description) == "" {
		return common.NewValidationError("description", "description is required")
	}
	if len([]rune(r.Description)) > MaxDescriptionLen {
		return common.NewValidationError("description", "description must be at most 500 characters")
	}
	if !ValidCategory(r.Type, r.Category) {
		return common.NewValidationError("category", fmt.Sprintf("category %q is not valid for %s", r.Category, r.Type))
	}
	return nil
}

// Summary totals a user's records.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

func Summarize(records []*Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case RecordIncome:
			s.Income += r.Amount
		case RecordExpense:
			s.Expense += r.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}
