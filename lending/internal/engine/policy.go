package engine

import (
	"github.com/unilib/lending-service/lending/internal/model"
)

// FinePerDay is the flat penalty per late day, uniform across item kinds.
const FinePerDay = 5.0

// staffLoanLimit stands in for "unlimited" while keeping the
// count >= limit comparison uniform across roles.
const staffLoanLimit = 1 << 30

// LoanDays is the (kind, role) capability table. Every kind and role is
// matched explicitly so a new variant cannot slip through with an
// accidental default.
func LoanDays(kind model.ItemKind, role model.Role) int {
	switch kind {
	case model.KindBook:
		if role == model.RoleFaculty {
			return 90
		}
		return 15
	case model.KindThesis:
		if role == model.RoleFaculty {
			return 30
		}
		return 10
	case model.KindJournal:
		return 7
	case model.KindDigital:
		return 3
	}
	return 0
}

func Renewable(kind model.ItemKind) bool {
	switch kind {
	case model.KindBook, model.KindThesis:
		return true
	case model.KindJournal, model.KindDigital:
		return false
	}
	return false
}

// RenewalCeiling is how many times a loan of this kind may be extended.
func RenewalCeiling(kind model.ItemKind) int {
	if Renewable(kind) {
		return 1
	}
	return 0
}

func LoanLimit(role model.Role) int {
	switch role {
	case model.RoleStudent:
		return 5
	case model.RoleFaculty:
		return 20
	case model.RoleStaff:
		return staffLoanLimit
	}
	return 0
}
