package leave

import "time"

// Allowances are the fixed annual entitlements in days. COMP_OFF and LOP are uncapped:
// usage is tracked and remaining goes negative.
var Allowances = map[LeaveType]int{
	TypeSick:      12,
	TypeCasual:    12,
	TypeEarned:    15,
	TypeMaternity: 26,
	TypePaternity: 5,
	TypeCompOff:   0,
	TypeLOP:       0,
}

// ComputeDays counts calendar days from start to end inclusive. Argument order does not matter.
func ComputeDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours()/24) + 1
}

type BalanceEntry struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type Balance struct {
	Year      int                        `json:"year"`
	TotalUsed int                        `json:"total_used"`
	Balances  map[LeaveType]BalanceEntry `json:"balances"`
}

// YearRange returns the first and last day of year.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// ComputeBalance subtracts the days of the APPROVED requests starting within year from the
// fixed allowances. Requests of other statuses or years are ignored.
func ComputeBalance(year int, requests []LeaveRequest) Balance {
	balance := Balance{
		Year:     year,
		Balances: make(map[LeaveType]BalanceEntry, len(Allowances)),
	}
	for _, t := range Types {
		total := Allowances[t]
		balance.Balances[t] = BalanceEntry{Total: total, Remaining: total}
	}

	from, to := YearRange(year)
	for _, r := range requests {
		if r.Status != StatusApproved {
			continue
		}
		if r.StartDate.Before(from) || r.StartDate.After(to) {
			continue
		}
		entry, ok := balance.Balances[r.Type]
		if !ok {
			continue
		}
		entry.Used += r.Days
		entry.Remaining -= r.Days
		balance.Balances[r.Type] = entry
		balance.TotalUsed += r.Days
	}

	return balance
}
