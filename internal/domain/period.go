package domain

import "time"

// Period is the roster accounting interval: a calendar month in "2006-01" form.
// Shift quotas are tracked and reset per period.
type Period string

const periodLayout = "2006-01"

func PeriodOf(t time.Time) Period {
	return Period(t.Format(periodLayout))
}

func (p Period) Valid() bool {
	_, err := time.Parse(periodLayout, string(p))
	return err == nil
}

func (p Period) Next() Period {
	t, err := time.Parse(periodLayout, string(p))
	if err != nil {
		return p
	}
	return Period(t.AddDate(0, 1, 0).Format(periodLayout))
}
