package postgres

import (
	"homefront/internal/domain/recurrence"
)

// scheduleColumns is the stored form of a recurrence.Schedule.
type scheduleColumns struct {
	IsRecurring bool
	Frequency   string
	EndDate     *recurrence.Date
}

func columnsOf(s recurrence.Schedule) scheduleColumns {
	f := recurrence.FieldsOf(s)
	return scheduleColumns{
		IsRecurring: *f.IsRecurring,
		Frequency:   *f.Frequency,
		EndDate:     f.EndDate,
	}
}

// schedule rebuilds the variant without revalidating; rows were validated on the way in.
func (c scheduleColumns) schedule() recurrence.Schedule {
	if !c.IsRecurring {
		return recurrence.OneOff{}
	}
	return recurrence.Recurring{
		Frequency: recurrence.Frequency(c.Frequency),
		EndDate:   c.EndDate,
	}
}
