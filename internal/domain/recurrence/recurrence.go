// Package recurrence models how often an income, expense or debt payment repeats.
//
// A Schedule is either OneOff or Recurring. The flat JSON form used by the API
// (isRecurring, frequency, endDate) is converted with Resolve and FieldsOf, so a
// record can never be one-off while still carrying a repeating frequency.
package recurrence

import (
	"time"

	"homefront/internal/shared/patch"
	"homefront/internal/shared/validation"
)

type Frequency string

const (
	Once      Frequency = "once"
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
)

var frequencies = []string{
	string(Once), string(Weekly), string(Biweekly),
	string(Monthly), string(Quarterly), string(Annually),
}

func ParseFrequency(s string) (Frequency, error) {
	if err := validation.OneOf("frequency", s, frequencies); err != nil {
		return "", err
	}
	return Frequency(s), nil
}

type Schedule interface {
	IsRecurring() bool
	schedule()
}

type OneOff struct{}

func (OneOff) IsRecurring() bool { return false }
func (OneOff) schedule()         {}

type Recurring struct {
	Frequency Frequency
	EndDate   *Date
}

func (Recurring) IsRecurring() bool { return true }
func (Recurring) schedule()         {}

// Fields is the flat wire representation of a Schedule.
type Fields struct {
	IsRecurring *bool   `json:"isRecurring,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	EndDate     *Date   `json:"endDate,omitempty"`
}

// Resolve validates the flat fields of an entry dated date and returns its Schedule.
//
// When isRecurring is absent it is inferred from frequency (anything but "once"
// repeats); with neither present defaultRecurring decides, and a defaulted
// recurring entry repeats monthly. Frequency "once" always yields OneOff, even
// alongside isRecurring true.
func Resolve(f Fields, date Date, defaultRecurring bool) (Schedule, error) {
	var freq *Frequency
	if f.Frequency != nil {
		parsed, err := ParseFrequency(*f.Frequency)
		if err != nil {
			return nil, err
		}
		freq = &parsed
	}

	recurring := defaultRecurring
	switch {
	case f.IsRecurring != nil:
		recurring = *f.IsRecurring
	case freq != nil:
		recurring = *freq != Once
	}
	if freq != nil && *freq == Once {
		recurring = false
	}

	if !recurring {
		if freq != nil && *freq != Once {
			return nil, validation.Errorf("frequency", "frequency must be once or absent when isRecurring is false")
		}
		if f.EndDate != nil {
			return nil, validation.Errorf("endDate", "endDate is only allowed on recurring entries")
		}
		return OneOff{}, nil
	}

	if freq == nil {
		if f.IsRecurring != nil {
			return nil, validation.Errorf("frequency", "frequency is required when isRecurring is true")
		}
		m := Monthly
		freq = &m
	}
	if f.EndDate != nil && !f.EndDate.After(date) {
		return nil, validation.Errorf("endDate", "endDate must be after date")
	}
	return Recurring{Frequency: *freq, EndDate: f.EndDate}, nil
}

// FieldsOf flattens s for storage and responses. One-off entries report frequency "once".
func FieldsOf(s Schedule) Fields {
	switch v := s.(type) {
	case Recurring:
		freq := string(v.Frequency)
		return Fields{IsRecurring: boolPtr(true), Frequency: &freq, EndDate: v.EndDate}
	default:
		freq := string(Once)
		return Fields{IsRecurring: boolPtr(false), Frequency: &freq}
	}
}

// Patch is the recurrence part of a partial update. EndDate may be sent as null
// to remove the end date.
type Patch struct {
	IsRecurring *bool             `json:"isRecurring"`
	Frequency   *string           `json:"frequency"`
	EndDate     patch.Field[Date] `json:"endDate"`
}

// Merge overlays a partial update onto the stored schedule. Supplying isRecurring
// discards the stored frequency and end date; supplying only frequency lets
// Resolve infer isRecurring from it.
func Merge(current Schedule, p Patch) Fields {
	merged := FieldsOf(current)
	if p.IsRecurring != nil {
		merged = Fields{IsRecurring: p.IsRecurring}
	} else if p.Frequency != nil {
		merged.IsRecurring = nil
	}
	if p.Frequency != nil {
		merged.Frequency = p.Frequency
	}
	p.EndDate.Apply(&merged.EndDate)
	return merged
}

// NextAfter returns the first due date of an entry anchored at start that falls
// strictly after t, or false when there is none.
func NextAfter(s Schedule, start Date, t time.Time) (Date, bool) {
	r, ok := s.(Recurring)
	if !ok {
		if start.Time.After(t) {
			return start, true
		}
		return Date{}, false
	}
	for n := 0; n < maxOccurrences; n++ {
		d := r.step(start, n)
		if r.EndDate != nil && d.After(*r.EndDate) {
			return Date{}, false
		}
		if d.Time.After(t) {
			return d, true
		}
	}
	return Date{}, false
}

// Occurrences lists the due dates within [from, to].
func Occurrences(s Schedule, start Date, from, to Date) []Date {
	var out []Date
	r, ok := s.(Recurring)
	if !ok {
		if !start.Before(from.Time) && !start.After(to) {
			out = append(out, start)
		}
		return out
	}
	for n := 0; n < maxOccurrences; n++ {
		d := r.step(start, n)
		if d.After(to) || (r.EndDate != nil && d.After(*r.EndDate)) {
			break
		}
		if !d.Before(from.Time) {
			out = append(out, d)
		}
	}
	return out
}

// 50 years of weekly payments.
const maxOccurrences = 52 * 50

func (r Recurring) step(start Date, n int) Date {
	switch r.Frequency {
	case Weekly:
		return Date{start.AddDate(0, 0, 7*n)}
	case Biweekly:
		return Date{start.AddDate(0, 0, 14*n)}
	case Quarterly:
		return addMonths(start, 3*n)
	case Annually:
		return addMonths(start, 12*n)
	default:
		return addMonths(start, n)
	}
}

// addMonths keeps the anchor day, clamped to the end of shorter months.
func addMonths(d Date, months int) Date {
	first := time.Date(d.Year(), d.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

func boolPtr(b bool) *bool { return &b }
