package recurrence

import (
	"encoding/json"
	"testing"
	"time"

	"homefront/internal/shared/validation"
)

func strPtr(s string) *string { return &s }

func datePtr(d Date) *Date { return &d }

func TestResolve(t *testing.T) {
	date := NewDate(2024, time.January, 15)

	tests := []struct {
		name             string
		fields           Fields
		defaultRecurring bool
		want             Schedule
		wantField        string
	}{
		{
			name:   "absent fields default to one-off",
			fields: Fields{},
			want:   OneOff{},
		},
		{
			name:             "absent fields default to monthly for debts",
			fields:           Fields{},
			defaultRecurring: true,
			want:             Recurring{Frequency: Monthly},
		},
		{
			name:   "recurring weekly",
			fields: Fields{IsRecurring: boolPtr(true), Frequency: strPtr("weekly")},
			want:   Recurring{Frequency: Weekly},
		},
		{
			name:      "recurring without frequency",
			fields:    Fields{IsRecurring: boolPtr(true)},
			wantField: "frequency",
		},
		{
			name:   "recurring with once is one-off",
			fields: Fields{IsRecurring: boolPtr(true), Frequency: strPtr("once")},
			want:   OneOff{},
		},
		{
			name:      "recurring with once rejects end date",
			fields:    Fields{IsRecurring: boolPtr(true), Frequency: strPtr("once"), EndDate: datePtr(NewDate(2024, time.February, 15))},
			wantField: "endDate",
		},
		{
			name:   "not recurring with once",
			fields: Fields{IsRecurring: boolPtr(false), Frequency: strPtr("once")},
			want:   OneOff{},
		},
		{
			name:      "not recurring with monthly",
			fields:    Fields{IsRecurring: boolPtr(false), Frequency: strPtr("monthly")},
			wantField: "frequency",
		},
		{
			name:   "frequency alone implies recurring",
			fields: Fields{Frequency: strPtr("quarterly")},
			want:   Recurring{Frequency: Quarterly},
		},
		{
			name:             "once alone overrides recurring default",
			fields:           Fields{Frequency: strPtr("once")},
			defaultRecurring: true,
			want:             OneOff{},
		},
		{
			name:      "unknown frequency",
			fields:    Fields{IsRecurring: boolPtr(true), Frequency: strPtr("daily")},
			wantField: "frequency",
		},
		{
			name:      "end date equal to date",
			fields:    Fields{IsRecurring: boolPtr(true), Frequency: strPtr("monthly"), EndDate: datePtr(date)},
			wantField: "endDate",
		},
		{
			name:      "end date before date",
			fields:    Fields{IsRecurring: boolPtr(true), Frequency: strPtr("monthly"), EndDate: datePtr(NewDate(2023, time.December, 1))},
			wantField: "endDate",
		},
		{
			name:      "end date on one-off",
			fields:    Fields{IsRecurring: boolPtr(false), EndDate: datePtr(NewDate(2024, time.June, 1))},
			wantField: "endDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.fields, date, tt.defaultRecurring)
			if tt.wantField != "" {
				fe, ok := validation.AsFieldError(err)
				if !ok {
					t.Fatalf("expected FieldError on %q, got %v", tt.wantField, err)
				}
				if fe.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolve_EndDateAfterDate(t *testing.T) {
	date := NewDate(2024, time.January, 15)
	end := NewDate(2024, time.January, 16)

	got, err := Resolve(Fields{IsRecurring: boolPtr(true), Frequency: strPtr("weekly"), EndDate: &end}, date, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := got.(Recurring)
	if !ok {
		t.Fatalf("expected Recurring, got %T", got)
	}
	if r.EndDate == nil || !r.EndDate.Equal(end.Time) {
		t.Errorf("EndDate = %v, want %v", r.EndDate, end)
	}
}

func TestFieldsOf(t *testing.T) {
	one := FieldsOf(OneOff{})
	if *one.IsRecurring || *one.Frequency != "once" || one.EndDate != nil {
		t.Errorf("FieldsOf(OneOff) = %+v", one)
	}

	end := NewDate(2025, time.March, 1)
	rec := FieldsOf(Recurring{Frequency: Biweekly, EndDate: &end})
	if !*rec.IsRecurring || *rec.Frequency != "biweekly" || rec.EndDate != &end {
		t.Errorf("FieldsOf(Recurring) = %+v", rec)
	}
}

func TestMerge(t *testing.T) {
	date := NewDate(2024, time.January, 15)

	t.Run("switching to one-off drops stored frequency", func(t *testing.T) {
		merged := Merge(Recurring{Frequency: Weekly}, Patch{IsRecurring: boolPtr(false)})
		got, err := Resolve(merged, date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (OneOff{}) {
			t.Errorf("got %#v, want OneOff", got)
		}
	})

	t.Run("frequency change keeps recurring", func(t *testing.T) {
		merged := Merge(Recurring{Frequency: Weekly}, Patch{Frequency: strPtr("annually")})
		got, err := Resolve(merged, date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (Recurring{Frequency: Annually}) {
			t.Errorf("got %#v, want annually", got)
		}
	})

	t.Run("frequency on one-off makes it recurring", func(t *testing.T) {
		merged := Merge(OneOff{}, Patch{Frequency: strPtr("monthly")})
		got, err := Resolve(merged, date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (Recurring{Frequency: Monthly}) {
			t.Errorf("got %#v, want monthly", got)
		}
	})

	t.Run("recurring without frequency is rejected", func(t *testing.T) {
		merged := Merge(OneOff{}, Patch{IsRecurring: boolPtr(true)})
		if _, err := Resolve(merged, date, false); err == nil {
			t.Error("expected error when frequency is missing")
		}
	})

	t.Run("untouched schedule survives", func(t *testing.T) {
		merged := Merge(Recurring{Frequency: Quarterly}, Patch{})
		got, err := Resolve(merged, date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (Recurring{Frequency: Quarterly}) {
			t.Errorf("got %#v, want quarterly", got)
		}
	})

	t.Run("null end date clears it", func(t *testing.T) {
		end := NewDate(2025, time.January, 15)
		var p Patch
		if err := json.Unmarshal([]byte(`{"endDate":null}`), &p); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		got, err := Resolve(Merge(Recurring{Frequency: Monthly, EndDate: &end}, p), date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (Recurring{Frequency: Monthly}) {
			t.Errorf("got %#v, want monthly without end date", got)
		}
	})

	t.Run("absent end date is kept", func(t *testing.T) {
		end := NewDate(2025, time.January, 15)
		got, err := Resolve(Merge(Recurring{Frequency: Monthly, EndDate: &end}, Patch{}), date, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r, ok := got.(Recurring)
		if !ok || r.EndDate == nil || !r.EndDate.Equal(end.Time) {
			t.Errorf("got %#v, want end date %s", got, end)
		}
	})
}

func TestNextAfter(t *testing.T) {
	start := NewDate(2024, time.January, 31)
	at := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		schedule Schedule
		t        time.Time
		want     Date
		wantOK   bool
	}{
		{"one-off in future", OneOff{}, at(2024, time.January, 1), start, true},
		{"one-off in past", OneOff{}, at(2024, time.February, 1), Date{}, false},
		{"monthly clamps to february", Recurring{Frequency: Monthly}, at(2024, time.February, 1), NewDate(2024, time.February, 29), true},
		{"monthly returns to day 31", Recurring{Frequency: Monthly}, at(2024, time.March, 1), NewDate(2024, time.March, 31), true},
		{"weekly", Recurring{Frequency: Weekly}, at(2024, time.February, 1), NewDate(2024, time.February, 7), true},
		{"biweekly", Recurring{Frequency: Biweekly}, at(2024, time.February, 1), NewDate(2024, time.February, 14), true},
		{"quarterly", Recurring{Frequency: Quarterly}, at(2024, time.February, 1), NewDate(2024, time.April, 30), true},
		{"annually", Recurring{Frequency: Annually}, at(2024, time.February, 1), NewDate(2025, time.January, 31), true},
		{
			"past end date",
			Recurring{Frequency: Monthly, EndDate: datePtr(NewDate(2024, time.March, 15))},
			at(2024, time.April, 1),
			Date{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextAfter(tt.schedule, start, tt.t)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want.Time) {
				t.Errorf("NextAfter() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOccurrences(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.January, 29)

	got := Occurrences(Recurring{Frequency: Weekly, EndDate: &end}, start, NewDate(2024, time.January, 10), NewDate(2024, time.December, 31))
	want := []string{"2024-01-15", "2024-01-22", "2024-01-29"}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}

	if got := Occurrences(OneOff{}, start, start, start); len(got) != 1 {
		t.Errorf("one-off on the boundary should occur once, got %v", got)
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2024-03-05"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Date.String() != "2024-03-05" {
		t.Errorf("Date = %s", payload.Date)
	}

	if err := json.Unmarshal([]byte(`{"date":"2024-03-05T23:10:00Z"}`), &payload); err != nil {
		t.Fatalf("unmarshal RFC 3339: %v", err)
	}
	if payload.Date.String() != "2024-03-05" {
		t.Errorf("Date = %s", payload.Date)
	}

	if err := json.Unmarshal([]byte(`{"date":"05/03/2024"}`), &payload); err == nil {
		t.Error("expected error for unsupported layout")
	}
	if err := json.Unmarshal([]byte(`{"date":20240305}`), &payload); err == nil {
		t.Error("expected error for numeric date")
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"date":"2024-03-05"}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2024-05-02" {
		t.Errorf("Date = %s", d)
	}
	if err := d.Scan([]byte("2024-06-01")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d.String() != "2024-06-01" {
		t.Errorf("Date = %s", d)
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
