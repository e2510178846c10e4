package busdays

import (
	"errors"
	"testing"
	"time"

	"github.com/username/workcal/pkg/datecalc"
)

func newTestEngine() Engine {
	return New(datecalc.NewCalculator(time.UTC))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDayDefaults(t *testing.T) {
	eng := newTestEngine()

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"Monday", date(2024, 6, 17), true},
		{"Friday", date(2024, 6, 21), true},
		{"Saturday", date(2024, 6, 22), false},
		{"Sunday", date(2024, 6, 23), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eng.IsBusinessDay(tt.day); got != tt.want {
				t.Errorf("IsBusinessDay(%s) = %v, want %v",
					tt.day.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestWeekendConfiguration(t *testing.T) {
	eng := newTestEngine()

	friSat, err := eng.WithWeekendDays(time.Friday, time.Saturday)
	if err != nil {
		t.Fatalf("WithWeekendDays(Friday, Saturday) error = %v", err)
	}

	friday := date(2024, 6, 21)
	saturday := date(2024, 6, 22)
	sunday := date(2024, 6, 23)

	if !friSat.IsWeekend(friday) || friSat.IsBusinessDay(friday) {
		t.Errorf("Fri/Sat engine should treat Friday as weekend")
	}
	if friSat.IsWeekend(sunday) || !friSat.IsBusinessDay(sunday) {
		t.Errorf("Fri/Sat engine should treat Sunday as a business day")
	}

	// The original engine keeps the two-day weekend convention.
	if eng.IsWeekend(friday) {
		t.Errorf("default engine should treat Friday as a business day")
	}
	if !eng.IsWeekend(saturday) || !eng.IsWeekend(sunday) {
		t.Errorf("default engine should treat Saturday and Sunday as weekend")
	}
}

func TestWithWeekendDaysRejectsEmptySet(t *testing.T) {
	eng := newTestEngine()

	if _, err := eng.WithWeekendDays(); err == nil {
		t.Fatal("WithWeekendDays() with no days should fail")
	}
}

func TestHolidayExclusion(t *testing.T) {
	eng := newTestEngine()

	juneteenth := date(2024, 6, 19) // Wednesday
	unrelated := date(2024, 6, 20)  // Thursday

	if !eng.IsBusinessDay(juneteenth) {
		t.Fatalf("%s should be a business day before AddingHolidays",
			juneteenth.Format("2006-01-02"))
	}

	withHoliday := eng.AddingHolidays(juneteenth)

	if withHoliday.IsBusinessDay(juneteenth) {
		t.Errorf("%s should not be a business day after AddingHolidays",
			juneteenth.Format("2006-01-02"))
	}
	if !withHoliday.IsHoliday(juneteenth) {
		t.Errorf("IsHoliday(%s) = false after AddingHolidays", juneteenth.Format("2006-01-02"))
	}
	if !withHoliday.IsBusinessDay(unrelated) {
		t.Errorf("unrelated day %s should stay a business day", unrelated.Format("2006-01-02"))
	}
}

func TestHolidayProbeTruncation(t *testing.T) {
	// Holiday registered at 9am, probed at 2pm: both truncate to the same
	// calendar day and must match.
	eng := newTestEngine().AddingHolidays(
		time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC))

	probe := time.Date(2024, 7, 4, 14, 30, 0, 0, time.UTC)
	if !eng.IsHoliday(probe) {
		t.Errorf("IsHoliday(%v) = false, want true for a holiday on the same day", probe)
	}
}

func TestDerivedEnginesAreIndependent(t *testing.T) {
	base := newTestEngine()
	holiday := date(2024, 6, 19)

	child := base.AddingHolidays(holiday)
	sibling, err := base.WithWeekendDays(time.Friday, time.Saturday)
	if err != nil {
		t.Fatalf("WithWeekendDays error = %v", err)
	}

	if !base.IsBusinessDay(holiday) {
		t.Errorf("parent engine observed the child's holiday")
	}
	if sibling.IsHoliday(holiday) {
		t.Errorf("sibling engine observed the child's holiday")
	}
	if child.IsWeekend(date(2024, 6, 21)) {
		t.Errorf("child engine observed the sibling's weekend set")
	}
}

func TestNextBusinessDay(t *testing.T) {
	eng := newTestEngine()

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"Friday skips the weekend", date(2024, 6, 21), date(2024, 6, 24)},
		{"Monday steps to Tuesday", date(2024, 6, 17), date(2024, 6, 18)},
		{"Saturday lands on Monday", date(2024, 6, 22), date(2024, 6, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.NextBusinessDay(tt.from)
			if err != nil {
				t.Fatalf("NextBusinessDay(%s) error = %v", tt.from.Format("2006-01-02"), err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextBusinessDay(%s) = %s, want %s",
					tt.from.Format("2006-01-02"),
					got.Format("2006-01-02"),
					tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestNextBusinessDaySkipsHolidays(t *testing.T) {
	eng := newTestEngine().AddingHolidays(date(2024, 6, 18)) // Tuesday

	got, err := eng.NextBusinessDay(date(2024, 6, 17))
	if err != nil {
		t.Fatalf("NextBusinessDay error = %v", err)
	}
	if want := date(2024, 6, 19); !got.Equal(want) {
		t.Errorf("NextBusinessDay = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	eng := newTestEngine()

	got, err := eng.PreviousBusinessDay(date(2024, 6, 24)) // Monday
	if err != nil {
		t.Fatalf("PreviousBusinessDay error = %v", err)
	}
	if want := date(2024, 6, 21); !got.Equal(want) {
		t.Errorf("PreviousBusinessDay = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestClosestBusinessDay(t *testing.T) {
	eng := newTestEngine()

	tuesday := date(2024, 6, 18)
	got, err := eng.ClosestBusinessDay(tuesday)
	if err != nil {
		t.Fatalf("ClosestBusinessDay error = %v", err)
	}
	if !got.Equal(tuesday) {
		t.Errorf("ClosestBusinessDay on a business day = %s, want the day itself",
			got.Format("2006-01-02"))
	}

	saturday := date(2024, 6, 22)
	got, err = eng.ClosestBusinessDay(saturday)
	if err != nil {
		t.Fatalf("ClosestBusinessDay error = %v", err)
	}
	if want := date(2024, 6, 24); !got.Equal(want) {
		t.Errorf("ClosestBusinessDay(Saturday) = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAddBusinessDays(t *testing.T) {
	eng := newTestEngine()
	monday := date(2024, 6, 17)

	t.Run("zero is identity", func(t *testing.T) {
		got, err := eng.AddBusinessDays(0, monday)
		if err != nil {
			t.Fatalf("AddBusinessDays(0) error = %v", err)
		}
		if !got.Equal(monday) {
			t.Errorf("AddBusinessDays(0) = %s, want the input unchanged",
				got.Format("2006-01-02"))
		}
	})

	t.Run("five days crosses one weekend", func(t *testing.T) {
		got, err := eng.AddBusinessDays(5, monday)
		if err != nil {
			t.Fatalf("AddBusinessDays(5) error = %v", err)
		}
		if want := date(2024, 6, 24); !got.Equal(want) {
			t.Errorf("AddBusinessDays(5, %s) = %s, want %s",
				monday.Format("2006-01-02"),
				got.Format("2006-01-02"),
				want.Format("2006-01-02"))
		}
	})

	t.Run("negative count walks backward", func(t *testing.T) {
		got, err := eng.AddBusinessDays(-5, date(2024, 6, 24))
		if err != nil {
			t.Fatalf("AddBusinessDays(-5) error = %v", err)
		}
		if !got.Equal(monday) {
			t.Errorf("AddBusinessDays(-5) = %s, want %s",
				got.Format("2006-01-02"), monday.Format("2006-01-02"))
		}
	})
}

func TestBusinessDayRoundTrip(t *testing.T) {
	eng := newTestEngine()
	start := date(2024, 6, 17) // Monday

	for n := 1; n <= 8; n++ {
		forward, err := eng.AddBusinessDays(n, start)
		if err != nil {
			t.Fatalf("AddBusinessDays(%d) error = %v", n, err)
		}
		back, err := eng.SubtractBusinessDays(n, forward)
		if err != nil {
			t.Fatalf("SubtractBusinessDays(%d) error = %v", n, err)
		}
		if !back.Equal(start) {
			t.Errorf("round trip n=%d: got %s, want %s",
				n, back.Format("2006-01-02"), start.Format("2006-01-02"))
		}
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	eng := newTestEngine()

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "full working week",
			a:    date(2024, 6, 17),
			b:    date(2024, 6, 21),
			want: 5,
		},
		{
			name: "same business day",
			a:    date(2024, 6, 18),
			b:    date(2024, 6, 18),
			want: 1,
		},
		{
			name: "weekend only",
			a:    date(2024, 6, 22),
			b:    date(2024, 6, 23),
			want: 0,
		},
		{
			name: "two weeks spanning a weekend",
			a:    date(2024, 6, 17),
			b:    date(2024, 6, 28),
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := eng.BusinessDaysBetween(tt.a, tt.b)
			backward := eng.BusinessDaysBetween(tt.b, tt.a)

			if forward != tt.want {
				t.Errorf("BusinessDaysBetween(%s, %s) = %d, want %d",
					tt.a.Format("2006-01-02"), tt.b.Format("2006-01-02"),
					forward, tt.want)
			}
			if forward != backward {
				t.Errorf("BusinessDaysBetween is not symmetric: %d vs %d",
					forward, backward)
			}
		})
	}
}

func TestBusinessDaysBetweenWithHoliday(t *testing.T) {
	// July 4, 2024 is a Thursday.
	eng := newTestEngine().AddingHolidays(date(2024, 7, 4))

	got := eng.BusinessDaysBetween(date(2024, 7, 1), date(2024, 7, 5))
	if got != 4 {
		t.Errorf("BusinessDaysBetween(2024-07-01, 2024-07-05) = %d, want 4", got)
	}
}

func TestSearchExhaustion(t *testing.T) {
	eng := newTestEngine()

	// Every weekday is a weekend day: no business day exists at all.
	allWeekend, err := eng.WithWeekendDays(
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday)
	if err != nil {
		t.Fatalf("WithWeekendDays error = %v", err)
	}

	if _, err := allWeekend.NextBusinessDay(date(2024, 6, 17)); !errors.Is(err, ErrNoBusinessDay) {
		t.Errorf("NextBusinessDay error = %v, want ErrNoBusinessDay", err)
	}
	if _, err := allWeekend.PreviousBusinessDay(date(2024, 6, 17)); !errors.Is(err, ErrNoBusinessDay) {
		t.Errorf("PreviousBusinessDay error = %v, want ErrNoBusinessDay", err)
	}
	if _, err := allWeekend.AddBusinessDays(3, date(2024, 6, 17)); !errors.Is(err, ErrNoBusinessDay) {
		t.Errorf("AddBusinessDays error = %v, want ErrNoBusinessDay", err)
	}
}

func TestWithMaxSkippedDays(t *testing.T) {
	// Holidays on every weekday of two consecutive weeks produce a 16-day
	// non-business run from 2024-06-15 through 2024-06-30.
	holidays := make([]time.Time, 0, 10)
	for day := 17; day <= 21; day++ {
		holidays = append(holidays, date(2024, 6, day))
	}
	for day := 24; day <= 28; day++ {
		holidays = append(holidays, date(2024, 6, day))
	}

	eng := newTestEngine().AddingHolidays(holidays...)
	friday := date(2024, 6, 14)

	if _, err := eng.NextBusinessDay(friday); !errors.Is(err, ErrNoBusinessDay) {
		t.Fatalf("default bound should be exhausted, got error %v", err)
	}

	wide, err := eng.WithMaxSkippedDays(16)
	if err != nil {
		t.Fatalf("WithMaxSkippedDays(16) error = %v", err)
	}

	got, err := wide.NextBusinessDay(friday)
	if err != nil {
		t.Fatalf("NextBusinessDay with widened bound error = %v", err)
	}
	if want := date(2024, 7, 1); !got.Equal(want) {
		t.Errorf("NextBusinessDay = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestWithMaxSkippedDaysRejectsNonPositive(t *testing.T) {
	eng := newTestEngine()

	for _, n := range []int{0, -1} {
		if _, err := eng.WithMaxSkippedDays(n); err == nil {
			t.Errorf("WithMaxSkippedDays(%d) should fail", n)
		}
	}
}
