package models

import "testing"

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"day", PeriodDay, false},
		{"7d", Period7Days, false},
		{"30d", Period30Days, false},
		{"month", PeriodMonth, false},
		{"6mo", Period6Months, false},
		{"12mo", Period12Months, false},
		{"week", "", true},
		{"", "", true},
		{"DAY", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePeriod(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateRange_Deterministic(t *testing.T) {
	// The mapping is a pure function: same token, same parameter, every time.
	for _, p := range Periods() {
		first, err := p.DateRange()
		if err != nil {
			t.Fatalf("DateRange(%q) failed: %v", p, err)
		}
		for i := 0; i < 3; i++ {
			got, err := p.DateRange()
			if err != nil {
				t.Fatalf("DateRange(%q) failed: %v", p, err)
			}
			if got != first {
				t.Errorf("DateRange(%q) not deterministic: %q then %q", p, first, got)
			}
		}
	}

	if r, _ := Period7Days.DateRange(); r != "7d" {
		t.Errorf("DateRange(7d) = %q, want \"7d\"", r)
	}
}

func TestDateRange_Unknown(t *testing.T) {
	if _, err := Period("fortnight").DateRange(); err == nil {
		t.Error("DateRange should fail for unknown period")
	}
}

func TestPeriodCycle(t *testing.T) {
	all := Periods()

	// Cycling forward through every token returns to the start.
	p := all[0]
	for range all {
		p = NextPeriod(p)
	}
	if p != all[0] {
		t.Errorf("full forward cycle ended at %q, want %q", p, all[0])
	}

	// Forward then backward is identity, and only valid tokens are emitted.
	for _, start := range all {
		next := NextPeriod(start)
		if _, err := ParsePeriod(next.String()); err != nil {
			t.Errorf("NextPeriod(%q) emitted invalid token %q", start, next)
		}
		if back := PrevPeriod(next); back != start {
			t.Errorf("PrevPeriod(NextPeriod(%q)) = %q", start, back)
		}
	}

	// Unknown input falls back to day rather than propagating garbage.
	if NextPeriod(Period("bogus")) != PeriodDay {
		t.Error("NextPeriod should fall back to day for unknown input")
	}
}

func TestPeriodLabel(t *testing.T) {
	if PeriodDay.Label() != "Last 24 hours" {
		t.Errorf("Label(day) = %q", PeriodDay.Label())
	}
	if Period("bogus").Label() != "bogus" {
		t.Error("Label should fall back to the raw token")
	}
}
