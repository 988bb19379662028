package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceStatusFor(t *testing.T) {
	final := decimal.NewFromInt(9000)

	tests := []struct {
		name     string
		paid     decimal.Decimal
		final    decimal.Decimal
		expected InvoiceStatus
	}{
		{"nothing paid", decimal.Zero, final, InvoiceStatusPending},
		{"partially paid", decimal.NewFromInt(100), final, InvoiceStatusPartial},
		{"one cent short", decimal.RequireFromString("8999.99"), final, InvoiceStatusPartial},
		{"exactly paid", decimal.NewFromInt(9000), final, InvoiceStatusPaid},
		{"overpaid", decimal.NewFromInt(9500), final, InvoiceStatusPaid},
		{"fully discounted", decimal.Zero, decimal.Zero, InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InvoiceStatusFor(tt.paid, tt.final))
		})
	}
}

func TestInvoice_AmountsAndOverpayment(t *testing.T) {
	invoice := &Invoice{Amount: decimal.NewFromInt(10000), Discount: decimal.NewFromInt(1000)}

	assert.True(t, invoice.FinalAmount().Equal(decimal.NewFromInt(9000)))
	assert.True(t, invoice.Balance(decimal.NewFromInt(9000)).IsZero())
	assert.True(t, invoice.Balance(decimal.NewFromInt(9500)).Equal(decimal.NewFromInt(-500)))

	summary := NewInvoiceSummary(invoice, decimal.NewFromInt(9500))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(-500)))
	assert.True(t, summary.PaidAmount.Equal(decimal.NewFromInt(9500)))
}

func TestIntervalsOverlap(t *testing.T) {
	at := NewClockTime

	tests := []struct {
		name       string
		aStart     ClockTime
		aEnd       ClockTime
		bStart     ClockTime
		bEnd       ClockTime
		overlapped bool
	}{
		{"touching after", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching before", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"containing", at(10, 30), at(11, 0), at(10, 0), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlapped, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.overlapped, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestClockTime_Codec(t *testing.T) {
	var c ClockTime
	require.NoError(t, json.Unmarshal([]byte(`"09:30"`), &c))
	assert.Equal(t, NewClockTime(9, 30), c)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `"09:30"`, string(out))

	require.NoError(t, c.Scan([]byte("14:05:00")))
	assert.Equal(t, NewClockTime(14, 5), c)

	v, err := NewClockTime(8, 0).Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", v)

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
	_, err = ParseClockTime("noon")
	assert.Error(t, err)

	for _, in := range []string{"10:30xyz", "10:30:00extra", "10:30:15", "10:", "1030"} {
		_, err = ParseClockTime(in)
		assert.Error(t, err, in)
	}
	c, err = ParseClockTime("10:30:00")
	require.NoError(t, err)
	assert.Equal(t, NewClockTime(10, 30), c)
}

func TestDate_Codec(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-02-14"`), &d))
	assert.Equal(t, NewDate(2025, time.February, 14), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-02-14"`, string(out))

	require.NoError(t, d.Scan(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-01", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"14.02.2025"`), &d))
}

func TestTeacherProfile_Calculate(t *testing.T) {
	rate := func(v int64) decimal.NullDecimal {
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
	}
	g1, g2 := uuid.New(), uuid.New()

	tests := []struct {
		name        string
		profile     TeacherProfile
		groups      []GroupLessons
		wantLessons int
		wantPayment decimal.Decimal
		wantErr     error
	}{
		{
			name:        "fixed per lesson",
			profile:     TeacherProfile{PaymentType: PaymentTypeFixed, PaymentPeriod: PaymentPeriodPerLesson, PaymentAmount: rate(500)},
			groups:      []GroupLessons{{GroupID: g1, LessonDuration: 2, Lessons: 8}},
			wantLessons: 8,
			wantPayment: decimal.NewFromInt(4000),
		},
		{
			name:        "hourly",
			profile:     TeacherProfile{PaymentType: PaymentTypeHourly, PaymentAmount: rate(300)},
			groups:      []GroupLessons{{GroupID: g1, LessonDuration: 2, Lessons: 8}},
			wantLessons: 8,
			wantPayment: decimal.NewFromInt(4800),
		},
		{
			name:    "hourly across groups with different durations",
			profile: TeacherProfile{PaymentType: PaymentTypeHourly, PaymentAmount: rate(300)},
			groups: []GroupLessons{
				{GroupID: g1, LessonDuration: 2, Lessons: 8},
				{GroupID: g2, LessonDuration: 1, Lessons: 4},
			},
			wantLessons: 12,
			wantPayment: decimal.NewFromInt(6000),
		},
		{
			name:    "monthly fixed rate is paid once across groups",
			profile: TeacherProfile{PaymentType: PaymentTypeFixed, PaymentPeriod: PaymentPeriodMonth, PaymentAmount: rate(20000)},
			groups: []GroupLessons{
				{GroupID: g1, LessonDuration: 2, Lessons: 8},
				{GroupID: g2, LessonDuration: 2, Lessons: 6},
			},
			wantLessons: 14,
			wantPayment: decimal.NewFromInt(20000),
		},
		{
			name:        "monthly fixed rate without groups",
			profile:     TeacherProfile{PaymentType: PaymentTypeFixed, PaymentPeriod: PaymentPeriodMonth, PaymentAmount: rate(20000)},
			wantPayment: decimal.Zero,
		},
		{
			name:        "fixed without period counts lessons",
			profile:     TeacherProfile{PaymentType: PaymentTypeFixed, PaymentAmount: rate(500)},
			groups:      []GroupLessons{{GroupID: g1, LessonDuration: 2, Lessons: 3}},
			wantLessons: 3,
			wantPayment: decimal.NewFromInt(1500),
		},
		{
			name:    "rate not set",
			profile: TeacherProfile{PaymentType: PaymentTypeFixed, PaymentPeriod: PaymentPeriodPerLesson},
			groups:  []GroupLessons{{GroupID: g1, LessonDuration: 2, Lessons: 3}},
			wantErr: ErrRateNotSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons, payment, err := tt.profile.Calculate(tt.groups)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLessons, lessons)
			assert.True(t, payment.Equal(tt.wantPayment), "Expected %v, but got %v", tt.wantPayment, payment)
		})
	}
}

func TestTeacherPayment_Balance(t *testing.T) {
	p := &TeacherPayment{
		Payment:    decimal.NewFromInt(4000),
		Bonus:      decimal.NewFromInt(500),
		PaidAmount: decimal.NewFromInt(1000),
	}
	assert.True(t, p.Balance().Equal(decimal.NewFromInt(3500)))
}

func TestBuildDailySchedule(t *testing.T) {
	room := Classroom{ID: uuid.New(), Number: "101"}
	other := Classroom{ID: uuid.New(), Number: "102"}
	date := NewDate(2025, time.March, 3)

	booking := ScheduleListItem{
		Schedule: Schedule{
			ID:          uuid.New(),
			ClassroomID: room.ID,
			Date:        date,
			StartTime:   NewClockTime(10, 0),
			EndTime:     NewClockTime(11, 30),
		},
		GroupName: "Go basics",
	}

	day := BuildDailySchedule(date, []Classroom{room, other}, []ScheduleListItem{booking})

	require.Len(t, day.Classrooms, 2)
	slots := day.Classrooms[0].Schedule
	require.Len(t, slots, DayEndHour-DayStartHour)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Nil(t, slots[0].Lesson)
	require.NotNil(t, slots[1].Lesson)
	assert.Equal(t, "Go basics", slots[1].Lesson.GroupName)
	require.NotNil(t, slots[2].Lesson)
	assert.Nil(t, slots[3].Lesson)

	for _, slot := range day.Classrooms[1].Schedule {
		assert.Nil(t, slot.Lesson)
	}
}

func TestFullYearIncome(t *testing.T) {
	months := FullYearIncome(2025, []MonthlyIncome{
		{Year: 2025, Month: 3, Income: decimal.NewFromInt(1500)},
	})

	require.Len(t, months, 12)
	assert.Equal(t, "January", months[0].Name)
	assert.True(t, months[0].Income.IsZero())
	assert.Equal(t, 3, months[2].Month)
	assert.True(t, months[2].Income.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "December", months[11].Name)
}

func TestMonthPeriod(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2025, time.January, "2025-01-01 - 2025-01-31"},
		{2024, time.February, "2024-02-01 - 2024-02-29"},
		{2025, time.February, "2025-02-01 - 2025-02-28"},
		{2025, time.December, "2025-12-01 - 2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthPeriod(tt.year, tt.month).String())
		})
	}
}

func TestPeriod_LessonWindow(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	from, to := MonthPeriod(2025, time.January).LessonWindow(loc)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), to)

	lastEvening := time.Date(2025, 1, 31, 20, 0, 0, 0, loc)
	assert.True(t, !lastEvening.Before(from) && lastEvening.Before(to))
}
