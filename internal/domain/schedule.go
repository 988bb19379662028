package domain

import (
	"github.com/google/uuid"
)

// Schedule is a booking of a classroom and a teacher for a group on one day
type Schedule struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ClassroomID uuid.UUID `json:"classroom_id" db:"classroom_id"`
	GroupID     uuid.UUID `json:"group_id" db:"group_id"`
	TeacherID   uuid.UUID `json:"teacher_id" db:"teacher_id"`
	Date        Date      `json:"date" db:"date"`
	StartTime   ClockTime `json:"start_time" db:"start_time"`
	EndTime     ClockTime `json:"end_time" db:"end_time"`
	Note        string    `json:"note" db:"note"`
}

// Overlaps applies half-open interval semantics: touching slots are compatible
func (s *Schedule) Overlaps(start, end ClockTime) bool {
	return IntervalsOverlap(s.StartTime, s.EndTime, start, end)
}

// Slot is the part of a booking the conflict checks look at
type Slot struct {
	ClassroomID uuid.UUID
	TeacherID   uuid.UUID
	Date        Date
	StartTime   ClockTime
	EndTime     ClockTime
	// ExcludeID skips the booking being rescheduled
	ExcludeID *uuid.UUID
}

func (s *Schedule) Slot() Slot {
	return Slot{
		ClassroomID: s.ClassroomID,
		TeacherID:   s.TeacherID,
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
	}
}

type ScheduleRequest struct {
	ClassroomID uuid.UUID `json:"classroom_id" validate:"required"`
	GroupID     uuid.UUID `json:"group_id" validate:"required"`
	TeacherID   uuid.UUID `json:"teacher_id" validate:"required"`
	Date        Date      `json:"date" validate:"required"`
	StartTime   ClockTime `json:"start_time" validate:"gte=0,lt=1440"`
	EndTime     ClockTime `json:"end_time" validate:"required,lt=1440"`
	Note        string    `json:"note"`
}

type ScheduleFilter struct {
	Date        *Date
	ClassroomID *uuid.UUID
	GroupID     *uuid.UUID
	TeacherID   *uuid.UUID
}

// ScheduleListItem is a booking enriched with display names
type ScheduleListItem struct {
	Schedule
	ClassroomNumber string `json:"classroom_number" db:"classroom_number"`
	GroupName       string `json:"group_name" db:"group_name"`
	TeacherName     string `json:"teacher_name" db:"teacher_name"`
}

// HourSlot is one hour of a classroom's day
type HourSlot struct {
	Time   string            `json:"time"`
	Lesson *ScheduleListItem `json:"lesson"`
}

type ClassroomDay struct {
	Classroom
	Schedule []HourSlot `json:"schedule"`
}

type DailySchedule struct {
	Date       Date           `json:"date"`
	Classrooms []ClassroomDay `json:"classrooms"`
}

const (
	DayStartHour = 9
	DayEndHour   = 21
)

// BuildDailySchedule lays bookings out on hourly slots from 9:00 to 20:00 per classroom.
// A slot shows the first booking that overlaps its hour.
func BuildDailySchedule(date Date, classrooms []Classroom, bookings []ScheduleListItem) *DailySchedule {
	day := &DailySchedule{Date: date, Classrooms: make([]ClassroomDay, 0, len(classrooms))}

	for _, classroom := range classrooms {
		cd := ClassroomDay{Classroom: classroom, Schedule: make([]HourSlot, 0, DayEndHour-DayStartHour)}
		for hour := DayStartHour; hour < DayEndHour; hour++ {
			slot := HourSlot{Time: NewClockTime(hour, 0).String()}
			for i := range bookings {
				b := &bookings[i]
				if b.ClassroomID == classroom.ID && b.Overlaps(NewClockTime(hour, 0), NewClockTime(hour+1, 0)) {
					slot.Lesson = b
					break
				}
			}
			cd.Schedule = append(cd.Schedule, slot)
		}
		day.Classrooms = append(day.Classrooms, cd)
	}

	return day
}
