package domain

import (
	"time"

	"github.com/google/uuid"
)

type Direction struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

const (
	GroupFormatOnline  = "online"
	GroupFormatOffline = "offline"
)

type Group struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Name            string     `json:"group_name" db:"group_name"`
	DirectionID     uuid.UUID  `json:"direction_id" db:"direction_id"`
	TeacherID       *uuid.UUID `json:"teacher_id,omitempty" db:"teacher_id"`
	Format          string     `json:"format" db:"format"`
	LessonDuration  int        `json:"lesson_duration" db:"lesson_duration"`
	LessonsPerMonth int        `json:"lessons_per_month" db:"lessons_per_month"`
	CreatedAt       time.Time  `json:"creation_date" db:"created_at"`
}

type Course struct {
	ID           uuid.UUID `json:"id" db:"id"`
	GroupID      uuid.UUID `json:"group_id" db:"group_id"`
	CourseNumber int       `json:"course_number" db:"course_number"`
}

type Month struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"course_id" db:"course_id"`
	MonthNumber int       `json:"month_number" db:"month_number"`
	Title       string    `json:"title" db:"title"`
}

type Lesson struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	MonthID uuid.UUID  `json:"month_id" db:"month_id"`
	Title   string     `json:"title" db:"title"`
	Order   int        `json:"order" db:"lesson_order"`
	Date    *time.Time `json:"date,omitempty" db:"lesson_date"`
}

type Classroom struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Number   string    `json:"number" db:"number"`
	Capacity int       `json:"capacity" db:"capacity"`
}

type CreateDirectionRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateGroupRequest struct {
	Name            string     `json:"group_name" validate:"required,max=255"`
	DirectionID     uuid.UUID  `json:"direction_id" validate:"required"`
	TeacherID       *uuid.UUID `json:"teacher_id"`
	Format          string     `json:"format" validate:"required,oneof=online offline"`
	LessonDuration  int        `json:"lesson_duration" validate:"required,gt=0"`
	LessonsPerMonth int        `json:"lessons_per_month" validate:"gte=0"`
}

type CreateCourseRequest struct {
	GroupID      uuid.UUID `json:"group_id" validate:"required"`
	CourseNumber int       `json:"course_number" validate:"required,gt=0"`
}

type CreateMonthRequest struct {
	CourseID    uuid.UUID `json:"course_id" validate:"required"`
	MonthNumber int       `json:"month_number" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,max=255"`
}

type CreateLessonRequest struct {
	MonthID uuid.UUID  `json:"month_id" validate:"required"`
	Title   string     `json:"title" validate:"required,max=255"`
	Order   int        `json:"order" validate:"required,gt=0"`
	Date    *time.Time `json:"date"`
}

type CreateClassroomRequest struct {
	Number   string `json:"number" validate:"required,max=10"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}
