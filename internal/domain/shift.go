package domain

import "time"

type ShiftCategory string

const (
	ShiftMorning   ShiftCategory = "morning"
	ShiftAfternoon ShiftCategory = "afternoon"
	ShiftNight     ShiftCategory = "night"
)

// ShiftAssignment is owned by the roster store. The exchange kernel reads it by
// id during swap and eligibility checks and reassigns it only when a swap
// completes.
type ShiftAssignment struct {
	ID        int64         `json:"id"`
	StaffID   int64         `json:"staffID"`
	Date      time.Time     `json:"date"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	Unit      string        `json:"unit"`
	Category  ShiftCategory `json:"category"`
	CreatedAt time.Time     `json:"createdAt"`
	Version   int32         `json:"-"`
}
