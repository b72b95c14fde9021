// AngelaMos | 2026
// entity.go

package user

import (
	"database/sql/driver"
	"time"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

// AccountStatus is stored as a SMALLINT and compared numerically
// everywhere.
type AccountStatus int16

const (
	StatusBlocked    AccountStatus = 0
	StatusUnverified AccountStatus = 1
	StatusActive     AccountStatus = 2
)

func (s AccountStatus) Valid() bool {
	return s >= StatusBlocked && s <= StatusActive
}

func (s AccountStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s AccountStatus) String() string {
	switch s {
	case StatusBlocked:
		return "blocked"
	case StatusUnverified:
		return "unverified"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

const RoleAdmin = 1

type Profile struct {
	Email                 string `db:"user_email"`
	Name                  string `db:"user_name"`
	RollNumber            string `db:"roll_number"`
	PhoneNumber           string `db:"phone_number"`
	CollegeName           string `db:"college_name"`
	CollegeCity           string `db:"college_city"`
	Department            string `db:"user_department"`
	AcademicYear          int    `db:"academic_year"`
	Degree                string `db:"degree"`
	NeedAccommodationDay1 bool   `db:"need_accommodation_day1"`
	NeedAccommodationDay2 bool   `db:"need_accommodation_day2"`
	IsAmrita              bool   `db:"is_amrita"`
}

type User struct {
	ID int `db:"user_id"`
	Profile
	AccountStatus AccountStatus `db:"account_status"`
	RoleID        int           `db:"role_id"`
	CreatedAt     time.Time     `db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}

type RegisteredEvent struct {
	EventID   int    `json:"eventID"`
	EventName string `json:"eventName"`
	EventFee  int    `json:"eventFee"`
}

// UserWithEvents is one row of the admin user listing: the user plus every
// event they appear in through group_details.
type UserWithEvents struct {
	User
	RegisteredEvents core.JSONList[RegisteredEvent] `db:"registered_events"`
}
