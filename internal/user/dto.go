// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type ProfileResponse struct {
	UserEmail             string `json:"userEmail"`
	UserName              string `json:"userName"`
	RollNumber            string `json:"rollNumber"`
	PhoneNumber           string `json:"phoneNumber"`
	CollegeName           string `json:"collegeName"`
	CollegeCity           string `json:"collegeCity"`
	UserDepartment        string `json:"userDepartment"`
	AcademicYear          int    `json:"academicYear"`
	Degree                string `json:"degree"`
	NeedAccommodationDay1 bool   `json:"needAccommodationDay1"`
	NeedAccommodationDay2 bool   `json:"needAccommodationDay2"`
	IsAmrita              bool   `json:"isAmrita"`
}

type UserResponse struct {
	UserID int `json:"userID"`
	ProfileResponse
	AccountStatus AccountStatus `json:"accountStatus"`
	RoleID        int           `json:"roleID"`
	IsAdmin       bool          `json:"isAdmin"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type UserWithEventsResponse struct {
	UserID int `json:"userID"`
	ProfileResponse
	RoleID           int                            `json:"roleID"`
	RegisteredEvents core.JSONList[RegisteredEvent] `json:"registeredEvents"`
}

func ToProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		UserEmail:             p.Email,
		UserName:              p.Name,
		RollNumber:            p.RollNumber,
		PhoneNumber:           p.PhoneNumber,
		CollegeName:           p.CollegeName,
		CollegeCity:           p.CollegeCity,
		UserDepartment:        p.Department,
		AcademicYear:          p.AcademicYear,
		Degree:                p.Degree,
		NeedAccommodationDay1: p.NeedAccommodationDay1,
		NeedAccommodationDay2: p.NeedAccommodationDay2,
		IsAmrita:              p.IsAmrita,
	}
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		UserID:          u.ID,
		ProfileResponse: ToProfileResponse(u.Profile),
		AccountStatus:   u.AccountStatus,
		RoleID:          u.RoleID,
		IsAdmin:         u.IsAdmin(),
		CreatedAt:       u.CreatedAt,
	}
}

func ToUserWithEventsResponseList(users []UserWithEvents) []UserWithEventsResponse {
	responses := make([]UserWithEventsResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, UserWithEventsResponse{
			UserID:           u.ID,
			ProfileResponse:  ToProfileResponse(u.Profile),
			RoleID:           u.RoleID,
			RegisteredEvents: u.RegisteredEvents,
		})
	}
	return responses
}
