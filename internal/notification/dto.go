// AngelaMos | 2026
// dto.go

package notification

import "time"

type AddRequest struct {
	Title       string    `json:"title"       validate:"required,max=255"`
	Description string    `json:"description" validate:"required"`
	Author      string    `json:"author"      validate:"required,max=255"`
	Venue       string    `json:"venue"       validate:"max=255"`
	StartDate   time.Time `json:"startDate"   validate:"required"`
	EndDate     time.Time `json:"endDate"     validate:"required,gtefield=StartDate"`
}

func (r AddRequest) Details() Details {
	return Details{
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Author,
		Venue:       r.Venue,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

type UpdateRequest struct {
	NotificationID int `json:"notificationID" validate:"required,gt=0"`
	AddRequest
}

type Response struct {
	NotificationID int       `json:"notificationID"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Author         string    `json:"author"`
	Venue          string    `json:"venue"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
}

func ToResponse(n *Notification) Response {
	return Response{
		NotificationID: n.ID,
		Title:          n.Title,
		Description:    n.Description,
		Author:         n.Author,
		Venue:          n.Venue,
		StartDate:      n.StartDate,
		EndDate:        n.EndDate,
		CreatedAt:      n.CreatedAt,
	}
}

func ToResponseList(ns []Notification) []Response {
	out := make([]Response, 0, len(ns))
	for i := range ns {
		out = append(out, ToResponse(&ns[i]))
	}
	return out
}
