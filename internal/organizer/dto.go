// AngelaMos | 2026
// dto.go

package organizer

type UpdateRequest struct {
	OrganizerID   int    `json:"organizerID"   validate:"required,gt=0"`
	OrganizerName string `json:"organizerName" validate:"required,max=255"`
	PhoneNumber   string `json:"phoneNumber"   validate:"required,e164|numeric,min=7,max=16"`
}

func (r UpdateRequest) Details() Details {
	return Details{Name: r.OrganizerName, PhoneNumber: r.PhoneNumber}
}

type Response struct {
	OrganizerID   int    `json:"organizerID"`
	OrganizerName string `json:"organizerName"`
	PhoneNumber   string `json:"phoneNumber"`
}

func ToResponse(o *Organizer) Response {
	return Response{
		OrganizerID:   o.ID,
		OrganizerName: o.Name,
		PhoneNumber:   o.PhoneNumber,
	}
}
