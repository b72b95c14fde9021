// AngelaMos | 2026
// entity.go

package organizer

import "time"

// Details is the editable part of an organizer.
type Details struct {
	Name        string `db:"organizer_name"`
	PhoneNumber string `db:"phone_number"`
}

type Organizer struct {
	ID int `db:"organizer_id"`
	Details
	CreatedAt time.Time `db:"created_at"`
}
