// AngelaMos | 2026
// entity.go

package notification

import "time"

// Details is the editable part of a notification.
type Details struct {
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Author      string    `db:"author"`
	Venue       string    `db:"venue"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
}

type Notification struct {
	ID int `db:"notification_id"`
	Details
	CreatedAt time.Time `db:"created_at"`
}
