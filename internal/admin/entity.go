// AngelaMos | 2026
// entity.go

package admin

import (
	"database/sql/driver"
	"time"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

// RegistrationStatus is the payment state of a registration or
// transaction, stored as a SMALLINT.
type RegistrationStatus int16

const (
	RegistrationFailed  RegistrationStatus = 0
	RegistrationPending RegistrationStatus = 1
	RegistrationPaid    RegistrationStatus = 2
)

func (s RegistrationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

type Role struct {
	RoleID    int       `db:"role_id"`
	RoleName  string    `db:"role_name"`
	CreatedAt time.Time `db:"created_at"`
}

type Event struct {
	EventID   int    `db:"event_id"`
	EventName string `db:"event_name"`
	EventFee  int    `db:"event_fee"`
	IsGroup   bool   `db:"is_group"`
}

type EventRevenue struct {
	EventID         int   `db:"event_id"`
	TotalAmountPaid int64 `db:"total_amount_paid"`
}

type Transaction struct {
	TxnID       string             `db:"txn_id"`
	UserID      int                `db:"user_id"`
	EventID     int                `db:"event_id"`
	Amount      int                `db:"amount"`
	ProductInfo string             `db:"product_info"`
	UserName    string             `db:"user_name"`
	UserEmail   string             `db:"user_email"`
	PhoneNumber string             `db:"phone_number"`
	TxnStatus   RegistrationStatus `db:"txn_status"`
	CreatedAt   time.Time          `db:"created_at"`
}

// TeamMember is one element of a team's json_agg member list.
type TeamMember struct {
	UserID  int    `json:"userID"`
	EventID int    `json:"eventID"`
	Role    string `json:"role"`
	user.ProfileResponse
}

type Team struct {
	RegistrationID int                       `db:"registration_id"`
	TeamName       *string                   `db:"team_name"`
	Members        core.JSONList[TeamMember] `db:"team_members"`
}

type Student struct {
	RegistrationID int `db:"registration_id"`
	UserID         int `db:"user_id"`
	EventID        int `db:"event_id"`
	user.Profile
}

// Roster is the participant list of one event. Exactly one of Teams and
// Students is populated, depending on IsGroup.
type Roster struct {
	EventID  int
	IsGroup  bool
	Teams    []Team
	Students []Student
}

func (r *Roster) Empty() bool {
	if r.IsGroup {
		return len(r.Teams) == 0
	}
	return len(r.Students) == 0
}

type StatusChange struct {
	UserID        int
	AccountStatus user.AccountStatus
}

type RoleChange struct {
	UserID int
	RoleID int
}

// TransactionRef is a parsed TXN-<userID>-<eventID> identifier.
type TransactionRef struct {
	TxnID   string
	UserID  int
	EventID int
}
