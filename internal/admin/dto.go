// AngelaMos | 2026
// dto.go

package admin

import (
	"time"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

type ChangeAccountStatusRequest struct {
	StudentID     int  `json:"studentID"     validate:"required,gt=0"`
	AccountStatus *int `json:"accountStatus" validate:"required,min=0,max=2"`
}

type ChangeUserRoleRequest struct {
	StudentID int `json:"studentID" validate:"required,gt=0"`
	RoleID    int `json:"roleID"    validate:"required,gt=0"`
}

type CreateRoleRequest struct {
	RoleID   int    `json:"roleID"   validate:"required,gt=0"`
	RoleName string `json:"roleName" validate:"required,min=1,max=64"`
}

type StatusChangeResponse struct {
	StudentID     int                `json:"studentID"`
	AccountStatus user.AccountStatus `json:"accountStatus"`
}

type RoleChangeResponse struct {
	StudentID int `json:"studentID"`
	RoleID    int `json:"roleID"`
}

type RoleResponse struct {
	RoleID    int        `json:"roleID"`
	RoleName  string     `json:"roleName"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type EventRevenueResponse struct {
	EventID         int   `json:"eventID"`
	TotalAmountPaid int64 `json:"totalAmountPaid"`
}

type TransactionResponse struct {
	TxnID       string             `json:"txnID"`
	UserID      int                `json:"userID"`
	EventID     int                `json:"eventID"`
	Amount      int                `json:"amount"`
	ProductInfo string             `json:"productInfo"`
	UserName    string             `json:"userName"`
	UserEmail   string             `json:"userEmail"`
	PhoneNumber string             `json:"phoneNumber"`
	TxnStatus   RegistrationStatus `json:"txnStatus"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type TeamResponse struct {
	RegistrationID int                       `json:"registrationID"`
	TeamName       *string                   `json:"teamName"`
	TeamMembers    core.JSONList[TeamMember] `json:"teamMembers"`
}

type StudentResponse struct {
	RegistrationID int `json:"registrationID"`
	UserID         int `json:"userID"`
	EventID        int `json:"eventID"`
	user.ProfileResponse
}

func ToRoleResponse(r *Role) RoleResponse {
	resp := RoleResponse{RoleID: r.RoleID, RoleName: r.RoleName}
	if !r.CreatedAt.IsZero() {
		createdAt := r.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

func ToRoleResponseList(roles []Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, ToRoleResponse(&roles[i]))
	}
	return out
}

func ToEventRevenueResponseList(rows []EventRevenue) []EventRevenueResponse {
	out := make([]EventRevenueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, EventRevenueResponse(r))
	}
	return out
}

func ToTransactionResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		TxnID:       t.TxnID,
		UserID:      t.UserID,
		EventID:     t.EventID,
		Amount:      t.Amount,
		ProductInfo: t.ProductInfo,
		UserName:    t.UserName,
		UserEmail:   t.UserEmail,
		PhoneNumber: t.PhoneNumber,
		TxnStatus:   t.TxnStatus,
		CreatedAt:   t.CreatedAt,
	}
}

func ToTransactionResponseList(txns []Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return out
}

// ToRosterResponse returns a []TeamResponse for group events and a
// []StudentResponse otherwise.
func ToRosterResponse(r *Roster) any {
	if r.IsGroup {
		teams := make([]TeamResponse, 0, len(r.Teams))
		for _, t := range r.Teams {
			teams = append(teams, TeamResponse{
				RegistrationID: t.RegistrationID,
				TeamName:       t.TeamName,
				TeamMembers:    t.Members,
			})
		}
		return teams
	}

	students := make([]StudentResponse, 0, len(r.Students))
	for _, s := range r.Students {
		students = append(students, StudentResponse{
			RegistrationID:  s.RegistrationID,
			UserID:          s.UserID,
			EventID:         s.EventID,
			ProfileResponse: user.ToProfileResponse(s.Profile),
		})
	}
	return students
}
