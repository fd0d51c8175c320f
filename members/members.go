package members

import (
	"time"

	"github.com/jrsteele09/loyalty-admin/formctl"
	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/internal/utils"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
	"github.com/jrsteele09/loyalty-admin/resource"
)

const Path = "/api/users"

// Status is a member account's standing. ToggleStatus flips between the
// two server-side.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// Member is an end-user account in the loyalty program.
type Member struct {
	ID            string    `json:"id,omitempty"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	PointsBalance int       `json:"pointsBalance,omitempty"` // Server-maintained
	RankingID     string    `json:"rankingId,omitempty"`
	Status        Status    `json:"status"`
	JoinedAt      time.Time `json:"joinedAt,omitempty"`
}

// Blocked reports whether the member is barred from the program.
func (m Member) Blocked() bool {
	return m.Status == StatusBlocked
}

func NewResource(gw *gateway.Client) resource.Resource[Member] {
	return resource.New[Member](gw, Path)
}

func NewController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel, pageSize int) (*listctl.Controller[Member], error) {
	return listctl.New(NewResource(gw).Endpoints(), gate, notices, query.NewState(pageSize),
		listctl.WithNoun[Member]("User"))
}

func Template() formctl.Template[Member] {
	return formctl.Template[Member]{
		Empty: func() Member {
			return Member{Status: StatusActive}
		},
		ID: func(m Member) string { return m.ID },
		Fields: func(m Member) map[string]string {
			return map[string]string{
				"email": m.Email,
				"name":  m.Name,
				"phone": m.Phone,
			}
		},
		Apply: func(m *Member, name, value string) error {
			switch name {
			case "email":
				m.Email = value
			case "name":
				m.Name = value
			case "phone":
				m.Phone = value
			case "rankingId":
				m.RankingID = value
			case "pointsBalance":
				m.PointsBalance = utils.ToInt(value)
			case "status":
				m.Status = Status(value)
			}
			return nil
		},
		Required: []string{"email", "name"},
	}
}
