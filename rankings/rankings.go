package rankings

import (
	"github.com/jrsteele09/loyalty-admin/formctl"
	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/internal/utils"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
	"github.com/jrsteele09/loyalty-admin/resource"
)

const Path = "/api/rankings"

// Ranking is a named loyalty level unlocked at a points threshold.
type Ranking struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	PointsThreshold int    `json:"pointsThreshold"` // Points needed to unlock this level
	Benefits        string `json:"benefits,omitempty"`
	Order           int    `json:"order"` // Display position, lowest first
	Active          bool   `json:"active"`
}

func NewResource(gw *gateway.Client) resource.Resource[Ranking] {
	return resource.New[Ranking](gw, Path)
}

func NewController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel, pageSize int) (*listctl.Controller[Ranking], error) {
	return listctl.New(NewResource(gw).Endpoints(), gate, notices, query.NewState(pageSize),
		listctl.WithNoun[Ranking]("Ranking"))
}

func Template() formctl.Template[Ranking] {
	return formctl.Template[Ranking]{
		Empty: func() Ranking {
			return Ranking{Active: true}
		},
		ID: func(r Ranking) string { return r.ID },
		Fields: func(r Ranking) map[string]string {
			return map[string]string{
				"name":     r.Name,
				"benefits": r.Benefits,
			}
		},
		Apply: func(r *Ranking, name, value string) error {
			switch name {
			case "name":
				r.Name = value
			case "benefits":
				r.Benefits = value
			case "pointsThreshold":
				r.PointsThreshold = utils.ToInt(value)
			case "order":
				r.Order = utils.ToInt(value)
			case "active":
				r.Active = utils.ToBool(value)
			}
			return nil
		},
		Required: []string{"name"},
	}
}
