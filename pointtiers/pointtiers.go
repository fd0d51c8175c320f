package pointtiers

import (
	"github.com/jrsteele09/loyalty-admin/formctl"
	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/internal/utils"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
	"github.com/jrsteele09/loyalty-admin/resource"
)

const Path = "/api/point-tiers"

// PointTier maps a points range onto an earning multiplier.
type PointTier struct {
	ID         string  `json:"id,omitempty"`
	Label      string  `json:"label"`
	MinPoints  int     `json:"minPoints"`
	MaxPoints  int     `json:"maxPoints"` // 0 means open-ended
	Multiplier float64 `json:"multiplier"`
	Active     bool    `json:"active"`
}

// Contains reports whether a points balance falls inside the tier's range.
func (t PointTier) Contains(points int) bool {
	if points < t.MinPoints {
		return false
	}
	return t.MaxPoints == 0 || points <= t.MaxPoints
}

func NewResource(gw *gateway.Client) resource.Resource[PointTier] {
	return resource.New[PointTier](gw, Path)
}

func NewController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel, pageSize int) (*listctl.Controller[PointTier], error) {
	return listctl.New(NewResource(gw).Endpoints(), gate, notices, query.NewState(pageSize),
		listctl.WithNoun[PointTier]("Point tier"))
}

func Template() formctl.Template[PointTier] {
	return formctl.Template[PointTier]{
		Empty: func() PointTier {
			return PointTier{Multiplier: 1, Active: true}
		},
		ID: func(t PointTier) string { return t.ID },
		Fields: func(t PointTier) map[string]string {
			return map[string]string{
				"label": t.Label,
			}
		},
		Apply: func(t *PointTier, name, value string) error {
			switch name {
			case "label":
				t.Label = value
			case "minPoints":
				t.MinPoints = utils.ToInt(value)
			case "maxPoints":
				t.MaxPoints = utils.ToInt(value)
			case "multiplier":
				t.Multiplier = utils.ToFloat(value)
			case "active":
				t.Active = utils.ToBool(value)
			}
			return nil
		},
		Required: []string{"label"},
	}
}
