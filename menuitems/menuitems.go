package menuitems

import (
	"github.com/jrsteele09/loyalty-admin/formctl"
	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/internal/utils"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
	"github.com/jrsteele09/loyalty-admin/resource"
)

const Path = "/api/menu-items"

// MenuItem is a product on the business's menu.
type MenuItem struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Available   bool    `json:"available"`
}

func NewResource(gw *gateway.Client) resource.Resource[MenuItem] {
	return resource.New[MenuItem](gw, Path)
}

func NewController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel, pageSize int) (*listctl.Controller[MenuItem], error) {
	return listctl.New(NewResource(gw).Endpoints(), gate, notices, query.NewState(pageSize),
		listctl.WithNoun[MenuItem]("Menu item"))
}

func Template() formctl.Template[MenuItem] {
	return formctl.Template[MenuItem]{
		Empty: func() MenuItem {
			return MenuItem{Available: true}
		},
		ID: func(m MenuItem) string { return m.ID },
		Fields: func(m MenuItem) map[string]string {
			return map[string]string{
				"name":        m.Name,
				"category":    m.Category,
				"description": m.Description,
			}
		},
		Apply: func(m *MenuItem, name, value string) error {
			switch name {
			case "name":
				m.Name = value
			case "category":
				m.Category = value
			case "description":
				m.Description = value
			case "imageUrl":
				m.ImageURL = value
			case "price":
				m.Price = utils.ToFloat(value)
			case "available":
				m.Available = utils.ToBool(value)
			}
			return nil
		},
		Required: []string{"name", "category"},
	}
}
