package transactions

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

const Path = "/api/transactions"

// Transaction is an immutable points-ledger entry: a balance change with
// before/after snapshots. Entries are never updated or deleted; an admin
// correction is a new adjustment entry.
type Transaction struct {
	ID            string    `json:"id,omitempty"`
	MemberID      string    `json:"memberId"`
	Delta         int       `json:"delta"` // Positive earns, negative spends
	BalanceBefore int       `json:"balanceBefore,omitempty"`
	BalanceAfter  int       `json:"balanceAfter,omitempty"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

func NewResource(gw *gateway.Client) resource.Resource[Transaction] {
	return resource.New[Transaction](gw, Path)
}

// NewController exposes the ledger as list-and-create only: the remaining
// mutation endpoints stay nil and report unsupported.
func NewController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel, pageSize int) (*listctl.Controller[Transaction], error) {
	return listctl.New(NewResource(gw).ReadCreateEndpoints(), gate, notices, query.NewState(pageSize),
		listctl.WithNoun[Transaction]("Adjustment"))
}

// Template drives the manual-adjustment form. Adjustments are always
// create-mode; the ID func pins the draft there.
func Template() formctl.Template[Transaction] {
	return formctl.Template[Transaction]{
		Empty: func() Transaction {
			return Transaction{}
		},
		ID: func(Transaction) string { return "" },
		Fields: func(t Transaction) map[string]string {
			return map[string]string{
				"memberId": t.MemberID,
				"reason":   t.Reason,
			}
		},
		Apply: func(t *Transaction, name, value string) error {
			switch name {
			case "memberId":
				t.MemberID = value
			case "reason":
				t.Reason = value
			case "delta":
				t.Delta = utils.ToInt(value)
			}
			return nil
		},
		Required: []string{"memberId", "reason"},
	}
}
