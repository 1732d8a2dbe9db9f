package projector

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// User roles.
const (
	RoleCustomer  = "customer"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleProvider  = "provider"
	RoleVerified  = "verified"
)

// ElevatedRoles receive a copy of every role change notification.
var ElevatedRoles = []string{RoleAdmin, RoleModerator}

// User is keyed by the lowercase hex address.
type User struct {
	Address      common.Address  `meddler:"address,address"`
	Role         string          `meddler:"role"`
	AuxRoles     string          `meddler:"aux_roles"`
	DefaultShare decimal.Decimal `meddler:"default_share"`
	Active       bool            `meddler:"active"`
	CreatedAt    int64           `meddler:"created_at"`
}

type UserSocial struct {
	ID          int64          `meddler:"id,pk"`
	UserAddress common.Address `meddler:"user_address,address"`
	Network     string         `meddler:"network"`
	Value       string         `meddler:"value"`
	Metadata    string         `meddler:"metadata"`
	CreatedAt   int64          `meddler:"created_at"`
}

// Place is an event place. MinPrice is in wei.
type Place struct {
	ID               uint64          `meddler:"id"`
	Provider         *common.Address `meddler:"provider,address"`
	Title            string          `meddler:"title"`
	Description      string          `meddler:"description"`
	Geometry         string          `meddler:"geometry"`
	MaxTickets       uint64          `meddler:"max_tickets"`
	MinTickets       uint64          `meddler:"min_tickets"`
	MinPrice         decimal.Decimal `meddler:"min_price"`
	MinDays          uint64          `meddler:"min_days"`
	DaysBeforeCancel uint64          `meddler:"days_before_cancel"`
	Available        bool            `meddler:"available"`
	Status           string          `meddler:"status"`
	CID              string          `meddler:"cid,zeroisnull"`
	CreatedAt        int64           `meddler:"created_at"`
	UpdatedAt        int64           `meddler:"updated_at"`
}

// Event is a ticketed event. TicketPrice is in wei, StartDate in unix seconds.
type Event struct {
	ID          uint64          `meddler:"id"`
	Creator     common.Address  `meddler:"creator,address"`
	PlaceID     uint64          `meddler:"place_id"`
	TicketPrice decimal.Decimal `meddler:"ticket_price"`
	TicketsSold uint64          `meddler:"tickets_sold"`
	StartDate   int64           `meddler:"start_date"`
	DaysAmount  uint64          `meddler:"days_amount"`
	Status      string          `meddler:"status"`
	Title       string          `meddler:"title"`
	Description string          `meddler:"description"`
	Cover       string          `meddler:"cover"`
	Website     string          `meddler:"website"`
	CID         string          `meddler:"cid,zeroisnull"`
	CreatedAt   int64           `meddler:"created_at"`
	UpdatedAt   int64           `meddler:"updated_at"`
}

type Ticket struct {
	ID        string          `meddler:"id"`
	EventID   uint64          `meddler:"event_id"`
	Owner     common.Address  `meddler:"owner,address"`
	Redeemed  bool            `meddler:"redeemed"`
	PricePaid decimal.Decimal `meddler:"price_paid"`
	CreatedAt int64           `meddler:"created_at"`
	UpdatedAt int64           `meddler:"updated_at"`
}

type Notification struct {
	ID          int64          `meddler:"id,pk"`
	UserAddress common.Address `meddler:"user_address,address"`
	Title       string         `meddler:"title"`
	Body        string         `meddler:"body"`
	CreatedAt   int64          `meddler:"created_at"`
	SeenAt      *int64         `meddler:"seen_at"`
}
