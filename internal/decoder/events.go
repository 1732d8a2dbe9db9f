package decoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Well-known AccessControl role identifiers.
var (
	DefaultAdminRole = common.Hash{}
	AdminRole        = crypto.Keccak256Hash([]byte("ADMIN_ROLE"))
	ModeratorRole    = crypto.Keccak256Hash([]byte("MODERATOR_ROLE"))
	ProviderRole     = crypto.Keccak256Hash([]byte("PROVIDER_ROLE"))
	VerifiedRole     = crypto.Keccak256Hash([]byte("VERIFIED_ROLE"))
)

// Event is a decoded contract log.
type Event interface {
	// EventName is "<module>.<event>".
	EventName() string
	// Source identifies the log the event was decoded from.
	Source() Meta

	setSource(Meta)
}

// Meta identifies a log on chain.
type Meta struct {
	Contract    common.Address
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
}

func (m Meta) Source() Meta       { return m }
func (m *Meta) setSource(src Meta) { *m = src }

// Multihash is the (digest, hash function, size) triple carried by content-bearing events.
type Multihash struct {
	Digest       [32]byte `abi:"digest"`
	HashFunction uint8    `abi:"hashFunction"`
	Size         uint8    `abi:"size"`
}

// PlaceTerms are the capacity and policy fields shared by the place events.
type PlaceTerms struct {
	MaxTickets       *big.Int `abi:"maxTickets"`
	MinTickets       *big.Int `abi:"minTickets"`
	MinPrice         *big.Int `abi:"minPrice"`
	MinDays          *big.Int `abi:"minDays"`
	DaysBeforeCancel *big.Int `abi:"daysBeforeCancel"`
	Available        bool     `abi:"available"`
}

type NewEventPlaceRequest struct {
	Meta
	ID        *big.Int       `abi:"id"`
	Requester common.Address `abi:"requester"`
	PlaceTerms
	Multihash
}

func (*NewEventPlaceRequest) EventName() string { return "places.NewEventPlaceRequest" }

type EventPlaceUpdated struct {
	Meta
	ID       *big.Int       `abi:"id"`
	Provider common.Address `abi:"provider"`
	PlaceTerms
	Status uint8 `abi:"status"`
	Multihash
}

func (*EventPlaceUpdated) EventName() string { return "places.EventPlaceUpdated" }

// EventTerms are the fields shared by event requests and updates.
type EventTerms struct {
	ID           *big.Int       `abi:"id"`
	Creator      common.Address `abi:"creator"`
	EventPlaceID *big.Int       `abi:"eventPlaceId"`
	TicketPrice  *big.Int       `abi:"ticketPrice"`
	StartDate    *big.Int       `abi:"startDate"`
	DaysAmount   *big.Int       `abi:"daysAmount"`
}

type NewEventRequest struct {
	Meta
	EventTerms
	Multihash
}

func (*NewEventRequest) EventName() string { return "events.NewEventRequest" }

type EventUpdated struct {
	Meta
	EventTerms
	Multihash
}

func (*EventUpdated) EventName() string { return "events.EventUpdated" }

type EventStatusChanged struct {
	Meta
	EventID *big.Int `abi:"eventId"`
	Status  uint8    `abi:"status"`
}

func (*EventStatusChanged) EventName() string { return "events.EventStatusChanged" }

type TicketMinted struct {
	Meta
	EventID  *big.Int       `abi:"eventId"`
	TicketID *big.Int       `abi:"ticketId"`
	Owner    common.Address `abi:"owner"`
	Multihash
}

func (*TicketMinted) EventName() string { return "tickets.TicketMinted" }

type TicketRedeemed struct {
	Meta
	TicketID *big.Int `abi:"ticketId"`
}

func (*TicketRedeemed) EventName() string { return "tickets.TicketRedeemed" }

// TicketTransfer is the ERC721 Transfer of a ticket.
type TicketTransfer struct {
	Meta
	From    common.Address `abi:"from"`
	To      common.Address `abi:"to"`
	TokenID *big.Int       `abi:"tokenId"`
}

func (*TicketTransfer) EventName() string { return "tickets.Transfer" }

// TicketApproval is the ERC721 Approval of a ticket.
type TicketApproval struct {
	Meta
	Owner    common.Address `abi:"owner"`
	Approved common.Address `abi:"approved"`
	TokenID  *big.Int       `abi:"tokenId"`
}

func (*TicketApproval) EventName() string { return "tickets.Approval" }

type ApprovalForAll struct {
	Meta
	Owner    common.Address `abi:"owner"`
	Operator common.Address `abi:"operator"`
	Approved bool           `abi:"approved"`
}

func (*ApprovalForAll) EventName() string { return "tickets.ApprovalForAll" }

type RoleGranted struct {
	Meta
	Role    common.Hash    `abi:"role"`
	Account common.Address `abi:"account"`
	Sender  common.Address `abi:"sender"`
}

func (*RoleGranted) EventName() string { return "roles.RoleGranted" }

type RoleRevoked struct {
	Meta
	Role    common.Hash    `abi:"role"`
	Account common.Address `abi:"account"`
	Sender  common.Address `abi:"sender"`
}

func (*RoleRevoked) EventName() string { return "roles.RoleRevoked" }

type RoleAdminChanged struct {
	Meta
	Role              common.Hash `abi:"role"`
	PreviousAdminRole common.Hash `abi:"previousAdminRole"`
	NewAdminRole      common.Hash `abi:"newAdminRole"`
}

func (*RoleAdminChanged) EventName() string { return "roles.RoleAdminChanged" }

// TokenTransfer is the ERC20 Transfer of the payment token.
type TokenTransfer struct {
	Meta
	From  common.Address `abi:"from"`
	To    common.Address `abi:"to"`
	Value *big.Int       `abi:"value"`
}

func (*TokenTransfer) EventName() string { return "token.Transfer" }

// TokenApproval is the ERC20 Approval of the payment token.
type TokenApproval struct {
	Meta
	Owner   common.Address `abi:"owner"`
	Spender common.Address `abi:"spender"`
	Value   *big.Int       `abi:"value"`
}

func (*TokenApproval) EventName() string { return "token.Approval" }

func init() {
	Register(ModulePlaces, "NewEventPlaceRequest", func() Event { return &NewEventPlaceRequest{} })
	Register(ModulePlaces, "EventPlaceUpdated", func() Event { return &EventPlaceUpdated{} })
	Register(ModuleEvents, "NewEventRequest", func() Event { return &NewEventRequest{} })
	Register(ModuleEvents, "EventUpdated", func() Event { return &EventUpdated{} })
	Register(ModuleEvents, "EventStatusChanged", func() Event { return &EventStatusChanged{} })
	Register(ModuleTickets, "TicketMinted", func() Event { return &TicketMinted{} })
	Register(ModuleTickets, "TicketRedeemed", func() Event { return &TicketRedeemed{} })
	Register(ModuleTickets, "Transfer", func() Event { return &TicketTransfer{} })
	Register(ModuleTickets, "Approval", func() Event { return &TicketApproval{} })
	Register(ModuleTickets, "ApprovalForAll", func() Event { return &ApprovalForAll{} })
	Register(ModuleRoles, "RoleGranted", func() Event { return &RoleGranted{} })
	Register(ModuleRoles, "RoleRevoked", func() Event { return &RoleRevoked{} })
	Register(ModuleRoles, "RoleAdminChanged", func() Event { return &RoleAdminChanged{} })
	Register(ModuleToken, "Transfer", func() Event { return &TokenTransfer{} })
	Register(ModuleToken, "Approval", func() Event { return &TokenApproval{} })
}
