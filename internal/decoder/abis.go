package decoder

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract modules in decoding order.
const (
	ModulePlaces  = "places"
	ModuleEvents  = "events"
	ModuleTickets = "tickets"
	ModuleRoles   = "roles"
	ModuleToken   = "token"
)

// Modules lists the contract modules in the order the decoder tries them.
var Modules = []string{ModulePlaces, ModuleEvents, ModuleTickets, ModuleRoles, ModuleToken}

const multihashInputs = `
	{"indexed":false,"internalType":"bytes32","name":"digest","type":"bytes32"},
	{"indexed":false,"internalType":"uint8","name":"hashFunction","type":"uint8"},
	{"indexed":false,"internalType":"uint8","name":"size","type":"uint8"}`

const placeInputs = `
	{"indexed":false,"internalType":"uint256","name":"maxTickets","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"minTickets","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"minPrice","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"minDays","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"daysBeforeCancel","type":"uint256"},
	{"indexed":false,"internalType":"bool","name":"available","type":"bool"},`

const eventInputs = `
	{"indexed":true,"internalType":"uint256","name":"id","type":"uint256"},
	{"indexed":true,"internalType":"address","name":"creator","type":"address"},
	{"indexed":true,"internalType":"uint256","name":"eventPlaceId","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"ticketPrice","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"startDate","type":"uint256"},
	{"indexed":false,"internalType":"uint256","name":"daysAmount","type":"uint256"},`

const roleEventInputs = `
	{"indexed":true,"internalType":"bytes32","name":"role","type":"bytes32"},
	{"indexed":true,"internalType":"address","name":"account","type":"address"},
	{"indexed":true,"internalType":"address","name":"sender","type":"address"}`

// PlacesABI is the event place registry.
const PlacesABI = `[
{"anonymous":false,"name":"NewEventPlaceRequest","type":"event","inputs":[
	{"indexed":true,"internalType":"uint256","name":"id","type":"uint256"},
	{"indexed":true,"internalType":"address","name":"requester","type":"address"},` + placeInputs + multihashInputs + `]},
{"anonymous":false,"name":"EventPlaceUpdated","type":"event","inputs":[
	{"indexed":true,"internalType":"uint256","name":"id","type":"uint256"},
	{"indexed":true,"internalType":"address","name":"provider","type":"address"},` + placeInputs + `
	{"indexed":false,"internalType":"uint8","name":"status","type":"uint8"},` + multihashInputs + `]}
]`

// EventsABI is the event registry.
const EventsABI = `[
{"anonymous":false,"name":"NewEventRequest","type":"event","inputs":[` + eventInputs + multihashInputs + `]},
{"anonymous":false,"name":"EventUpdated","type":"event","inputs":[` + eventInputs + multihashInputs + `]},
{"anonymous":false,"name":"EventStatusChanged","type":"event","inputs":[
	{"indexed":true,"internalType":"uint256","name":"eventId","type":"uint256"},
	{"indexed":false,"internalType":"uint8","name":"status","type":"uint8"}]}
]`

// TicketsABI is the ERC721 ticket contract.
const TicketsABI = `[
{"anonymous":false,"name":"TicketMinted","type":"event","inputs":[
	{"indexed":true,"internalType":"uint256","name":"eventId","type":"uint256"},
	{"indexed":true,"internalType":"uint256","name":"ticketId","type":"uint256"},
	{"indexed":true,"internalType":"address","name":"owner","type":"address"},` + multihashInputs + `]},
{"anonymous":false,"name":"TicketRedeemed","type":"event","inputs":[
	{"indexed":true,"internalType":"uint256","name":"ticketId","type":"uint256"}]},
{"anonymous":false,"name":"Transfer","type":"event","inputs":[
	{"indexed":true,"internalType":"address","name":"from","type":"address"},
	{"indexed":true,"internalType":"address","name":"to","type":"address"},
	{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"}]},
{"anonymous":false,"name":"Approval","type":"event","inputs":[
	{"indexed":true,"internalType":"address","name":"owner","type":"address"},
	{"indexed":true,"internalType":"address","name":"approved","type":"address"},
	{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"}]},
{"anonymous":false,"name":"ApprovalForAll","type":"event","inputs":[
	{"indexed":true,"internalType":"address","name":"owner","type":"address"},
	{"indexed":true,"internalType":"address","name":"operator","type":"address"},
	{"indexed":false,"internalType":"bool","name":"approved","type":"bool"}]}
]`

// RolesABI is the AccessControl contract, including the calls used to grant roles.
const RolesABI = `[
{"anonymous":false,"name":"RoleGranted","type":"event","inputs":[` + roleEventInputs + `]},
{"anonymous":false,"name":"RoleRevoked","type":"event","inputs":[` + roleEventInputs + `]},
{"anonymous":false,"name":"RoleAdminChanged","type":"event","inputs":[
	{"indexed":true,"internalType":"bytes32","name":"role","type":"bytes32"},
	{"indexed":true,"internalType":"bytes32","name":"previousAdminRole","type":"bytes32"},
	{"indexed":true,"internalType":"bytes32","name":"newAdminRole","type":"bytes32"}]},
{"name":"getRoleAdmin","type":"function","stateMutability":"view",
	"inputs":[{"internalType":"bytes32","name":"role","type":"bytes32"}],
	"outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}]},
{"name":"hasRole","type":"function","stateMutability":"view",
	"inputs":[{"internalType":"bytes32","name":"role","type":"bytes32"},
		{"internalType":"address","name":"account","type":"address"}],
	"outputs":[{"internalType":"bool","name":"","type":"bool"}]},
{"name":"grantRole","type":"function","stateMutability":"nonpayable",
	"inputs":[{"internalType":"bytes32","name":"role","type":"bytes32"},
		{"internalType":"address","name":"account","type":"address"}],
	"outputs":[]}
]`

// TokenABI is the ERC20 payment token.
const TokenABI = `[
{"anonymous":false,"name":"Transfer","type":"event","inputs":[
	{"indexed":true,"internalType":"address","name":"from","type":"address"},
	{"indexed":true,"internalType":"address","name":"to","type":"address"},
	{"indexed":false,"internalType":"uint256","name":"value","type":"uint256"}]},
{"anonymous":false,"name":"Approval","type":"event","inputs":[
	{"indexed":true,"internalType":"address","name":"owner","type":"address"},
	{"indexed":true,"internalType":"address","name":"spender","type":"address"},
	{"indexed":false,"internalType":"uint256","name":"value","type":"uint256"}]}
]`

var moduleABIs = map[string]string{
	ModulePlaces:  PlacesABI,
	ModuleEvents:  EventsABI,
	ModuleTickets: TicketsABI,
	ModuleRoles:   RolesABI,
	ModuleToken:   TokenABI,
}

// ParseABI parses the ABI of a contract module.
func ParseABI(module string) (abi.ABI, error) {
	raw, ok := moduleABIs[module]
	if !ok {
		return abi.ABI{}, fmt.Errorf("unknown contract module %q", module)
	}

	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse %s ABI: %w", module, err)
	}
	return parsed, nil
}
