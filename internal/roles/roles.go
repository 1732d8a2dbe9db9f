package roles

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
)

// ErrNotAdmin is returned when the operator account does not hold the admin role of the verified role.
var ErrNotAdmin = errors.New("operator account is not an admin of the verified role")

// Contract is the subset of the AccessControl contract used to grant roles.
type Contract interface {
	GetRoleAdmin(opts *bind.CallOpts, role ethcommon.Hash) (ethcommon.Hash, error)
	HasRole(opts *bind.CallOpts, role ethcommon.Hash, account ethcommon.Address) (bool, error)
	GrantRole(opts *bind.TransactOpts, role ethcommon.Hash, account ethcommon.Address) (*types.Transaction, error)
}

// AccessControl is a Go binding around the AccessControl contract.
type AccessControl struct {
	contract *bind.BoundContract
}

// NewAccessControl binds the AccessControl contract deployed at address.
func NewAccessControl(address ethcommon.Address, backend bind.ContractBackend) (*AccessControl, error) {
	parsed, err := abi.JSON(strings.NewReader(decoder.RolesABI))
	if err != nil {
		return nil, fmt.Errorf("parse roles ABI: %w", err)
	}
	return &AccessControl{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// GetRoleAdmin is a free data retrieval call binding the contract method 0x248a9ca3.
func (a *AccessControl) GetRoleAdmin(opts *bind.CallOpts, role ethcommon.Hash) (ethcommon.Hash, error) {
	var out []interface{}
	if err := a.contract.Call(opts, &out, "getRoleAdmin", [32]byte(role)); err != nil {
		return ethcommon.Hash{}, err
	}
	return ethcommon.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// HasRole is a free data retrieval call binding the contract method 0x91d14854.
func (a *AccessControl) HasRole(opts *bind.CallOpts, role ethcommon.Hash, account ethcommon.Address) (bool, error) {
	var out []interface{}
	if err := a.contract.Call(opts, &out, "hasRole", [32]byte(role), account); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// GrantRole is a paid mutator transaction binding the contract method 0x2f2ff15d.
func (a *AccessControl) GrantRole(opts *bind.TransactOpts, role ethcommon.Hash, account ethcommon.Address) (*types.Transaction, error) {
	return a.contract.Transact(opts, "grantRole", [32]byte(role), account)
}

// Granter grants the verified role on behalf of the operator account.
type Granter struct {
	contract Contract
	signer   *bind.TransactOpts
	log      *logger.Logger
}

// NewGranter creates a Granter that signs with the given transactor.
func NewGranter(contract Contract, signer *bind.TransactOpts, log *logger.Logger) *Granter {
	return &Granter{
		contract: contract,
		signer:   signer,
		log:      log.WithComponent(common.ComponentRoles),
	}
}

// Operator returns the address that signs grant transactions.
func (g *Granter) Operator() ethcommon.Address {
	return g.signer.From
}

// Grant submits a grantRole transaction for the verified role and returns its hash.
// The operator must hold the admin role of the verified role.
func (g *Granter) Grant(ctx context.Context, account ethcommon.Address) (ethcommon.Hash, error) {
	callOpts := &bind.CallOpts{Context: ctx, From: g.signer.From}

	adminRole, err := g.contract.GetRoleAdmin(callOpts, decoder.VerifiedRole)
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("get admin of verified role: %w", err)
	}

	isAdmin, err := g.contract.HasRole(callOpts, adminRole, g.signer.From)
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("check operator role: %w", err)
	}
	if !isAdmin {
		g.log.Warnw("operator cannot grant the verified role",
			"operator", g.signer.From.Hex(), "admin_role", adminRole.Hex())
		return ethcommon.Hash{}, ErrNotAdmin
	}

	opts := *g.signer
	opts.Context = ctx

	tx, err := g.contract.GrantRole(&opts, decoder.VerifiedRole, account)
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("submit grantRole: %w", err)
	}

	g.log.Infow("verified role grant submitted", "account", account.Hex(), "tx_hash", tx.Hash().Hex())
	return tx.Hash(), nil
}

type chainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// NewGranterFromConfig builds a Granter from the admin configuration. When no chain id
// is configured the backend is asked for it.
func NewGranterFromConfig(ctx context.Context, cfg *config.AdminConfig, backend bind.ContractBackend,
	log *logger.Logger) (*Granter, error) {
	if cfg == nil || cfg.PrivateKey == "" {
		return nil, errors.New("admin.private_key is required to grant roles")
	}
	if cfg.RolesContract == "" {
		return nil, errors.New("admin.roles_contract is required to grant roles")
	}

	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	chainID := new(big.Int).SetUint64(cfg.ChainID)
	if cfg.ChainID == 0 {
		reader, ok := backend.(chainIDReader)
		if !ok {
			return nil, errors.New("admin.chain_id is required for this backend")
		}
		if chainID, err = reader.ChainID(ctx); err != nil {
			return nil, fmt.Errorf("get chain id: %w", err)
		}
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	contract, err := NewAccessControl(ethcommon.HexToAddress(cfg.RolesContract), backend)
	if err != nil {
		return nil, err
	}

	return NewGranter(contract, signer, log), nil
}

// ParsePrivateKey parses a hex encoded secp256k1 key, with or without the 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid admin private key: %w", err)
	}
	return key, nil
}
