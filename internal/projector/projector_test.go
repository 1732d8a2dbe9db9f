package projector

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/tests/helpers"
	"github.com/stretchr/testify/require"
)

var (
	requester = common.HexToAddress("0x000000000000000000000000000000000000aaa1")
	provider  = common.HexToAddress("0x000000000000000000000000000000000000bbb1")
	creator   = common.HexToAddress("0x000000000000000000000000000000000000ccc1")
	owner     = common.HexToAddress("0x000000000000000000000000000000000000ddd1")
)

// memStore is a content store keyed by sha256 CIDs.
type memStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func (m *memStore) Get(_ context.Context, cid string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.docs[cid]
	if !ok {
		return nil, fmt.Errorf("cid %s not pinned", cid)
	}
	return data, nil
}

func (m *memStore) Add(_ context.Context, data []byte) (string, error) {
	mh := decoder.Multihash{Digest: sha256.Sum256(data), HashFunction: 0x12, Size: 32}
	cid, err := content.CID(mh)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[cid] = data
	return cid, nil
}

type fixture struct {
	*Projector
	store *memStore
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := &memStore{docs: map[string][]byte{}}
	log := logger.NewNopLogger()
	f := &fixture{
		Projector: New(helpers.NewTestDB(t, "projector.sqlite"), content.NewResolver(store, nil, log), log),
		store:     store,
		now:       time.Unix(1_690_000_000, 0),
	}
	f.Projector.now = func() time.Time { return f.now }
	return f
}

// pin stores doc and returns the multihash and CID that reference it.
func (f *fixture) pin(t *testing.T, doc any) (decoder.Multihash, string) {
	t.Helper()

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	cid, err := f.store.Add(context.Background(), data)
	require.NoError(t, err)
	mh, err := content.ParseCID(cid)
	require.NoError(t, err)
	return mh, cid
}

func (f *fixture) apply(t *testing.T, ev decoder.Event) {
	t.Helper()
	require.NoError(t, f.Apply(context.Background(), ev))
}

func (f *fixture) notifications(t *testing.T, addr common.Address) []*Notification {
	t.Helper()

	out, err := ListNotifications(f.db, addr)
	require.NoError(t, err)
	return out
}

func placeTerms(maxT, minT, minPrice, minDays, daysBeforeCancel int64) decoder.PlaceTerms {
	return decoder.PlaceTerms{
		MaxTickets:       big.NewInt(maxT),
		MinTickets:       big.NewInt(minT),
		MinPrice:         big.NewInt(minPrice),
		MinDays:          big.NewInt(minDays),
		DaysBeforeCancel: big.NewInt(daysBeforeCancel),
		Available:        true,
	}
}

func eventTermsFor(id, placeID, price, start, days int64) decoder.EventTerms {
	return decoder.EventTerms{
		ID:           big.NewInt(id),
		Creator:      creator,
		EventPlaceID: big.NewInt(placeID),
		TicketPrice:  big.NewInt(price),
		StartDate:    big.NewInt(start),
		DaysAmount:   big.NewInt(days),
	}
}

// seedPlace creates approved place 1 owned by provider.
func (f *fixture) seedPlace(t *testing.T) {
	t.Helper()

	mh, _ := f.pin(t, map[string]any{"title": "Hub"})
	f.apply(t, &decoder.EventPlaceUpdated{
		ID: big.NewInt(1), Provider: provider, PlaceTerms: placeTerms(100, 10, 50, 7, 3), Status: 1, Multihash: mh,
	})
}

// seedEvent creates event 7 at place 1 and returns the socials multihash.
func (f *fixture) seedEvent(t *testing.T) decoder.Multihash {
	t.Helper()

	socialMH, socialCID := f.pin(t, map[string]any{"network": "telegram", "value": "1234"})
	eventMH, _ := f.pin(t, map[string]any{
		"title": "T", "description": "D", "cover": "QmCover", "website": "https://x", "socialsCid": socialCID,
	})
	f.apply(t, &decoder.NewEventRequest{EventTerms: eventTermsFor(7, 1, 200, 1_700_000_000, 3), Multihash: eventMH})
	return socialMH
}

func TestProjector_PlaceCreatedThenUpdated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	mhA, cidA := f.pin(t, map[string]any{"title": "Hub"})
	f.apply(t, &decoder.NewEventPlaceRequest{
		ID: big.NewInt(1), Requester: requester, PlaceTerms: placeTerms(100, 10, 50, 7, 3), Multihash: mhA,
	})

	place, err := GetPlace(f.db, 1)
	require.NoError(t, err)
	require.Equal(t, "Hub", place.Title)
	require.Equal(t, StatusSubmitted, place.Status)
	require.Nil(t, place.Provider)
	require.Equal(t, uint64(100), place.MaxTickets)
	require.Equal(t, "50", place.MinPrice.String())
	require.Equal(t, cidA, place.CID)

	_, err = GetUser(f.db, requester)
	require.NoError(t, err)

	notes := f.notifications(t, requester)
	require.Len(t, notes, 1)
	require.Equal(t, "Event place request submitted", notes[0].Title)

	mhB, _ := f.pin(t, map[string]any{"title": "Hub2"})
	f.apply(t, &decoder.EventPlaceUpdated{
		ID: big.NewInt(1), Provider: provider, PlaceTerms: placeTerms(150, 15, 75, 10, 5), Status: 1, Multihash: mhB,
	})

	place, err = GetPlace(f.db, 1)
	require.NoError(t, err)
	require.Equal(t, "Hub2", place.Title)
	require.Equal(t, StatusApproved, place.Status)
	require.NotNil(t, place.Provider)
	require.Equal(t, provider, *place.Provider)
	require.Equal(t, uint64(150), place.MaxTickets)
	require.Equal(t, uint64(5), place.DaysBeforeCancel)
	require.Len(t, f.notifications(t, provider), 1)
}

func TestProjector_PlaceRequestRedeliveryKeepsState(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	mh, _ := f.pin(t, map[string]any{"title": "Hub"})
	ev := &decoder.NewEventPlaceRequest{
		ID: big.NewInt(1), Requester: requester, PlaceTerms: placeTerms(100, 10, 50, 7, 3), Multihash: mh,
	}
	f.apply(t, ev)
	before, err := GetPlace(f.db, 1)
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	f.apply(t, ev)

	after, err := GetPlace(f.db, 1)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestProjector_PlaceValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	err := f.Apply(ctx, &decoder.NewEventPlaceRequest{
		ID: big.NewInt(1), Requester: requester, PlaceTerms: placeTerms(5, 10, 50, 7, 3),
	})
	require.ErrorContains(t, err, "exceeds maxTickets")

	err = f.Apply(ctx, &decoder.EventPlaceUpdated{
		ID: big.NewInt(1), Provider: provider, PlaceTerms: placeTerms(100, 10, 50, 7, 3), Status: 9,
	})
	require.ErrorIs(t, err, ErrUnknownStatus)

	_, err = GetPlace(f.db, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjector_PlaceUpdateWithoutContentKeepsDocument(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)

	f.apply(t, &decoder.EventPlaceUpdated{
		ID: big.NewInt(1), Provider: provider, PlaceTerms: placeTerms(100, 10, 50, 7, 3), Status: 2,
	})

	place, err := GetPlace(f.db, 1)
	require.NoError(t, err)
	require.Equal(t, "Hub", place.Title)
	require.Equal(t, StatusDeclined, place.Status)
}

func TestProjector_EventRequestResolvesSocials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)
	f.seedEvent(t)

	event, err := GetEvent(f.db, 7)
	require.NoError(t, err)
	require.Equal(t, creator, event.Creator)
	require.Equal(t, uint64(1), event.PlaceID)
	require.Equal(t, "200", event.TicketPrice.String())
	require.Equal(t, uint64(0), event.TicketsSold)
	require.Equal(t, int64(1_700_000_000), event.StartDate)
	require.Equal(t, StatusSubmitted, event.Status)
	require.Equal(t, "T", event.Title)
	require.Equal(t, "https://x", event.Website)

	socials, err := ListSocials(f.db, creator)
	require.NoError(t, err)
	require.Len(t, socials, 1)
	require.Equal(t, "telegram", socials[0].Network)
	require.Equal(t, "1234", socials[0].Value)

	require.Len(t, f.notifications(t, creator), 1)
	// place approval plus the event request
	require.Len(t, f.notifications(t, provider), 2)

	// redelivery links no second identity
	f.seedEvent(t)
	socials, err = ListSocials(f.db, creator)
	require.NoError(t, err)
	require.Len(t, socials, 1)
}

func TestProjector_EventRequestMissingPlace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	err := f.Apply(context.Background(), &decoder.NewEventRequest{EventTerms: eventTermsFor(7, 999, 200, 1, 1)})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = GetEvent(f.db, 7)
	require.ErrorIs(t, err, ErrNotFound)
	// the transaction rolled back, so the creator was not created either
	_, err = GetUser(f.db, creator)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjector_EventUpdated(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)
	f.seedEvent(t)

	mh, _ := f.pin(t, map[string]any{"title": "T2", "website": "https://y"})
	f.apply(t, &decoder.EventUpdated{EventTerms: eventTermsFor(7, 1, 300, 1_700_100_000, 5), Multihash: mh})

	event, err := GetEvent(f.db, 7)
	require.NoError(t, err)
	require.Equal(t, "T2", event.Title)
	require.Equal(t, "https://y", event.Website)
	require.Equal(t, "300", event.TicketPrice.String())
	require.Equal(t, uint64(5), event.DaysAmount)
	require.Equal(t, StatusSubmitted, event.Status)

	err = f.Apply(context.Background(), &decoder.EventUpdated{EventTerms: eventTermsFor(8, 1, 300, 1, 1)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjector_TicketMintIdempotence(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)
	socialMH := f.seedEvent(t)

	mint := &decoder.TicketMinted{EventID: big.NewInt(7), TicketID: big.NewInt(42), Owner: owner, Multihash: socialMH}
	f.apply(t, mint)
	f.apply(t, mint)

	ticket, err := GetTicket(f.db, "42")
	require.NoError(t, err)
	require.Equal(t, owner, ticket.Owner)
	require.Equal(t, uint64(7), ticket.EventID)
	require.Equal(t, "200", ticket.PricePaid.String())
	require.False(t, ticket.Redeemed)

	event, err := GetEvent(f.db, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(1), event.TicketsSold)

	socials, err := ListSocials(f.db, owner)
	require.NoError(t, err)
	require.Len(t, socials, 1)
	require.Len(t, f.notifications(t, owner), 1)

	err = f.Apply(context.Background(), &decoder.TicketMinted{EventID: big.NewInt(8), TicketID: big.NewInt(43), Owner: owner})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjector_TicketRedeemIsMonotonic(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)
	f.seedEvent(t)
	f.apply(t, &decoder.TicketMinted{EventID: big.NewInt(7), TicketID: big.NewInt(42), Owner: owner})

	redeem := &decoder.TicketRedeemed{TicketID: big.NewInt(42)}
	f.apply(t, redeem)
	f.apply(t, redeem)

	ticket, err := GetTicket(f.db, "42")
	require.NoError(t, err)
	require.True(t, ticket.Redeemed)
	// mint plus a single redemption
	require.Len(t, f.notifications(t, owner), 2)

	err = f.Apply(context.Background(), &decoder.TicketRedeemed{TicketID: big.NewInt(99)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjector_EventStatusChanges(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)
	f.seedEvent(t)

	status := func() string {
		event, err := GetEvent(f.db, 7)
		require.NoError(t, err)
		return event.Status
	}

	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 1})
	require.Equal(t, StatusApproved, status())

	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 3})
	require.Equal(t, StatusCancelled, status())

	notes := f.notifications(t, provider)
	last := notes[len(notes)-1]
	require.Equal(t, TitleEventStatus, last.Title)
	require.Contains(t, last.Body, "Earnings: 0 ETH")

	// cancelled is a sink
	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 1})
	require.Equal(t, StatusCancelled, status())
	require.Len(t, f.notifications(t, provider), len(notes))

	err := f.Apply(context.Background(), &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 7})
	require.ErrorIs(t, err, ErrUnknownStatus)
	err = f.Apply(context.Background(), &decoder.EventStatusChanged{EventID: big.NewInt(8), Status: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjector_EventStatusSkippingAheadIsRetried(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)
	f.seedEvent(t)

	// cancellation arrives while the approval is still pending
	err := f.Apply(context.Background(), &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 3})
	require.ErrorIs(t, err, ErrStatusOutOfOrder)

	event, err := GetEvent(f.db, 7)
	require.NoError(t, err)
	require.Equal(t, StatusSubmitted, event.Status)

	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 1})
	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 3})

	event, err = GetEvent(f.db, 7)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, event.Status)

	// going back stays a no-op
	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(7), Status: 0})
}

func TestReachable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusCancelled, true},
		{StatusSubmitted, StatusClosed, true},
		{StatusApproved, StatusSubmitted, false},
		{StatusDeclined, StatusCancelled, false},
		{StatusCancelled, StatusClosed, false},
		{StatusClosed, StatusClosed, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Reachable(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestProjector_ClosedEventReportsEarnings(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedPlace(t)

	eventMH, _ := f.pin(t, map[string]any{"title": "Gig"})
	price := new(big.Int).Mul(big.NewInt(15), big.NewInt(1e17)) // 1.5 ETH
	terms := eventTermsFor(9, 1, 0, 1_700_000_000, 1)
	terms.TicketPrice = price
	f.apply(t, &decoder.NewEventRequest{EventTerms: terms, Multihash: eventMH})
	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(9), Status: 1})
	for i := int64(1); i <= 2; i++ {
		f.apply(t, &decoder.TicketMinted{EventID: big.NewInt(9), TicketID: big.NewInt(i), Owner: owner})
	}
	f.apply(t, &decoder.EventStatusChanged{EventID: big.NewInt(9), Status: 4})

	notes := f.notifications(t, provider)
	require.Contains(t, notes[len(notes)-1].Body, "Earnings: 3 ETH")
}

func TestProjector_Roles(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	admin := common.HexToAddress("0x00000000000000000000000000000000000000ad")

	f.apply(t, &decoder.RoleGranted{Role: decoder.AdminRole, Account: admin})
	f.apply(t, &decoder.RoleGranted{Role: decoder.ProviderRole, Account: provider})

	user, err := GetUser(f.db, provider)
	require.NoError(t, err)
	require.Equal(t, RoleProvider, user.Role)
	require.Equal(t, RoleProvider, user.AuxRoles)

	require.Len(t, f.notifications(t, provider), 1)
	// own grant plus the copy of the provider grant
	require.Len(t, f.notifications(t, admin), 2)

	f.apply(t, &decoder.RoleRevoked{Role: decoder.ProviderRole, Account: provider})
	user, err = GetUser(f.db, provider)
	require.NoError(t, err)
	require.Equal(t, RoleCustomer, user.Role)
	require.Empty(t, user.AuxRoles)

	notes := f.notifications(t, admin)
	require.Equal(t, TitleRoleRevoked, notes[len(notes)-1].Title)
	require.True(t, strings.Contains(notes[len(notes)-1].Body, provider.Hex()))

	// default admin role changes touch nothing
	f.apply(t, &decoder.RoleGranted{Role: decoder.DefaultAdminRole, Account: owner})
	_, err = GetUser(f.db, owner)
	require.ErrorIs(t, err, ErrNotFound)

	err = f.Apply(context.Background(), &decoder.RoleGranted{Role: common.HexToHash("0x01"), Account: owner})
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestProjector_ElevatedRoleSurvivesLaterGrant(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	admin := common.HexToAddress("0x00000000000000000000000000000000000000ad")

	f.apply(t, &decoder.RoleGranted{Role: decoder.AdminRole, Account: admin})
	f.apply(t, &decoder.RoleGranted{Role: decoder.VerifiedRole, Account: admin})

	user, err := GetUser(f.db, admin)
	require.NoError(t, err)
	require.Equal(t, RoleVerified, user.Role)
	require.Equal(t, "admin,verified", user.AuxRoles)
	require.Len(t, f.notifications(t, admin), 2)

	f.apply(t, &decoder.RoleGranted{Role: decoder.ProviderRole, Account: provider})

	notes := f.notifications(t, admin)
	require.Len(t, notes, 3)
	require.Contains(t, notes[2].Body, provider.Hex())

	// dropping the admin role stops the copies
	f.apply(t, &decoder.RoleRevoked{Role: decoder.AdminRole, Account: admin})
	before := len(f.notifications(t, admin))
	f.apply(t, &decoder.RoleRevoked{Role: decoder.ProviderRole, Account: provider})
	require.Len(t, f.notifications(t, admin), before)
}

func TestProjector_IgnoredEvents(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	for _, ev := range []decoder.Event{
		&decoder.RoleAdminChanged{},
		&decoder.TicketTransfer{TokenID: big.NewInt(1)},
		&decoder.TicketApproval{TokenID: big.NewInt(1)},
		&decoder.ApprovalForAll{},
		&decoder.TokenTransfer{Value: big.NewInt(1)},
		&decoder.TokenApproval{Value: big.NewInt(1)},
	} {
		f.apply(t, ev)
	}
}
