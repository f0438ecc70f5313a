package catalog

import (
	"context"
	"testing"

	"canbrs/internal/database"
	"canbrs/internal/domain"
	"canbrs/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingBroadcaster struct {
	messages []interface{}
}

func (b *recordingBroadcaster) Broadcast(message interface{}) {
	b.messages = append(b.messages, message)
}

func newTestService(t *testing.T) (*Service, *recordingBroadcaster, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.Reservation{}, &domain.ReservationItem{}))

	broadcaster := &recordingBroadcaster{}
	return NewService(repository.NewListingRepository(db), broadcaster), broadcaster, db
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreate_Equipment(t *testing.T) {
	svc, broadcaster, _ := newTestService(t)

	l, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Monobloc Chair",
		Description: "Stackable chair",
		Type:        "equipment",
		Inventory:   intPtr(200),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ListingEquipment, l.Kind)
	assert.Equal(t, 200, l.Inventory)
	assert.Len(t, broadcaster.messages, 1)
}

func TestCreate_EquipmentRequiresInventory(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Monobloc Chair",
		Description: "Stackable chair",
		Type:        "equipment",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_FacilityRequiresAddressAndZeroesInventory(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Covered Court",
		Description: "Multi-purpose court",
		Type:        "facility",
	})
	assert.ErrorIs(t, err, ErrValidation)

	l, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Covered Court",
		Description: "Multi-purpose court",
		Type:        "facility",
		Inventory:   intPtr(5),
		Address:     "Barangay Hall Compound",
	})
	require.NoError(t, err)
	assert.Zero(t, l.Inventory, "facilities are availability-gated, never counted")
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Thing",
		Description: "Desc",
		Type:        "vehicle",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, broadcaster, _ := newTestService(t)

	l, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Folding Table",
		Description: "Six-seater",
		Type:        "equipment",
		Inventory:   intPtr(40),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), l.ID, UpdateListingRequest{
		Inventory: intPtr(35),
	})

	require.NoError(t, err)
	assert.Equal(t, "Folding Table", updated.Name)
	assert.Equal(t, 35, updated.Inventory)
	assert.Len(t, broadcaster.messages, 2, "create + update")
}

func TestUpdate_NegativeInventoryRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	l, err := svc.Create(context.Background(), CreateListingRequest{
		Name:        "Folding Table",
		Description: "Six-seater",
		Type:        "equipment",
		Inventory:   intPtr(40),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), l.ID, UpdateListingRequest{
		Inventory: intPtr(-1),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 404, UpdateListingRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestDelete_BlockedWhileReferenced(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, CreateListingRequest{
		Name:        "Sound System",
		Description: "Speakers and mixer",
		Type:        "equipment",
		Inventory:   intPtr(3),
	})
	require.NoError(t, err)

	// A historical reservation still points at the listing.
	item := domain.ReservationItem{ReservationID: 1, ListingID: l.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	err = svc.Delete(ctx, l.ID)
	assert.ErrorIs(t, err, ErrListingInUse)
}

func TestDelete_Unreferenced(t *testing.T) {
	svc, broadcaster, _ := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, CreateListingRequest{
		Name:        "Event Tent",
		Description: "20x20 tent",
		Type:        "equipment",
		Inventory:   intPtr(10),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, l.ID))
	_, err = svc.Get(ctx, l.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.Len(t, broadcaster.messages, 2, "create + delete")
}
