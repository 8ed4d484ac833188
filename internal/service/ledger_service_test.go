package service_test

import (
	"context"
	"testing"

	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── LedgerService factory for tests ──────────────────────────────────────────

type ledgerFixture struct {
	svc       service.LedgerService
	inventory *stubInventoryRepo
	rooms     *stubRoomRepo
	sales     *stubSaleRepo
	staff     *stubStaffRepo
	prices    *stubPriceChangeRepo
}

func buildLedgerSvc(roomNumbers ...string) *ledgerFixture {
	if len(roomNumbers) == 0 {
		roomNumbers = []string{"101", "102"}
	}
	f := &ledgerFixture{
		inventory: newStubInventoryRepo(),
		rooms:     newStubRoomRepo(roomNumbers...),
		sales:     newStubSaleRepo(),
		staff:     newStubStaffRepo(),
		prices:    &stubPriceChangeRepo{},
	}
	f.svc = service.NewLedgerService(f.inventory, f.rooms, f.sales, f.staff, f.prices, nil, nil)
	return f
}

func seedItem(f *ledgerFixture, name, volume string, price float64, stock int) *model.InventoryItem {
	item := &model.InventoryItem{
		ID:        uuid.New(),
		Name:      name,
		Volume:    volume,
		UnitPrice: decimal.NewFromFloat(price),
		Stock:     stock,
	}
	_ = f.inventory.Create(context.Background(), item)
	return item
}

func seedStaff(f *ledgerFixture, name, role string) *model.StaffMember {
	member := &model.StaffMember{ID: uuid.New(), Name: name, Role: role}
	_ = f.staff.Create(context.Background(), member)
	return member
}

func addLine(t *testing.T, f *ledgerFixture, room, itemID string, qty int, staffID *string) *dto.RoomResponse {
	t.Helper()
	resp, err := f.svc.AddLineToRoom(context.Background(), room, dto.AddLineRequest{
		ItemID:   itemID,
		Quantity: qty,
		StaffID:  staffID,
	})
	require.NoError(t, err)
	return resp
}

// ── Room order tests ─────────────────────────────────────────────────────────

func TestAddLineToRoom_DecrementsStockAndSnapshotsPrice(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Thums Up", "250ml", 20, 10)

	room := addLine(t, f, "101", item.ID.String(), 2, nil)

	assert.Equal(t, model.RoomOccupied, room.Status)
	require.Len(t, room.Lines, 1)
	assert.Equal(t, "Thums Up 250ml", room.Lines[0].DisplayName)
	assert.Equal(t, "40", room.Lines[0].LineTotal.String())
	assert.Equal(t, "40", room.OpenTotal.String())

	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 8, stored.Stock)
}

func TestAddLineToRoom_MergeKeepsOriginalSnapshot(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 10)

	addLine(t, f, "101", item.ID.String(), 1, nil)

	// Catalog price changes between the two adds ...
	require.NoError(t, f.svc.SetPrice(context.Background(), item.ID, decimal.NewFromInt(30), nil))

	// ... but the merged line still totals at the add-time snapshot.
	room := addLine(t, f, "101", item.ID.String(), 2, nil)
	require.Len(t, room.Lines, 1)
	assert.Equal(t, 3, room.Lines[0].Quantity)
	assert.Equal(t, "20", room.Lines[0].UnitPrice.String())
	assert.Equal(t, "60", room.Lines[0].LineTotal.String())
}

func TestAddLineToRoom_MergesPerStaffMember(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Kinley Water", "1L", 20, 20)
	alice := seedStaff(f, "Alice", "runner")
	bob := seedStaff(f, "Bob", "runner")

	aliceID := alice.ID.String()
	bobID := bob.ID.String()

	addLine(t, f, "101", item.ID.String(), 1, &aliceID)
	room := addLine(t, f, "101", item.ID.String(), 1, &bobID)
	require.Len(t, room.Lines, 2)

	// Same item + same runner merges; a different runner gets its own line.
	room = addLine(t, f, "101", item.ID.String(), 2, &aliceID)
	require.Len(t, room.Lines, 2)
	assert.Equal(t, 3, room.Lines[0].Quantity)
	assert.Equal(t, "Alice", *room.Lines[0].StaffName)
	assert.Equal(t, 1, room.Lines[1].Quantity)
}

func TestAddLineToRoom_InsufficientStock(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Thums Up", "500ml", 30, 1)

	_, err := f.svc.AddLineToRoom(context.Background(), "101", dto.AddLineRequest{
		ItemID:   item.ID.String(),
		Quantity: 2,
	})
	require.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.ErrorContains(t, err, "Thums Up 500ml")

	// Nothing changed: stock intact, room still vacant and empty.
	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 1, stored.Stock)
	room, _ := f.svc.GetRoom(context.Background(), "101")
	assert.Equal(t, model.RoomVacant, room.Status)
	assert.Empty(t, room.Lines)
}

func TestAddLineToRoom_NotFoundErrors(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 5)

	_, err := f.svc.AddLineToRoom(context.Background(), "999", dto.AddLineRequest{
		ItemID: item.ID.String(), Quantity: 1,
	})
	assert.ErrorIs(t, err, service.ErrRoomNotFound)

	_, err = f.svc.AddLineToRoom(context.Background(), "101", dto.AddLineRequest{
		ItemID: uuid.NewString(), Quantity: 1,
	})
	assert.ErrorIs(t, err, service.ErrItemNotFound)

	ghost := uuid.NewString()
	_, err = f.svc.AddLineToRoom(context.Background(), "101", dto.AddLineRequest{
		ItemID: item.ID.String(), Quantity: 1, StaffID: &ghost,
	})
	assert.ErrorIs(t, err, service.ErrStaffNotFound)
}

func TestRemoveLineFromRoom_RestocksOneUnit(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Thums Up", "250ml", 20, 10)
	addLine(t, f, "101", item.ID.String(), 3, nil)

	require.NoError(t, f.svc.RemoveLineFromRoom(context.Background(), "101", 0))

	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 8, stored.Stock) // 10 - 3 + 1

	room, _ := f.svc.GetRoom(context.Background(), "101")
	require.Len(t, room.Lines, 1)
	assert.Equal(t, 2, room.Lines[0].Quantity)
	assert.Equal(t, "40", room.Lines[0].LineTotal.String())
	assert.Equal(t, model.RoomOccupied, room.Status)
}

func TestRemoveLineFromRoom_LastUnitClearsLineAndRoom(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 10)
	addLine(t, f, "101", item.ID.String(), 1, nil)

	require.NoError(t, f.svc.RemoveLineFromRoom(context.Background(), "101", 0))

	// Full round trip conserves stock.
	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 10, stored.Stock)

	room, _ := f.svc.GetRoom(context.Background(), "101")
	assert.Empty(t, room.Lines)
	assert.Equal(t, model.RoomVacant, room.Status)
}

func TestRemoveLineFromRoom_OutOfRangeIsNoOp(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 10)
	addLine(t, f, "101", item.ID.String(), 1, nil)

	require.NoError(t, f.svc.RemoveLineFromRoom(context.Background(), "101", 5))
	require.NoError(t, f.svc.RemoveLineFromRoom(context.Background(), "101", -1))

	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 9, stored.Stock)
	room, _ := f.svc.GetRoom(context.Background(), "101")
	assert.Len(t, room.Lines, 1)
}

// ── Checkout tests ───────────────────────────────────────────────────────────

func TestCheckoutRoom_CreatesSaleAndClearsRoom(t *testing.T) {
	f := buildLedgerSvc()
	water := seedItem(f, "Kinley Water", "1L", 20, 10)
	cola := seedItem(f, "Thums Up", "250ml", 20, 10)
	addLine(t, f, "101", water.ID.String(), 2, nil)
	addLine(t, f, "101", cola.ID.String(), 1, nil)

	sale, err := f.svc.CheckoutRoom(context.Background(), "101", model.PaymentUPI)
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, model.SaleKindRoom, sale.Kind)
	require.NotNil(t, sale.RoomNumber)
	assert.Equal(t, "101", *sale.RoomNumber)
	assert.Equal(t, model.PaymentUPI, sale.PaymentMode)
	assert.Equal(t, "60", sale.TotalAmount.String())
	assert.Len(t, sale.Lines, 2)

	// The room is cleared; stock stays where the line adds left it.
	room, _ := f.svc.GetRoom(context.Background(), "101")
	assert.Empty(t, room.Lines)
	assert.Equal(t, model.RoomVacant, room.Status)

	storedWater, _ := f.inventory.FindByID(context.Background(), water.ID)
	assert.Equal(t, 8, storedWater.Stock)

	stored, err := f.svc.GetSale(context.Background(), uuid.MustParse(sale.ID))
	require.NoError(t, err)
	assert.Equal(t, "60", stored.TotalAmount.String())
}

func TestCheckoutRoom_EmptyRoomIsNoOp(t *testing.T) {
	f := buildLedgerSvc()

	sale, err := f.svc.CheckoutRoom(context.Background(), "101", model.PaymentCash)
	require.NoError(t, err)
	assert.Nil(t, sale)

	list, err := f.svc.ListSales(context.Background(), dto.SaleFilter{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestCheckoutRoom_SaleKeepsSnapshotAfterPriceChange(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 10)
	addLine(t, f, "101", item.ID.String(), 2, nil)

	require.NoError(t, f.svc.SetPrice(context.Background(), item.ID, decimal.NewFromInt(35), nil))

	sale, err := f.svc.CheckoutRoom(context.Background(), "101", model.PaymentCash)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, "40", sale.TotalAmount.String())
	assert.Equal(t, "20", sale.Lines[0].UnitPrice.String())
}

// ── Walk-in tests ────────────────────────────────────────────────────────────

func TestProcessWalkInSale_Success(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Kinley Water", "2L", 30, 5)

	// The same item split across two cart entries is validated as a sum.
	sale, err := f.svc.ProcessWalkInSale(context.Background(), dto.WalkInSaleRequest{
		Lines: []dto.WalkInLineRequest{
			{ItemID: item.ID.String(), Quantity: 2},
			{ItemID: item.ID.String(), Quantity: 1},
		},
		PaymentMode: model.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, model.SaleKindWalkIn, sale.Kind)
	assert.Nil(t, sale.RoomNumber)
	assert.Equal(t, "90", sale.TotalAmount.String())
	assert.Len(t, sale.Lines, 2)

	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 2, stored.Stock)
}

func TestProcessWalkInSale_AllOrNothing(t *testing.T) {
	f := buildLedgerSvc()
	a := seedItem(f, "Thums Up", "250ml", 20, 5)
	b := seedItem(f, "Sprite", "250ml", 20, 2)

	_, err := f.svc.ProcessWalkInSale(context.Background(), dto.WalkInSaleRequest{
		Lines: []dto.WalkInLineRequest{
			{ItemID: a.ID.String(), Quantity: 3},
			{ItemID: b.ID.String(), Quantity: 10},
		},
		PaymentMode: model.PaymentCash,
	})
	require.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.ErrorContains(t, err, "Sprite 250ml")

	// No sale was recorded and item B is untouched.
	list, _ := f.svc.ListSales(context.Background(), dto.SaleFilter{})
	assert.Zero(t, list.Total)
	storedB, _ := f.inventory.FindByID(context.Background(), b.ID)
	assert.Equal(t, 2, storedB.Stock)
}

// ── Inventory tests ──────────────────────────────────────────────────────────

func TestRestock_AppliesSignedDelta(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Kinley Water", "1L", 20, 10)

	require.NoError(t, f.svc.Restock(context.Background(), item.ID, 24))
	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 34, stored.Stock)

	require.NoError(t, f.svc.Restock(context.Background(), item.ID, -4))
	stored, _ = f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 30, stored.Stock)
}

func TestRestock_RejectsNegativeResult(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 3)

	err := f.svc.Restock(context.Background(), item.ID, -5)
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 3, stored.Stock)

	err = f.svc.Restock(context.Background(), uuid.New(), 5)
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestRemoveInventoryItem_GuardedByOpenLines(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Thums Up", "500ml", 30, 10)
	addLine(t, f, "101", item.ID.String(), 1, nil)

	err := f.svc.RemoveInventoryItem(context.Background(), item.ID)
	require.ErrorIs(t, err, service.ErrItemInUse)

	// Once the referencing room is settled, deletion goes through.
	_, err = f.svc.CheckoutRoom(context.Background(), "101", model.PaymentCash)
	require.NoError(t, err)
	require.NoError(t, f.svc.RemoveInventoryItem(context.Background(), item.ID))

	err = f.svc.RemoveInventoryItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestSetPrice_RecordsAuditTrail(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Kinley Water", "1L", 20, 10)
	admin := uuid.New()

	require.NoError(t, f.svc.SetPrice(context.Background(), item.ID, decimal.NewFromInt(25), &admin))
	require.NoError(t, f.svc.SetPrice(context.Background(), item.ID, decimal.NewFromInt(22), nil))

	history, err := f.svc.PriceHistory(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first.
	assert.Equal(t, "25", history[0].PriceBefore.String())
	assert.Equal(t, "22", history[0].PriceAfter.String())
	assert.Nil(t, history[0].ChangedBy)
	assert.Equal(t, "20", history[1].PriceBefore.String())
	assert.Equal(t, admin.String(), *history[1].ChangedBy)
}

// ── Sales history tests ──────────────────────────────────────────────────────

func TestListSales_FilterByKind(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 20)

	addLine(t, f, "101", item.ID.String(), 1, nil)
	_, err := f.svc.CheckoutRoom(context.Background(), "101", model.PaymentCash)
	require.NoError(t, err)

	_, err = f.svc.ProcessWalkInSale(context.Background(), dto.WalkInSaleRequest{
		Lines:       []dto.WalkInLineRequest{{ItemID: item.ID.String(), Quantity: 1}},
		PaymentMode: model.PaymentUPI,
	})
	require.NoError(t, err)

	all, err := f.svc.ListSales(context.Background(), dto.SaleFilter{Kind: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	walkIns, err := f.svc.ListSales(context.Background(), dto.SaleFilter{Kind: model.SaleKindWalkIn})
	require.NoError(t, err)
	require.EqualValues(t, 1, walkIns.Total)
	assert.Equal(t, model.SaleKindWalkIn, walkIns.Data[0].Kind)
}

func TestDeleteSaleRecord(t *testing.T) {
	f := buildLedgerSvc()
	item := seedItem(f, "Sprite", "250ml", 20, 20)

	sale, err := f.svc.ProcessWalkInSale(context.Background(), dto.WalkInSaleRequest{
		Lines:       []dto.WalkInLineRequest{{ItemID: item.ID.String(), Quantity: 2}},
		PaymentMode: model.PaymentCash,
	})
	require.NoError(t, err)

	id := uuid.MustParse(sale.ID)
	require.NoError(t, f.svc.DeleteSaleRecord(context.Background(), id))

	// Deletion is a historical correction: stock is not reversed.
	stored, _ := f.inventory.FindByID(context.Background(), item.ID)
	assert.Equal(t, 18, stored.Stock)

	err = f.svc.DeleteSaleRecord(context.Background(), id)
	assert.ErrorIs(t, err, service.ErrSaleNotFound)
}
