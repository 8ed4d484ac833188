package service_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubInventoryRepo is an in-memory InventoryRepository for testing.
type stubInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *stubInventoryRepo) Create(_ context.Context, item *model.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *item
	return &cp, nil
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.InventoryItem, error) {
	out := make([]model.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubInventoryRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInventoryRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	item, ok := r.items[id]
	if !ok || item.Stock < qty {
		return false, nil
	}
	item.Stock -= qty
	return true, nil
}

func (r *stubInventoryRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	if item, ok := r.items[id]; ok {
		item.Stock += qty
	}
	return nil
}

func (r *stubInventoryRepo) UpdatePriceTx(_ *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	item.UnitPrice = price
	return nil
}

func (r *stubInventoryRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *stubInventoryRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) (bool, error) {
	item, ok := r.items[id]
	if !ok || item.Stock+delta < 0 {
		return false, nil
	}
	item.Stock += delta
	return true, nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// stubRoomRepo keeps rooms and their open lines in memory.
type stubRoomRepo struct {
	rooms map[string]*model.Room
}

func newStubRoomRepo(numbers ...string) *stubRoomRepo {
	r := &stubRoomRepo{rooms: make(map[string]*model.Room)}
	for _, n := range numbers {
		r.rooms[n] = &model.Room{Number: n, Status: model.RoomVacant}
	}
	return r
}

func (r *stubRoomRepo) Seed(_ context.Context, numbers []string) error {
	for _, n := range numbers {
		if _, ok := r.rooms[n]; !ok {
			r.rooms[n] = &model.Room{Number: n, Status: model.RoomVacant}
		}
	}
	return nil
}

func (r *stubRoomRepo) List(_ context.Context) ([]model.Room, error) {
	out := make([]model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, *r.snapshot(room))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *stubRoomRepo) FindByNumber(_ context.Context, number string) (*model.Room, error) {
	room, ok := r.rooms[number]
	if !ok {
		return nil, errors.New("not found")
	}
	return r.snapshot(room), nil
}

func (r *stubRoomRepo) FindForUpdateTx(_ *gorm.DB, number string) (*model.Room, error) {
	return r.FindByNumber(context.Background(), number)
}

func (r *stubRoomRepo) CreateLineTx(_ *gorm.DB, line *model.OrderLine) error {
	room, ok := r.rooms[line.RoomNumber]
	if !ok {
		return errors.New("room not found")
	}
	room.Lines = append(room.Lines, *line)
	return nil
}

func (r *stubRoomRepo) SaveLineTx(_ *gorm.DB, line *model.OrderLine) error {
	for _, room := range r.rooms {
		for i := range room.Lines {
			if room.Lines[i].ID == line.ID {
				room.Lines[i] = *line
				return nil
			}
		}
	}
	return errors.New("line not found")
}

func (r *stubRoomRepo) DeleteLineTx(_ *gorm.DB, id uuid.UUID) error {
	for _, room := range r.rooms {
		for i := range room.Lines {
			if room.Lines[i].ID == id {
				room.Lines = append(room.Lines[:i], room.Lines[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *stubRoomRepo) DeleteAllLinesTx(_ *gorm.DB, roomNumber string) error {
	if room, ok := r.rooms[roomNumber]; ok {
		room.Lines = nil
	}
	return nil
}

func (r *stubRoomRepo) SetStatusTx(_ *gorm.DB, number, status string) error {
	room, ok := r.rooms[number]
	if !ok {
		return errors.New("not found")
	}
	room.Status = status
	return nil
}

func (r *stubRoomRepo) CountLinesForItemTx(_ *gorm.DB, itemID uuid.UUID) (int64, error) {
	var count int64
	for _, room := range r.rooms {
		for _, line := range room.Lines {
			if line.ItemID == itemID {
				count++
			}
		}
	}
	return count, nil
}

func (r *stubRoomRepo) DB() *gorm.DB { return nil }

// snapshot returns a copy with lines in position order, mirroring the
// ordered Preload of the real repository.
func (r *stubRoomRepo) snapshot(room *model.Room) *model.Room {
	cp := *room
	cp.Lines = make([]model.OrderLine, len(room.Lines))
	copy(cp.Lines, room.Lines)
	sort.Slice(cp.Lines, func(i, j int) bool { return cp.Lines[i].Position < cp.Lines[j].Position })
	return &cp
}

var _ repository.RoomRepository = (*stubRoomRepo)(nil)

// stubSaleRepo is an in-memory append-only sales history.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.SaleRecord
	order []uuid.UUID
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.SaleRecord)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, sale *model.SaleRecord) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	stored := *sale
	r.sales[sale.ID] = &stored
	r.order = append(r.order, sale.ID)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SaleRecord, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *sale
	return &cp, nil
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.SaleRecord, int64, error) {
	out := make([]model.SaleRecord, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		sale := r.sales[r.order[i]]
		if filter.Kind != "" && filter.Kind != "all" && sale.Kind != filter.Kind {
			continue
		}
		if filter.Date != "" {
			day, err := time.ParseInLocation("2006-01-02", filter.Date, time.Local)
			if err != nil {
				return nil, 0, err
			}
			if sale.CreatedAt.Before(day) || !sale.CreatedAt.Before(day.AddDate(0, 0, 1)) {
				continue
			}
		}
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.sales[id]; !ok {
		return false, nil
	}
	delete(r.sales, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *stubSaleRepo) AggregateRange(_ context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	cash, upi := decimal.Zero, decimal.Zero
	var count int64
	for _, sale := range r.sales {
		if sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		count++
		switch sale.PaymentMode {
		case model.PaymentCash:
			cash = cash.Add(sale.TotalAmount)
		case model.PaymentUPI:
			upi = upi.Add(sale.TotalAmount)
		}
	}
	return cash, upi, count, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubStaffRepo keeps the roster in memory.
type stubStaffRepo struct {
	staff map[uuid.UUID]*model.StaffMember
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{staff: make(map[uuid.UUID]*model.StaffMember)}
}

func (r *stubStaffRepo) Create(_ context.Context, s *model.StaffMember) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	r.staff[s.ID] = &stored
	return nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StaffMember, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *s
	return &cp, nil
}

func (r *stubStaffRepo) List(_ context.Context) ([]model.StaffMember, error) {
	out := make([]model.StaffMember, 0, len(r.staff))
	for _, s := range r.staff {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubStaffRepo) Update(_ context.Context, s *model.StaffMember) error {
	if _, ok := r.staff[s.ID]; !ok {
		return errors.New("not found")
	}
	stored := *s
	r.staff[s.ID] = &stored
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.staff, id)
	return nil
}

var _ repository.StaffRepository = (*stubStaffRepo)(nil)

// stubPriceChangeRepo records the audit trail in order.
type stubPriceChangeRepo struct {
	changes []model.PriceChange
}

func (r *stubPriceChangeRepo) CreateTx(_ *gorm.DB, pc *model.PriceChange) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	if pc.CreatedAt.IsZero() {
		pc.CreatedAt = time.Now()
	}
	r.changes = append(r.changes, *pc)
	return nil
}

func (r *stubPriceChangeRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]model.PriceChange, error) {
	out := make([]model.PriceChange, 0)
	for i := len(r.changes) - 1; i >= 0; i-- {
		if r.changes[i].ItemID == itemID {
			out = append(out, r.changes[i])
		}
	}
	return out, nil
}

var _ repository.PriceChangeRepository = (*stubPriceChangeRepo)(nil)

// stubUserRepo is an in-memory UserRepository for auth tests.
type stubUserRepo struct {
	users map[uuid.UUID]*model.UserAccount
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.UserAccount)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.UserAccount) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.UserAccount, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.UserAccount, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.UserAccount, error) {
	out := make([]model.UserAccount, 0)
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.UserAccount, error) {
	out := make([]model.UserAccount, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.UserAccount) error {
	if _, ok := r.users[u.ID]; !ok {
		return errors.New("not found")
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
