package service

import (
	"context"
	"fmt"

	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"
	"github.com/anish435/Hotel-Inventory-management-system/internal/notify"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"
	"github.com/anish435/Hotel-Inventory-management-system/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService mediates every mutation of inventory, rooms and the sales
// history, and is the only place their invariants are enforced:
//
//   - stock never drops below zero (guarded relative SQL updates);
//   - a room is occupied iff it has at least one open line;
//   - order lines carry a price snapshot that later catalog edits never touch;
//   - any operation spanning two entities (stock + room, stock + history)
//     commits both writes in one transaction or neither.
//
// Several terminals issue operations concurrently against the same database;
// correctness comes from the transaction plus the guards, not from in-process
// locking.
type LedgerService interface {
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	GetRoom(ctx context.Context, number string) (*dto.RoomResponse, error)
	AddLineToRoom(ctx context.Context, roomNumber string, req dto.AddLineRequest) (*dto.RoomResponse, error)
	// RemoveLineFromRoom takes one unit off the line at lineIndex, returning
	// it to stock. An out-of-range index is a no-op.
	RemoveLineFromRoom(ctx context.Context, roomNumber string, lineIndex int) error
	// CheckoutRoom finalizes a room's open order into a SaleRecord and clears
	// the room. Returns (nil, nil) when the room had no open lines.
	CheckoutRoom(ctx context.Context, roomNumber, paymentMode string) (*dto.SaleResponse, error)
	ProcessWalkInSale(ctx context.Context, req dto.WalkInSaleRequest) (*dto.SaleResponse, error)

	ListInventory(ctx context.Context) ([]dto.ItemResponse, error)
	AddInventoryItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	RemoveInventoryItem(ctx context.Context, itemID uuid.UUID) error
	Restock(ctx context.Context, itemID uuid.UUID, delta int) error
	SetPrice(ctx context.Context, itemID uuid.UUID, newPrice decimal.Decimal, changedBy *uuid.UUID) error
	PriceHistory(ctx context.Context, itemID uuid.UUID) ([]dto.PriceChangeResponse, error)

	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	DeleteSaleRecord(ctx context.Context, id uuid.UUID) error
}

type ledgerService struct {
	inventoryRepo repository.InventoryRepository
	roomRepo      repository.RoomRepository
	saleRepo      repository.SaleRepository
	staffRepo     repository.StaffRepository
	priceRepo     repository.PriceChangeRepository
	dispatcher    *worker.Dispatcher
	events        *notify.Publisher
}

func NewLedgerService(
	inventoryRepo repository.InventoryRepository,
	roomRepo repository.RoomRepository,
	saleRepo repository.SaleRepository,
	staffRepo repository.StaffRepository,
	priceRepo repository.PriceChangeRepository,
	dispatcher *worker.Dispatcher,
	events *notify.Publisher,
) LedgerService {
	return &ledgerService{
		inventoryRepo: inventoryRepo,
		roomRepo:      roomRepo,
		saleRepo:      saleRepo,
		staffRepo:     staffRepo,
		priceRepo:     priceRepo,
		dispatcher:    dispatcher,
		events:        events,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Rooms ─────────────────────────────────────────────────────────────────────

func (s *ledgerService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, *roomToResponse(&rooms[i]))
	}
	return resp, nil
}

func (s *ledgerService) GetRoom(ctx context.Context, number string) (*dto.RoomResponse, error) {
	room, err := s.roomRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, number)
	}
	return roomToResponse(room), nil
}

// AddLineToRoom: one transaction covering the guarded stock decrement, the
// line merge/append, and the room status update. The price and display name
// are snapshotted from the catalog at add-time. Lines for the same item merge
// only when served by the same staff member.
func (s *ledgerService) AddLineToRoom(ctx context.Context, roomNumber string, req dto.AddLineRequest) (*dto.RoomResponse, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %w", err)
	}

	// Resolve the staff attribution outside the transaction — the roster
	// changes rarely and never as part of a sale.
	var staffID *uuid.UUID
	var staffName *string
	if req.StaffID != nil {
		sid, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return nil, fmt.Errorf("invalid staff_id: %w", err)
		}
		member, err := s.staffRepo.FindByID(ctx, sid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, sid)
		}
		staffID = &member.ID
		staffName = &member.Name
	}

	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindForUpdateTx(tx, roomNumber)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrRoomNotFound, roomNumber)
		}

		item, err := s.inventoryRepo.FindByIDTx(tx, itemID)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}

		ok, err := s.inventoryRepo.DecrementStockTx(tx, itemID, req.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, item.DisplayName())
		}

		if line := findMergeLine(room.Lines, itemID, staffID); line != nil {
			line.Quantity += req.Quantity
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			if err := s.roomRepo.SaveLineTx(tx, line); err != nil {
				return err
			}
		} else {
			newLine := &model.OrderLine{
				ID:          uuid.New(),
				RoomNumber:  roomNumber,
				ItemID:      itemID,
				DisplayName: item.DisplayName(),
				UnitPrice:   item.UnitPrice,
				Quantity:    req.Quantity,
				LineTotal:   item.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
				Position:    nextPosition(room.Lines),
				StaffID:     staffID,
				StaffName:   staffName,
			}
			if err := s.roomRepo.CreateLineTx(tx, newLine); err != nil {
				return err
			}
		}

		return s.roomRepo.SetStatusTx(tx, roomNumber, model.RoomOccupied)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.events.Publish(ctx, notify.CollectionInventory, notify.CollectionRooms)
	return s.GetRoom(ctx, roomNumber)
}

func (s *ledgerService) RemoveLineFromRoom(ctx context.Context, roomNumber string, lineIndex int) error {
	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindForUpdateTx(tx, roomNumber)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrRoomNotFound, roomNumber)
		}
		if lineIndex < 0 || lineIndex >= len(room.Lines) {
			return nil // out-of-range index is a no-op
		}

		line := room.Lines[lineIndex]

		// One unit goes back to stock. Tolerates a since-deleted catalog
		// entry (cannot normally happen — deletion is guarded).
		if err := s.inventoryRepo.IncrementStockTx(tx, line.ItemID, 1); err != nil {
			return err
		}

		remaining := len(room.Lines)
		if line.Quantity > 1 {
			line.Quantity--
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			if err := s.roomRepo.SaveLineTx(tx, &line); err != nil {
				return err
			}
		} else {
			if err := s.roomRepo.DeleteLineTx(tx, line.ID); err != nil {
				return err
			}
			remaining--
		}

		status := model.RoomOccupied
		if remaining == 0 {
			status = model.RoomVacant
		}
		return s.roomRepo.SetStatusTx(tx, roomNumber, status)
	})
	if txErr != nil {
		return txErr
	}

	s.events.Publish(ctx, notify.CollectionInventory, notify.CollectionRooms)
	return nil
}

// CheckoutRoom converts the room's open lines into an immutable SaleRecord
// and clears the room, all in one transaction. Stock is untouched — it was
// already decremented when each line was added.
func (s *ledgerService) CheckoutRoom(ctx context.Context, roomNumber, paymentMode string) (*dto.SaleResponse, error) {
	var sale *model.SaleRecord

	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindForUpdateTx(tx, roomNumber)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrRoomNotFound, roomNumber)
		}
		if len(room.Lines) == 0 {
			return nil // nothing to check out
		}

		total := decimal.Zero
		saleLines := make([]model.SaleLine, 0, len(room.Lines))
		for _, line := range room.Lines {
			total = total.Add(line.LineTotal)
			saleLines = append(saleLines, model.SaleLine{
				ID:          uuid.New(),
				ItemID:      line.ItemID,
				DisplayName: line.DisplayName,
				UnitPrice:   line.UnitPrice,
				Quantity:    line.Quantity,
				LineTotal:   line.LineTotal,
				StaffID:     line.StaffID,
				StaffName:   line.StaffName,
			})
		}

		number := roomNumber
		sale = &model.SaleRecord{
			ID:          uuid.New(),
			Kind:        model.SaleKindRoom,
			RoomNumber:  &number,
			TotalAmount: total,
			PaymentMode: paymentMode,
			Lines:       saleLines,
		}
		if err := s.saleRepo.CreateTx(tx, sale); err != nil {
			return err
		}
		if err := s.roomRepo.DeleteAllLinesTx(tx, roomNumber); err != nil {
			return err
		}
		return s.roomRepo.SetStatusTx(tx, roomNumber, model.RoomVacant)
	})
	if txErr != nil {
		return nil, txErr
	}
	if sale == nil {
		return nil, nil
	}

	s.enqueueReceipt(ctx, sale.ID)
	s.events.Publish(ctx, notify.CollectionRooms, notify.CollectionSales)
	return saleToResponse(sale), nil
}

// ProcessWalkInSale is all-or-nothing: stock for every referenced item is
// decremented by its summed cart quantity inside one transaction; the first
// failing item aborts the whole sale and the rollback leaves no partial
// mutation behind.
func (s *ledgerService) ProcessWalkInSale(ctx context.Context, req dto.WalkInSaleRequest) (*dto.SaleResponse, error) {
	type cartEntry struct {
		itemID    uuid.UUID
		quantity  int
		staffID   *uuid.UUID
		staffName *string
	}

	entries := make([]cartEntry, 0, len(req.Lines))
	totals := make(map[uuid.UUID]int)  // summed quantity per item
	order := make([]uuid.UUID, 0)      // first-seen item order, for stable failure reporting
	staffCache := make(map[uuid.UUID]*model.StaffMember)

	for _, line := range req.Lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item_id: %w", err)
		}
		entry := cartEntry{itemID: itemID, quantity: line.Quantity}
		if line.StaffID != nil {
			sid, err := uuid.Parse(*line.StaffID)
			if err != nil {
				return nil, fmt.Errorf("invalid staff_id: %w", err)
			}
			member, ok := staffCache[sid]
			if !ok {
				member, err = s.staffRepo.FindByID(ctx, sid)
				if err != nil {
					return nil, fmt.Errorf("%w: %s", ErrStaffNotFound, sid)
				}
				staffCache[sid] = member
			}
			entry.staffID = &member.ID
			entry.staffName = &member.Name
		}
		if _, seen := totals[itemID]; !seen {
			order = append(order, itemID)
		}
		totals[itemID] += line.Quantity
		entries = append(entries, entry)
	}

	var sale *model.SaleRecord

	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		items := make(map[uuid.UUID]*model.InventoryItem, len(order))
		for _, itemID := range order {
			item, err := s.inventoryRepo.FindByIDTx(tx, itemID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
			}
			ok, err := s.inventoryRepo.DecrementStockTx(tx, itemID, totals[itemID])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.DisplayName())
			}
			items[itemID] = item
		}

		total := decimal.Zero
		saleLines := make([]model.SaleLine, 0, len(entries))
		for _, e := range entries {
			item := items[e.itemID]
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(e.quantity)))
			total = total.Add(lineTotal)
			saleLines = append(saleLines, model.SaleLine{
				ID:          uuid.New(),
				ItemID:      e.itemID,
				DisplayName: item.DisplayName(),
				UnitPrice:   item.UnitPrice,
				Quantity:    e.quantity,
				LineTotal:   lineTotal,
				StaffID:     e.staffID,
				StaffName:   e.staffName,
			})
		}

		sale = &model.SaleRecord{
			ID:          uuid.New(),
			Kind:        model.SaleKindWalkIn,
			TotalAmount: total,
			PaymentMode: req.PaymentMode,
			Lines:       saleLines,
		}
		return s.saleRepo.CreateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enqueueReceipt(ctx, sale.ID)
	s.events.Publish(ctx, notify.CollectionInventory, notify.CollectionSales)
	return saleToResponse(sale), nil
}

// ── Inventory ─────────────────────────────────────────────────────────────────

func (s *ledgerService) ListInventory(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *itemToResponse(&items[i]))
	}
	return resp, nil
}

func (s *ledgerService) AddInventoryItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &model.InventoryItem{
		ID:        uuid.New(),
		Name:      req.Name,
		Volume:    req.Volume,
		UnitPrice: req.UnitPrice,
		Stock:     req.Stock,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, notify.CollectionInventory)
	return itemToResponse(item), nil
}

func (s *ledgerService) RemoveInventoryItem(ctx context.Context, itemID uuid.UUID) error {
	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		// An item referenced by any room's open order cannot be deleted —
		// the referencing room must be cleared first. Sales history keeps
		// its own denormalized snapshots and is unaffected either way.
		count, err := s.roomRepo.CountLinesForItemTx(tx, itemID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrItemInUse, itemID)
		}

		deleted, err := s.inventoryRepo.DeleteTx(tx, itemID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.events.Publish(ctx, notify.CollectionInventory)
	return nil
}

// Restock applies a signed delta. Negative corrections that would drive
// stock below zero are rejected, not clamped — the operator should see the
// discrepancy rather than have it papered over.
func (s *ledgerService) Restock(ctx context.Context, itemID uuid.UUID, delta int) error {
	ok, err := s.inventoryRepo.AdjustStock(ctx, itemID, delta)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.inventoryRepo.FindByID(ctx, itemID); err != nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		return fmt.Errorf("%w: adjustment of %d would drive stock below zero", ErrInsufficientStock, delta)
	}
	s.events.Publish(ctx, notify.CollectionInventory)
	return nil
}

// SetPrice updates the catalog price for future lines only. Existing order
// lines and sale records keep their snapshots untouched. Every edit is
// recorded in the immutable price audit trail.
func (s *ledgerService) SetPrice(ctx context.Context, itemID uuid.UUID, newPrice decimal.Decimal, changedBy *uuid.UUID) error {
	txErr := runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		item, err := s.inventoryRepo.FindByIDTx(tx, itemID)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		if err := s.inventoryRepo.UpdatePriceTx(tx, itemID, newPrice); err != nil {
			return err
		}
		return s.priceRepo.CreateTx(tx, &model.PriceChange{
			ID:          uuid.New(),
			ItemID:      itemID,
			PriceBefore: item.UnitPrice,
			PriceAfter:  newPrice,
			ChangedBy:   changedBy,
		})
	})
	if txErr != nil {
		return txErr
	}

	s.events.Publish(ctx, notify.CollectionInventory)
	return nil
}

func (s *ledgerService) PriceHistory(ctx context.Context, itemID uuid.UUID) ([]dto.PriceChangeResponse, error) {
	changes, err := s.priceRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PriceChangeResponse, 0, len(changes))
	for _, pc := range changes {
		var changedBy *string
		if pc.ChangedBy != nil {
			id := pc.ChangedBy.String()
			changedBy = &id
		}
		resp = append(resp, dto.PriceChangeResponse{
			ItemID:      pc.ItemID.String(),
			PriceBefore: pc.PriceBefore,
			PriceAfter:  pc.PriceAfter,
			ChangedBy:   changedBy,
			CreatedAt:   pc.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}

// ── Sales history ─────────────────────────────────────────────────────────────

func (s *ledgerService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ledgerService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSaleNotFound, id)
	}
	return saleToResponse(sale), nil
}

// DeleteSaleRecord purges one record from the history. Historical correction
// only — stock is NOT reversed.
func (s *ledgerService) DeleteSaleRecord(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.saleRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrSaleNotFound, id)
	}
	s.events.Publish(ctx, notify.CollectionSales)
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *ledgerService) enqueueReceipt(ctx context.Context, saleID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	// Best-effort — the sale is already committed.
	_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{SaleID: saleID.String()})
}

func findMergeLine(lines []model.OrderLine, itemID uuid.UUID, staffID *uuid.UUID) *model.OrderLine {
	for i := range lines {
		if lines[i].ItemID == itemID && sameStaff(lines[i].StaffID, staffID) {
			return &lines[i]
		}
	}
	return nil
}

func sameStaff(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func nextPosition(lines []model.OrderLine) int {
	next := 0
	for _, l := range lines {
		if l.Position >= next {
			next = l.Position + 1
		}
	}
	return next
}

func roomToResponse(room *model.Room) *dto.RoomResponse {
	lines := make([]dto.LineResponse, 0, len(room.Lines))
	openTotal := decimal.Zero
	for _, l := range room.Lines {
		lines = append(lines, *orderLineToResponse(&l))
		openTotal = openTotal.Add(l.LineTotal)
	}
	return &dto.RoomResponse{
		Number:    room.Number,
		Status:    room.Status,
		Lines:     lines,
		OpenTotal: openTotal,
	}
}

func orderLineToResponse(l *model.OrderLine) *dto.LineResponse {
	resp := &dto.LineResponse{
		ItemID:      l.ItemID.String(),
		DisplayName: l.DisplayName,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
		LineTotal:   l.LineTotal,
		StaffName:   l.StaffName,
	}
	if l.StaffID != nil {
		id := l.StaffID.String()
		resp.StaffID = &id
	}
	return resp
}

func saleToResponse(sale *model.SaleRecord) *dto.SaleResponse {
	lines := make([]dto.LineResponse, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		line := dto.LineResponse{
			ItemID:      l.ItemID.String(),
			DisplayName: l.DisplayName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal,
			StaffName:   l.StaffName,
		}
		if l.StaffID != nil {
			id := l.StaffID.String()
			line.StaffID = &id
		}
		lines = append(lines, line)
	}
	return &dto.SaleResponse{
		ID:          sale.ID.String(),
		Kind:        sale.Kind,
		RoomNumber:  sale.RoomNumber,
		Lines:       lines,
		TotalAmount: sale.TotalAmount,
		PaymentMode: sale.PaymentMode,
		CreatedAt:   sale.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func itemToResponse(item *model.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		Volume:    item.Volume,
		UnitPrice: item.UnitPrice,
		Stock:     item.Stock,
	}
}
