package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/DaTT2001/warehouse-web/internal/application/inventory"
	"github.com/DaTT2001/warehouse-web/internal/application/saga"
	"github.com/DaTT2001/warehouse-web/internal/application/session"
	"github.com/DaTT2001/warehouse-web/internal/domain"
	"github.com/DaTT2001/warehouse-web/internal/domain/entity"
	"github.com/DaTT2001/warehouse-web/internal/domain/repository"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/cache"
	"github.com/DaTT2001/warehouse-web/internal/infrastructure/memstore"
	"github.com/DaTT2001/warehouse-web/pkg/i18n"
)

// ── reloj ────────────────────────────────────────────────────────────────────

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2025, 3, 14, 9, 30, 0, 0, entity.LocalZone)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// ── ERP ──────────────────────────────────────────────────────────────────────

type fakeERP struct {
	mu       sync.Mutex
	items    map[string]*entity.InventoryItem
	calls    int
	subtract []int
	added    []int
}

func newFakeERP(items ...entity.InventoryItem) *fakeERP {
	f := &fakeERP{items: map[string]*entity.InventoryItem{}}
	for i := range items {
		it := items[i]
		f.items[it.ProductID.String()] = &it
	}
	return f
}

func (f *fakeERP) ListInventory(_ context.Context, filter entity.InventoryFilter) (*entity.InventoryPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	page := &entity.InventoryPage{Data: []entity.InventoryItem{}}
	if it, ok := f.items[filter.ID]; ok {
		page.Data = append(page.Data, *it)
		page.TotalRecords = 1
		page.TotalPages = 1
	}
	return page, nil
}

func (f *fakeERP) TotalQuantity(context.Context) (int, error) { return 0, nil }

func (f *fakeERP) SubtractQuantity(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.subtract = append(f.subtract, qty)
	f.items[productID].QtyAvailable -= qty
	return nil
}

func (f *fakeERP) AddQuantity(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.added = append(f.added, qty)
	f.items[productID].QtyAvailable += qty
	return nil
}

func (f *fakeERP) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ── ledger ───────────────────────────────────────────────────────────────────

type fakeLedger struct {
	mu        sync.Mutex
	taken     map[string]bool
	checked   []string
	checkErr  error
	employees map[string]entity.ID
	headers   []entity.LedgerHeader
	lines     []entity.LedgerLine
	lineErr   error
	calls     int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{taken: map[string]bool{}, employees: map[string]entity.ID{"NV001": "D10"}}
}

func (f *fakeLedger) OrderIDExists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.checked = append(f.checked, id)
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.taken[id], nil
}

func (f *fakeLedger) Employee(_ context.Context, id string) (*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &entity.Employee{DeptID: f.employees[id]}, nil
}

func (f *fakeLedger) InsertHeader(_ context.Context, h entity.LedgerHeader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.headers = append(f.headers, h)
	return nil
}

func (f *fakeLedger) InsertLine(_ context.Context, l entity.LedgerLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lineErr != nil {
		return f.lineErr
	}
	f.lines = append(f.lines, l)
	return nil
}

func (f *fakeLedger) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ── órdenes locales ──────────────────────────────────────────────────────────

type fakeOrders struct {
	mu      sync.Mutex
	seq     int
	orders  map[string]entity.Order
	deleted []string
	tokens  []string
}

func newFakeOrders() *fakeOrders { return &fakeOrders{orders: map[string]entity.Order{}} }

func (f *fakeOrders) ListOrders(context.Context, string) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) SaveOrder(_ context.Context, token string, o entity.Order) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	o.ID = entity.ID(fmt.Sprint(f.seq))
	f.orders[o.ID.String()] = o
	f.tokens = append(f.tokens, token)
	return &o, nil
}

func (f *fakeOrders) DeleteOrder(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.orders, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrders) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// ── correo y diario ──────────────────────────────────────────────────────────

type fakeNotifier struct {
	sent []entity.ExportNotification
	err  error
}

func (f *fakeNotifier) NotifyExport(_ context.Context, n entity.ExportNotification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakeActivity struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeActivity) Log(id entity.Identity, action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, id.LogName()+": "+action)
}

// ── armado ───────────────────────────────────────────────────────────────────

type harness struct {
	clock    *clock
	erp      *fakeERP
	ledger   *fakeLedger
	orders   *fakeOrders
	notifier *fakeNotifier
	activity *fakeActivity
	journal  *memstore.CommitJournal
	wf       *Workflow
}

type harnessOpts struct {
	compensate bool
	updateERP  bool
	drafts     func(repository.DraftStore) repository.DraftStore
}

func newHarness(o harnessOpts) *harness {
	h := &harness{
		clock:    newClock(),
		erp:      newFakeERP(entity.InventoryItem{ProductID: "P1", ProductName: "Ốc vít M6", QtyAvailable: 10, Unit: "cái"}),
		ledger:   newFakeLedger(),
		orders:   newFakeOrders(),
		notifier: &fakeNotifier{},
		activity: &fakeActivity{},
		journal:  memstore.NewCommitJournal(),
	}
	digits := 0
	gen := NewOrderIDGenerator(h.ledger, "XK", 5, 0,
		WithClock(h.clock.Now),
		WithDigits(func() int { digits++; return digits }),
	)
	runner := saga.NewRunner(h.journal, nil, zerolog.Nop(), saga.Options{Compensate: o.compensate}, h.clock.Now)
	var drafts repository.DraftStore = cache.NewMemoryDraftStore(h.clock.Now)
	if o.drafts != nil {
		drafts = o.drafts(drafts)
	}
	seq := 0
	h.wf = NewWorkflow(Deps{
		Sessions: session.NewReader("", h.clock.Now),
		Products: inventory.NewQueryUseCase(h.erp),
		Drafts:   drafts,
		Orders:   h.orders,
		Ledger:   h.ledger,
		ERP:      h.erp,
		OrderIDs: gen,
		Runner:   runner,
		Notifier: h.notifier,
		Activity: h.activity,
		Messages: i18n.New("vi"),
		Log:      zerolog.Nop(),
		Now:      h.clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}, Config{UpdateERPQuantity: o.updateERP})
	return h
}

func (h *harness) operator() entity.Identity {
	return entity.Identity{
		Username:  "NV001",
		FullName:  "Nguyen Van A",
		Role:      entity.RoleWarehouseManager,
		ExpiresAt: h.clock.Now().Add(time.Hour),
		Token:     "tok-nv001",
	}
}

// gatedDrafts detiene el primer Save de una vista previa hasta que se cierre release.
type gatedDrafts struct {
	repository.DraftStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedDrafts(inner repository.DraftStore) *gatedDrafts {
	return &gatedDrafts{DraftStore: inner, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedDrafts) Save(ctx context.Context, d *entity.ExportDraft, ttl time.Duration) error {
	if d.State == entity.ExportPreviewing {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.DraftStore.Save(ctx, d, ttl)
}

var errLine = errors.New("insert-inb: status 500")
