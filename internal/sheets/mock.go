package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/service"
)

// MockStore is an in-memory SheetStore for testing. Tabs are registered
// with initial cell contents and record every batch applied to them.
type MockStore struct {
	OpenErr error
	tabs    map[string]*MockTab
	mu      sync.Mutex
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{tabs: make(map[string]*MockTab)}
}

// AddTab registers a tab with initial contents. cells maps (row, col) to
// values; both 1-based, matching sheet positions.
func (m *MockStore) AddTab(name string, cells map[[2]int]model.Cell) *MockTab {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab := &MockTab{name: name, cells: make(map[[2]int]model.Cell, len(cells))}
	for k, v := range cells {
		tab.cells[k] = v
	}
	m.tabs[name] = tab
	return tab
}

// OpenTab implements SheetStore.
func (m *MockStore) OpenTab(_ context.Context, name string) (service.SheetTab, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	tab, ok := m.tabs[name]
	if !ok {
		return nil, fmt.Errorf("tab %q not found", name)
	}
	return tab, nil
}

// MockTab is one in-memory tab.
type MockTab struct {
	name     string
	ReadErr  error
	ApplyErr error
	cells    map[[2]int]model.Cell
	Batches  [][]model.CellWrite
	mu       sync.Mutex
}

// ReadColumn implements SheetTab. The returned slice spans row 1 through
// the highest populated row of the column.
func (t *MockTab) ReadColumn(_ context.Context, col int) ([]model.Cell, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ReadErr != nil {
		return nil, t.ReadErr
	}

	maxRow := 0
	for k := range t.cells {
		if k[1] == col && k[0] > maxRow {
			maxRow = k[0]
		}
	}

	cells := make([]model.Cell, maxRow)
	for row := 1; row <= maxRow; row++ {
		cells[row-1] = t.cells[[2]int{row, col}]
	}
	return cells, nil
}

// ApplyBatch implements SheetTab, mutating the in-memory cells and
// recording the batch.
func (t *MockTab) ApplyBatch(_ context.Context, writes []model.CellWrite) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ApplyErr != nil {
		return t.ApplyErr
	}

	batch := make([]model.CellWrite, len(writes))
	copy(batch, writes)
	t.Batches = append(t.Batches, batch)

	for _, w := range writes {
		key := [2]int{w.Row, w.Col}
		if w.Clear {
			t.cells[key] = model.EmptyCell
		} else {
			t.cells[key] = model.NumberCell(w.Value)
		}
	}
	return nil
}

// Cell returns the current value at (row, col).
func (t *MockTab) Cell(row, col int) model.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cells[[2]int{row, col}]
}

// Snapshot returns a copy of the tab's cells.
func (t *MockTab) Snapshot() map[[2]int]model.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := make(map[[2]int]model.Cell, len(t.cells))
	for k, v := range t.cells {
		snap[k] = v
	}
	return snap
}
