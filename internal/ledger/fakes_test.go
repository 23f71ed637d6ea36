package ledger

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"unishift/internal/domain"
)

var errBoom = errors.New("boom")

type memDonations struct {
	mu        sync.Mutex
	items     []domain.Donation
	createErr error
	pageErr   error
	countErr  error
	sumErr    error
	calls     int
}

func (m *memDonations) Create(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	d.ID = "donation-" + strconv.Itoa(len(m.items)+1)
	m.items = append(m.items, *d)
	return nil
}

func (m *memDonations) Page(_ context.Context, offset, limit int) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	sorted := append([]domain.Donation(nil), m.items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if offset >= len(sorted) {
		return nil, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (m *memDonations) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.items), nil
}

func (m *memDonations) Sum(context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.sumErr != nil {
		return decimal.Zero, m.sumErr
	}
	total := decimal.Zero
	for _, d := range m.items {
		total = total.Add(d.Amount)
	}
	return total, nil
}
