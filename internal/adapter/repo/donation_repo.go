package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"unishift/internal/domain"
	"unishift/internal/infra"
	"unishift/internal/sqlinline"
)

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a new donation record and assigns its ID.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	id := uuid.NewString()
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertDonation, id, donation.Amount.StringFixed(2), donation.CreatedAt); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	donation.ID = id
	return nil
}

// Page returns up to limit donations, newest first, skipping offset.
func (r *DonationRepositoryPG) Page(ctx context.Context, offset, limit int) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonationsPage, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var (
			donation domain.Donation
			amount   string
		)
		if err := rows.Scan(&donation.ID, &amount, &donation.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		if donation.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse donation amount %q: %w", amount, err)
		}
		items = append(items, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of donations.
func (r *DonationRepositoryPG) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.sql.QueryRow(ctx, sqlinline.QCountDonations).Scan(&count); err != nil {
		return 0, fmt.Errorf("count donations: %w", err)
	}
	return int(count), nil
}

// Sum returns the total of all donation amounts.
func (r *DonationRepositoryPG) Sum(ctx context.Context) (decimal.Decimal, error) {
	var total string
	if err := r.sql.QueryRow(ctx, sqlinline.QSumDonations).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum donations: %w", err)
	}
	sum, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse donation total %q: %w", total, err)
	}
	return sum, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
