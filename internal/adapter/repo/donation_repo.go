package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"givetrack/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts a new donation record and returns the store-assigned id.
// The creation timestamp is assigned here too, never by the caller.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) (string, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO donations (id, donor_name, receiver_name, amount, date)
VALUES (gen_random_uuid(), $1, $2, $3, now())
RETURNING id;
`, donation.DonorName, donation.ReceiverName, donation.Amount)

	var id string
	if err := row.Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// ListByDateDesc returns the full donation collection ordered by creation
// date descending.
func (r *DonationRepositoryPG) ListByDateDesc(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, donor_name, receiver_name, amount, date
FROM donations
ORDER BY date DESC;
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := rows.Scan(&donation.ID, &donation.DonorName, &donation.ReceiverName, &donation.Amount, &donation.Date); err != nil {
			return nil, err
		}
		items = append(items, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteByID removes a donation. Deleting an id that is already gone is not
// an error.
func (r *DonationRepositoryPG) DeleteByID(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM donations WHERE id = $1;`, id)
	return err
}
