// Package donations owns the cached donation collection and its derived
// views. The cache mirrors the store's date-descending scan and is never the
// source of truth: every mutation reloads the collection wholesale instead
// of patching locally, so views always reflect store-assigned ids and the
// exact stored representation.
package donations

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"givetrack/internal/domain"
)

// Controller is the stateful list subsystem. All access to the cache goes
// through its methods; the render layer only ever sees derived copies.
type Controller struct {
	repo     domain.DonationRepository
	pageSize int
	logger   zerolog.Logger

	mu    sync.RWMutex
	cache []domain.Donation
}

// NewController creates a controller with an empty cache.
func NewController(repo domain.DonationRepository, pageSize int, logger zerolog.Logger) *Controller {
	return &Controller{repo: repo, pageSize: pageSize, logger: logger}
}

// Load replaces the cache wholesale from the store's ordered scan.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.repo.ListByDateDesc(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cache = items
	c.mu.Unlock()
	return nil
}

// View derives one filtered, paginated page over a snapshot of the cache.
func (c *Controller) View(query string, page int) ViewModel {
	c.mu.RLock()
	snapshot := c.cache
	c.mu.RUnlock()
	return DeriveView(snapshot, query, page, c.pageSize)
}

// AddInput is the raw add-donation form. Amount arrives as entered text and
// is coerced at this boundary. DefaultReceiver is the current user's first
// name, substituted when the receiver field is blank.
type AddInput struct {
	DonorName       string
	ReceiverName    string
	Amount          string
	DefaultReceiver string
}

// Add validates and persists a new donation, then reloads the collection.
// The returned record carries the store-assigned id. On any failure the
// cache is left untouched so the caller's form state stays intact.
func (c *Controller) Add(ctx context.Context, in AddInput) (domain.Donation, error) {
	donor := strings.TrimSpace(in.DonorName)
	if donor == "" {
		return domain.Donation{}, &domain.ValidationError{Message: "Donor name is required."}
	}
	amount, err := domain.CoerceAmount(in.Amount)
	if err != nil {
		return domain.Donation{}, err
	}
	receiver := strings.TrimSpace(in.ReceiverName)
	if receiver == "" {
		receiver = in.DefaultReceiver
	}

	record := domain.Donation{
		DonorName:    donor,
		ReceiverName: receiver,
		Amount:       amount,
		Date:         time.Now().UTC(),
	}
	id, err := c.repo.Create(ctx, &record)
	if err != nil {
		return domain.Donation{}, err
	}
	record.ID = id

	if err := c.reload(ctx); err != nil {
		// The write landed; a stale cache here just means the next
		// successful load catches up.
		c.logger.Error().Err(err).Msg("reload after add failed")
	}
	return record, nil
}

// Delete removes a donation by id and reloads. Deleting an id that is
// already absent is fine; store failures are logged, not surfaced, matching
// the no-undo delete flow.
func (c *Controller) Delete(ctx context.Context, id string) {
	if err := c.repo.DeleteByID(ctx, id); err != nil {
		c.logger.Error().Err(err).Str("donation_id", id).Msg("delete donation failed")
	}
	if err := c.reload(ctx); err != nil {
		c.logger.Error().Err(err).Msg("reload after delete failed")
	}
}

func (c *Controller) reload(ctx context.Context) error {
	return c.Load(ctx)
}
