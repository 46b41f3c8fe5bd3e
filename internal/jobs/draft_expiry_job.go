package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DraftExpiryJob manages the scheduled cancellation of abandoned quick-drop
// drafts. Runs every minute and cancels drafts older than the configured age.
type DraftExpiryJob struct {
	staleDrafts queries.GetStaleDraftsQueryHandler
	transitions commands.TransitionOrderCommandHandler
	maxAge      time.Duration
	systemUser  kernel.UUID
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewDraftExpiryJob creates a new job for expiring stale drafts.
// Uses GetStaleDraftsQueryHandler to find abandoned quick-drop drafts and
// TransitionOrderCommandHandler to cancel them one by one.
func NewDraftExpiryJob(
	staleDrafts queries.GetStaleDraftsQueryHandler,
	transitions commands.TransitionOrderCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *DraftExpiryJob {
	return &DraftExpiryJob{
		staleDrafts: staleDrafts,
		transitions: transitions,
		maxAge:      maxAge,
		systemUser:  kernel.NewUUID(),
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "draft_expiry_job"),
	}
}

// Start begins the draft expiry job to run every minute.
func (j *DraftExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		j.expireStaleDrafts(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Draft expiry job started (running every minute)", "maxAge", j.maxAge)
	return nil
}

// Stop stops the draft expiry job.
func (j *DraftExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft expiry job stopped")
}

func (j *DraftExpiryJob) expireStaleDrafts(ctx context.Context) {
	query, err := queries.NewGetStaleDraftsQuery(time.Now().UTC().Add(-j.maxAge))
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry job failed to build query", "error", err)
		return
	}

	drafts, err := j.staleDrafts.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry job failed to list stale drafts", "error", err)
		return
	}

	for _, draft := range drafts {
		if err := j.cancelDraft(ctx, draft); err != nil {
			// Drafts touched between listing and cancelling are expected
			// to fall out of the draft status or disappear entirely.
			if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrIllegalTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Draft expiry job failed to cancel draft",
				"orderId", draft.OrderID.String(), "number", draft.Number, "error", err)
		}
	}
}

func (j *DraftExpiryJob) cancelDraft(ctx context.Context, draft queries.GetStaleDraftsQueryResponse) error {
	actor, err := kernel.NewActor(draft.TenantID, j.systemUser, "system/draft-expiry")
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(
		draft.OrderID, actor, order.StatusCancelled, "expired quick-drop draft")
	if err != nil {
		return err
	}

	_, err = j.transitions.Handle(ctx, cmd)
	return err
}
