package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

type RoyaltySummary struct {
	Total   types.USD                   `json:"total"`
	Count   int64                       `json:"count"`
	Entries []*types.RoyaltyLedgerEntry `json:"entries"`
}

type RoyaltyService interface {
	// SummaryForCaller totals the caller's ledger within the optional time
	// window and returns the newest entries page. Reading under concurrent
	// appends is safe; the sum is simply a snapshot.
	SummaryForCaller(ctx context.Context, from, to *time.Time, limit, offset int) (*RoyaltySummary, error)
}

type royaltyService struct {
	db          *gorm.DB
	log         *logger.Logger
	royaltyRepo repos.RoyaltyRepo
}

func NewRoyaltyService(gdb *gorm.DB, log *logger.Logger, royaltyRepo repos.RoyaltyRepo) RoyaltyService {
	return &royaltyService{
		db:          gdb,
		log:         log.With("service", "RoyaltyService"),
		royaltyRepo: royaltyRepo,
	}
}

func (rs *royaltyService) SummaryForCaller(ctx context.Context, from, to *time.Time, limit, offset int) (*RoyaltySummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}

	total, count, err := rs.royaltyRepo.SumByBeneficiary(ctx, nil, rd.UserID, from, to)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("sum royalties: %w", err))
	}
	entries, _, err := rs.royaltyRepo.ListByBeneficiary(ctx, nil, rd.UserID, limit, offset)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("list royalties: %w", err))
	}
	return &RoyaltySummary{Total: total, Count: count, Entries: entries}, nil
}
