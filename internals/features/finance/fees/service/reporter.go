package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	feeModel "campusfee_backend/internals/features/finance/fees/model"
	"campusfee_backend/internals/features/finance/fees/repository"
	accountModel "campusfee_backend/internals/features/users/user/model"
)

type DashboardStats struct {
	TotalStudents      int64           `json:"totalStudents"`
	TotalPayments      int64           `json:"totalPayments"`
	TotalFeesExpected  decimal.Decimal `json:"totalFeesExpected"`
	TotalFeesCollected decimal.Decimal `json:"totalFeesCollected"`
	// Not floored per student: an over-credited student lowers this figure.
	TotalFeesPending decimal.Decimal `json:"totalFeesPending"`
}

type Reporter struct {
	store repository.Store
}

func NewReporter(store repository.Store) *Reporter {
	return &Reporter{store: store}
}

func (r *Reporter) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalStudents, err = r.store.CountAccountsByRole(gctx, accountModel.RoleStudent)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalPayments, err = r.store.CountPaymentsByStatus(gctx, feeModel.PaymentStatusSuccess)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFeesExpected, err = r.store.SumTotalFeesByRole(gctx, accountModel.RoleStudent)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFeesCollected, err = r.store.SumPaymentsByStatus(gctx, feeModel.PaymentStatusSuccess)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeError("Failed to compute dashboard stats", err)
	}

	stats.TotalFeesPending = stats.TotalFeesExpected.Sub(stats.TotalFeesCollected)
	return &stats, nil
}
