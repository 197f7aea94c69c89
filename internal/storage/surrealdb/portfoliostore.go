package surrealdb

import (
	"context"
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// portfolioRecord marks a portfolio as known. Holdings and transactions
// reference it by id through their portfolio field.
type portfolioRecord struct {
	Name string `json:"name"`
}

// PortfolioStore reads holdings and transactions keyed by portfolio id.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{db: db, logger: logger}
}

func (s *PortfolioStore) ensurePortfolio(ctx context.Context, portfolioID string) error {
	rec, err := surrealdb.Select[portfolioRecord](ctx, s.db, surrealmodels.NewRecordID(tablePortfolio, portfolioID))
	if err != nil {
		return fmt.Errorf("failed to select portfolio %s: %w", portfolioID, err)
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", interfaces.ErrPortfolioNotFound, portfolioID)
	}
	return nil
}

// GetHoldings implements interfaces.HoldingsProvider.
func (s *PortfolioStore) GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	if err := s.ensurePortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	sql := "SELECT * OMIT id, portfolio FROM holding WHERE portfolio = $portfolio ORDER BY code"
	vars := map[string]any{"portfolio": portfolioID}

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	holdings := []models.Holding{}
	if results != nil && len(*results) > 0 {
		holdings = append(holdings, (*results)[0].Result...)
	}
	for i := range holdings {
		if err := common.ValidateStruct(holdings[i]); err != nil {
			return nil, fmt.Errorf("invalid holding %s in portfolio %s: %w", holdings[i].Code, portfolioID, err)
		}
	}

	s.logger.Debug().Str("portfolio", portfolioID).Int("count", len(holdings)).Msg("Holdings loaded")
	return holdings, nil
}

// GetTransactions implements interfaces.TransactionLedger.
func (s *PortfolioStore) GetTransactions(ctx context.Context, portfolioID string) ([]models.Transaction, error) {
	if err := s.ensurePortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	sql := "SELECT * OMIT id, portfolio FROM transaction WHERE portfolio = $portfolio"
	vars := map[string]any{"portfolio": portfolioID}

	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	txs := []models.Transaction{}
	if results != nil && len(*results) > 0 {
		txs = append(txs, (*results)[0].Result...)
	}
	for i := range txs {
		if err := common.ValidateStruct(txs[i]); err != nil {
			return nil, fmt.Errorf("invalid transaction %d (%s) in portfolio %s: %w", i, txs[i].Code, portfolioID, err)
		}
	}

	s.logger.Debug().Str("portfolio", portfolioID).Int("count", len(txs)).Msg("Transactions loaded")
	return txs, nil
}
