package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// Directory layout under the base path.
const (
	portfoliosDir    = "portfolios"
	benchmarksDir    = "benchmarks"
	holdingsFile     = "holdings.json"
	transactionsFile = "transactions.json"
)

// FileStore reads portfolio data from JSON files:
//
//	<base>/portfolios/<id>/holdings.json
//	<base>/portfolios/<id>/transactions.json
//	<base>/benchmarks/<key>.json
type FileStore struct {
	basePath string
	logger   *common.Logger
}

// NewFileStore opens a FileStore rooted at basePath. The directory must exist.
func NewFileStore(logger *common.Logger, basePath string) (*FileStore, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open data path %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", basePath)
	}

	logger.Debug().Str("path", basePath).Msg("FileStore opened")
	return &FileStore{basePath: basePath, logger: logger}, nil
}

// sanitizeKey makes a key safe for use as a filename.
// Replaces /, \, : with _ and collapses ".." to "_" to prevent path traversal.
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func (fs *FileStore) portfolioDir(id string) string {
	return filepath.Join(fs.basePath, portfoliosDir, sanitizeKey(id))
}

// readJSON reads and unmarshals a JSON file. Missing files return an error
// matching os.ErrNotExist.
func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// GetHoldings implements interfaces.HoldingsProvider.
func (fs *FileStore) GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var holdings []models.Holding
	path := filepath.Join(fs.portfolioDir(portfolioID), holdingsFile)
	if err := readJSON(path, &holdings); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, portfolioID)
		}
		return nil, err
	}

	for i := range holdings {
		if err := common.ValidateStruct(holdings[i]); err != nil {
			return nil, fmt.Errorf("invalid holding %d (%s) in %s: %w", i, holdings[i].Code, path, err)
		}
	}

	fs.logger.Debug().Str("portfolio", portfolioID).Int("count", len(holdings)).Msg("Holdings loaded")
	return holdings, nil
}

// GetTransactions implements interfaces.TransactionLedger.
// A portfolio without a transactions file has an empty ledger.
func (fs *FileStore) GetTransactions(ctx context.Context, portfolioID string) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := fs.portfolioDir(portfolioID)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, portfolioID)
		}
		return nil, fmt.Errorf("failed to open portfolio %s: %w", portfolioID, err)
	}

	var txs []models.Transaction
	path := filepath.Join(dir, transactionsFile)
	if err := readJSON(path, &txs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Transaction{}, nil
		}
		return nil, err
	}

	for i := range txs {
		if err := common.ValidateStruct(txs[i]); err != nil {
			return nil, fmt.Errorf("invalid transaction %d (%s) in %s: %w", i, txs[i].Code, path, err)
		}
	}

	fs.logger.Debug().Str("portfolio", portfolioID).Int("count", len(txs)).Msg("Transactions loaded")
	return txs, nil
}

// GetBenchmarkSeries implements interfaces.BenchmarkIndexProvider.
// Keys without a file are omitted from the result.
func (fs *FileStore) GetBenchmarkSeries(ctx context.Context, keys []string) (map[string]models.BenchmarkSeries, error) {
	out := make(map[string]models.BenchmarkSeries, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var series models.BenchmarkSeries
		path := filepath.Join(fs.basePath, benchmarksDir, sanitizeKey(key)+".json")
		if err := readJSON(path, &series); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fs.logger.Debug().Str("key", key).Msg("No benchmark series on disk")
				continue
			}
			return nil, err
		}
		series.Key = key
		out[key] = series.Sorted()
	}
	return out, nil
}
