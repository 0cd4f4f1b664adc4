package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"carddash.org/internal/logging"
	"carddash.org/internal/metrics"
	"carddash.org/internal/models"
	"carddash.org/internal/pipeline"
)

// ErrShutdown is returned by accessors once the manager has been shut down
var ErrShutdown = errors.New("dataset manager is shut down")

// Dataset is the immutable result of one load. Nothing may modify it after
// InitManager returns; request handlers share it without locking.
type Dataset struct {
	Source   string
	Entry    string
	Rows     []models.Transaction
	Warnings []Warning
	Options  models.FilterOptions
	LoadedAt time.Time
}

// Manager owns the dataset for the lifetime of the process
type Manager struct {
	config       Config
	logger       *slog.Logger
	data         atomic.Pointer[Dataset]
	shutdownOnce sync.Once
}

// InitManager loads the archive named by config.DataURL, which can be either a URL
// or a local file path.
func InitManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	manager := &Manager{
		config: config,
		logger: logger.With(slog.String("component", "dataset_manager")),
	}

	data, err := manager.load(ctx)
	if err != nil {
		return nil, err
	}
	manager.data.Store(data)

	return manager, nil
}

// NewManagerFromRows wraps rows that are already in memory, e.g. for tests or tools
// that build transactions themselves.
func NewManagerFromRows(rows []models.Transaction, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	manager := &Manager{logger: logger}
	manager.data.Store(&Dataset{
		Source:   "memory",
		Rows:     rows,
		Warnings: []Warning{},
		Options:  BuildOptions(rows),
		LoadedAt: time.Now(),
	})
	return manager
}

func (manager *Manager) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	isLocalFile := manager.config.isLocalFile()

	ctx, cancel := context.WithTimeout(ctx, manager.config.downloadTimeout())
	defer cancel()

	b, err := rawArchiveData(ctx, manager.config.DataURL, isLocalFile, manager.logger)
	if err != nil {
		logging.LogError(manager.logger, "failed to read dataset archive", err,
			slog.String("source", manager.config.DataURL))
		return nil, err
	}

	parsed, entry, err := readArchive(b, manager.logger)
	if err != nil {
		logging.LogError(manager.logger, "failed to parse dataset archive", err,
			slog.String("source", manager.config.DataURL))
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.DatasetLoadDuration.Observe(elapsed.Seconds())
	metrics.DatasetRows.Set(float64(len(parsed.Rows)))
	metrics.DatasetWarnings.Set(float64(len(parsed.Warnings)))

	if parsed.Warnings == nil {
		parsed.Warnings = []Warning{}
	}
	if manager.config.Verbose {
		for _, w := range parsed.Warnings {
			manager.logger.Warn("dataset row warning", slog.String("warning", w.String()))
		}
	}

	logging.LogOperation(manager.logger, "dataset_loaded",
		slog.String("source", manager.config.DataURL),
		slog.String("entry", entry),
		slog.Bool("local_file", isLocalFile),
		slog.Int("rows", len(parsed.Rows)),
		slog.Int("warnings", len(parsed.Warnings)),
		slog.Duration("duration", elapsed))

	return &Dataset{
		Source:   manager.config.DataURL,
		Entry:    entry,
		Rows:     parsed.Rows,
		Warnings: parsed.Warnings,
		Options:  BuildOptions(parsed.Rows),
		LoadedAt: time.Now(),
	}, nil
}

// Data returns the loaded dataset, or ErrShutdown after Shutdown
func (manager *Manager) Data() (*Dataset, error) {
	data := manager.data.Load()
	if data == nil {
		return nil, ErrShutdown
	}
	return data, nil
}

// Rows returns the shared read-only row set. Callers must not modify it.
func (manager *Manager) Rows() []models.Transaction {
	if data := manager.data.Load(); data != nil {
		return data.Rows
	}
	return nil
}

func (manager *Manager) Warnings() []Warning {
	if data := manager.data.Load(); data != nil {
		return data.Warnings
	}
	return nil
}

func (manager *Manager) Options() models.FilterOptions {
	if data := manager.data.Load(); data != nil {
		return data.Options
	}
	return models.FilterOptions{}
}

// Loaded reports whether a dataset is available
func (manager *Manager) Loaded() bool {
	return manager.data.Load() != nil
}

// PrintStatistics logs a short description of the loaded dataset
func (manager *Manager) PrintStatistics() {
	data := manager.data.Load()
	if data == nil {
		manager.logger.Warn("no dataset loaded")
		return
	}
	logging.LogOperation(manager.logger, "dataset_statistics",
		slog.String("source", data.Source),
		slog.Int("rows", len(data.Rows)),
		slog.Int("warnings", len(data.Warnings)),
		slog.Int("districts", len(data.Options.Districts)-1),
		slog.Int("years", len(data.Options.Years)-1),
		slog.Time("loaded_at", data.LoadedAt))
}

// Shutdown releases the dataset. It is safe to call more than once.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		manager.data.Store(nil)
		metrics.DatasetRows.Set(0)
		manager.logger.Info("dataset manager shut down")
	})
}

// BuildOptions derives the filter selector values from rows: districts in first-seen
// order and years ascending, each behind its "all" sentinel.
func BuildOptions(rows []models.Transaction) models.FilterOptions {
	districts := []string{pipeline.AllDistricts}
	seenDistricts := make(map[string]bool)
	seenYears := make(map[int]bool)
	var years []int

	for _, row := range rows {
		if !seenDistricts[row.District] {
			seenDistricts[row.District] = true
			districts = append(districts, row.District)
		}
		if y := row.Year(); !seenYears[y] {
			seenYears[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)

	yearOptions := make([]string, 0, len(years)+1)
	yearOptions = append(yearOptions, pipeline.AllYears)
	for _, y := range years {
		yearOptions = append(yearOptions, strconv.Itoa(y))
	}

	return models.FilterOptions{
		Districts: districts,
		Years:     yearOptions,
		Palettes:  pipeline.PaletteNames(),
	}
}
