// Package ingest turns sensor packages from files and the gateway into stored workouts.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sstent/workoutstats/internal/database"
	"github.com/sstent/workoutstats/internal/models"
	"github.com/sstent/workoutstats/internal/observability"
	"github.com/sstent/workoutstats/internal/parser"
	"github.com/sstent/workoutstats/internal/training"
)

const (
	processedDir = "processed"
	failedDir    = "failed"
)

// ErrNotStorable is returned when a package yields a non-finite summary,
// e.g. a zero duration.
var ErrNotStorable = errors.New("workout summary is not a finite number")

// PackageSource supplies packages collected elsewhere, e.g. the gateway client.
type PackageSource interface {
	FetchPackages(ctx context.Context, limit int) ([]models.SensorPackage, error)
}

// Result summarises one Sync or ScanInbox run.
type Result struct {
	Recorded int `json:"recorded"`
	Failed   int `json:"failed"`
}

func (r *Result) add(other Result) {
	r.Recorded += other.Recorded
	r.Failed += other.Failed
}

type Service struct {
	db       database.Database
	profile  models.AthleteProfile
	source   PackageSource
	batch    int
	inboxDir string
	logger   *log.Logger
	now      func() time.Time

	// held for a whole Sync or ScanInbox run
	runMu sync.Mutex
}

type Option func(*Service)

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithSource enables pulling up to batch packages per Sync from src.
func WithSource(src PackageSource, batch int) Option {
	return func(s *Service) {
		s.source = src
		s.batch = batch
	}
}

// WithInbox sets the directory scanned for FIT and YAML files.
func WithInbox(dir string) Option {
	return func(s *Service) { s.inboxDir = dir }
}

func NewService(db database.Database, profile models.AthleteProfile, opts ...Option) *Service {
	s := &Service{
		db:      db,
		profile: profile,
		batch:   100,
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record computes the summary of pkg and stores it.
func (s *Service) Record(pkg models.SensorPackage) (*database.Workout, error) {
	workout, err := training.ReadPackage(pkg.WorkoutType, pkg.Data)
	if err != nil {
		return nil, err
	}

	info, err := workout.ShowTrainingInfo()
	if err != nil {
		return nil, err
	}

	for _, v := range []float64{info.Duration, info.Distance, info.Speed, info.Calories} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s %v", ErrNotStorable, pkg.WorkoutType, pkg.Data)
		}
	}

	recordedAt := pkg.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.now()
	}

	w := &database.Workout{
		WorkoutType:  pkg.WorkoutType,
		TrainingType: info.TrainingType,
		Readings:     pkg.Data,
		Duration:     info.Duration,
		Distance:     info.Distance,
		Speed:        info.Speed,
		Calories:     info.Calories,
		Source:       pkg.Source,
		RecordedAt:   recordedAt.UTC().Truncate(time.Second),
	}
	if err := s.db.CreateWorkout(w); err != nil {
		return nil, fmt.Errorf("failed to store workout: %w", err)
	}

	observability.RecordWorkout(info.TrainingType, info.Calories)
	return w, nil
}

// IngestFile parses a FIT or YAML file and records every package in it.
// Packages that fail are skipped; their errors are joined into the returned error.
func (s *Service) IngestFile(path string) ([]database.Workout, error) {
	p, err := parser.NewParser(path, s.profile)
	if err != nil {
		observability.RecordIngestFailure("file")
		return nil, err
	}

	packages, err := p.ParseFile(path)
	if err != nil {
		observability.RecordIngestFailure("file")
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return s.recordAll(packages, "file")
}

// IngestData records the packages of an uploaded file, detecting its format from content.
func (s *Service) IngestData(name string, data []byte) ([]database.Workout, error) {
	p, err := parser.NewParserFromData(data, s.profile)
	if err != nil {
		observability.RecordIngestFailure("upload")
		return nil, err
	}

	packages, err := p.ParseData(data)
	if err != nil {
		observability.RecordIngestFailure("upload")
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for i := range packages {
		if packages[i].Source == "" {
			packages[i].Source = name
		}
	}

	return s.recordAll(packages, "upload")
}

func (s *Service) recordAll(packages []models.SensorPackage, source string) ([]database.Workout, error) {
	workouts := make([]database.Workout, 0, len(packages))
	var errs []error
	for i, pkg := range packages {
		w, err := s.Record(pkg)
		if err != nil {
			observability.RecordIngestFailure(source)
			errs = append(errs, fmt.Errorf("package %d (%s): %w", i, pkg.WorkoutType, err))
			continue
		}
		workouts = append(workouts, *w)
	}

	return workouts, errors.Join(errs...)
}

// ScanInbox ingests every file in the inbox and moves it to processed/ or failed/.
// It waits for a running Sync or ScanInbox to finish first.
func (s *Service) ScanInbox(ctx context.Context) (Result, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.scanInbox(ctx)
}

func (s *Service) scanInbox(ctx context.Context) (Result, error) {
	var result Result
	if s.inboxDir == "" {
		return result, nil
	}

	entries, err := os.ReadDir(s.inboxDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("failed to read inbox: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		path := filepath.Join(s.inboxDir, entry.Name())
		workouts, err := s.IngestFile(path)
		result.Recorded += len(workouts)

		target := processedDir
		if err != nil {
			s.logger.Printf("Error ingesting %s: %v", entry.Name(), err)
			result.Failed++
			if len(workouts) == 0 {
				target = failedDir
			}
		}

		if err := s.moveTo(path, target); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *Service) moveTo(path, dir string) error {
	targetDir := filepath.Join(s.inboxDir, dir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	target := filepath.Join(targetDir, filepath.Base(path))
	if _, err := os.Stat(target); err == nil {
		// keep the earlier file, suffix the new one
		ext := filepath.Ext(path)
		stem := strings.TrimSuffix(filepath.Base(path), ext)
		stamp := s.now().UTC().Format("20060102T150405")
		target = filepath.Join(targetDir, stem+"-"+stamp+ext)
		for n := 1; ; n++ {
			if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
				break
			}
			target = filepath.Join(targetDir, fmt.Sprintf("%s-%s-%d%s", stem, stamp, n, ext))
		}
	}
	return os.Rename(path, target)
}

// Sync pulls packages from the configured source, then scans the inbox.
// Concurrent calls run one after another.
func (s *Service) Sync(ctx context.Context) (Result, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	startTime := s.now()
	s.logger.Printf("Starting sync at %s", startTime.Format(time.RFC3339))
	defer func() {
		s.logger.Printf("Sync completed in %s", time.Since(startTime))
	}()

	var result Result
	var errs []error

	if s.source != nil {
		pulled, err := s.pull(ctx)
		result.add(pulled)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			errs = append(errs, err)
		}
	}

	scanned, err := s.scanInbox(ctx)
	result.add(scanned)
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		errs = append(errs, err)
	}

	observability.RecordSync(s.now())
	return result, errors.Join(errs...)
}

func (s *Service) pull(ctx context.Context) (Result, error) {
	var result Result

	packages, err := s.source.FetchPackages(ctx, s.batch)
	if err != nil {
		observability.RecordIngestFailure("gateway")
		return result, fmt.Errorf("failed to get packages: %w", err)
	}
	s.logger.Printf("Found %d packages on gateway", len(packages))

	for i, pkg := range packages {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if _, err := s.Record(pkg); err != nil {
			// Continue with next package on error
			s.logger.Printf("[%d/%d] Error recording %s package: %v", i+1, len(packages), pkg.WorkoutType, err)
			observability.RecordIngestFailure("gateway")
			result.Failed++
			continue
		}
		result.Recorded++
	}

	return result, nil
}
