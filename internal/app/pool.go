package service

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gradefold/gradefold/internal/adapters/spreadsheet"
	"github.com/gradefold/gradefold/internal/domain/assignment"
	"github.com/gradefold/gradefold/internal/domain/coursetotal"
	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/rubric"
	"github.com/gradefold/gradefold/internal/domain/table"
	"github.com/gradefold/gradefold/pkg/logger"
	"github.com/gradefold/gradefold/pkg/metrics"
)

// parseJob pairs one assignment workbook with its already-read raw table and
// its position in the discovered ordering.
type parseJob struct {
	index int
	path  string
	raw   *table.Table
}

type parseResult struct {
	index  int
	parsed *assignment.Parsed
	err    error
}

// parseAll fans the assignment jobs out across a bounded pool of workers and
// reassembles the results in job order. The first parse failure cancels the
// remaining work and is returned.
func (s *Service) parseAll(ctx context.Context, jobs []parseJob, resolver *coursetotal.Resolver, ros *roster.Roster) ([]*assignment.Parsed, error) {
	workers := s.workerCount
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobCh := make(chan parseJob)
	resultCh := make(chan parseResult, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}

				start := time.Now()
				parsed, err := s.parseOne(ctx, job, resolver, ros)
				metrics.ObserveParseDuration(time.Since(start).Seconds())
				if err != nil {
					metrics.RecordAssignmentFailed()
				} else {
					metrics.RecordAssignmentParsed()
				}
				resultCh <- parseResult{index: job.index, parsed: parsed, err: err}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	parsed := make([]*assignment.Parsed, len(jobs))
	var firstErr error
	for res := range resultCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		parsed[res.index] = res.parsed
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return parsed, nil
}

// parseOne transforms a single assignment workbook, resolving its criterion
// labels from the sibling rubric CSV when one exists.
func (s *Service) parseOne(ctx context.Context, job parseJob, resolver *coursetotal.Resolver, ros *roster.Roster) (*assignment.Parsed, error) {
	opts := []assignment.Option{
		assignment.WithHeaderMarker(s.headerMarker),
		assignment.WithExclusion(table.ExcludeContaining(s.exclusionTerms...)),
		assignment.WithLabelResolver(func(expected int) []string {
			return rubric.Resolve(job.path, expected, spreadsheet.ReadCSV)
		}),
	}
	if s.strictMatching {
		opts = append(opts, assignment.WithStrictMatching())
	}
	if stem, ok := s.columnOverrides[fileStem(job.path)]; ok {
		opts = append(opts, assignment.WithColumnOverride(stem))
	}

	parsed, err := assignment.Parse(job.raw, resolver, ros, opts...)
	if err != nil {
		s.logger.Error(ctx, "assignment parse failed",
			logger.String("path", job.path),
			logger.Error(err))
		return nil, err
	}

	s.logger.Debug(ctx, "assignment parsed",
		logger.String("path", job.path),
		logger.String("title", parsed.Title),
		logger.Int("criteria", len(parsed.CriterionColumns)))
	return parsed, nil
}

// fileStem returns the workbook file name without its extension, the key
// used for per-assignment column overrides.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
