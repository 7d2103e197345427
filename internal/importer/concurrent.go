package importer

import (
	"context"
	"sort"
	"sync"

	"tmerle/ledgerstage/internal/columns"
	"tmerle/ledgerstage/internal/tokenizer"
)

// concurrencyThreshold is the row count below which the importer stays
// sequential; the pool overhead is not worth it for small files.
const concurrencyThreshold = 100

// rowJob carries one data line and its 1-based file position.
type rowJob struct {
	line int
	raw  string
}

// processRows runs every data line through normalize-and-stage and returns
// the outcomes ordered by original file position. Lines whose every token
// is empty are skipped but still consume their line number.
func (i *Importer) processRows(ctx context.Context, userID string, lines []string, roles columns.RoleMap, source string) []rowResult {
	var jobs []rowJob
	for idx := 1; idx < len(lines); idx++ {
		raw := lines[idx]
		if tokenizer.IsBlank(tokenizer.SplitLine(raw, i.delimiter)) {
			continue
		}
		jobs = append(jobs, rowJob{line: idx + 1, raw: raw})
	}

	if i.workers <= 1 || len(jobs) < concurrencyThreshold {
		results := make([]rowResult, 0, len(jobs))
		for _, job := range jobs {
			results = append(results, i.processRow(ctx, userID, job.raw, source, roles, job.line))
		}
		return results
	}

	return i.processRowsConcurrent(ctx, userID, jobs, roles, source)
}

// processRowsConcurrent fans the jobs out to a bounded worker pool. Rows
// may be persisted out of file order; the collected results are sorted by
// line number afterwards so the report still reads in file order.
func (i *Importer) processRowsConcurrent(ctx context.Context, userID string, jobs []rowJob, roles columns.RoleMap, source string) []rowResult {
	jobChan := make(chan rowJob, i.workers)
	resultChan := make(chan rowResult, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < i.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				resultChan <- i.processRow(ctx, userID, job.raw, source, roles, job.line)
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case jobChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]rowResult, 0, len(jobs))
	for res := range resultChan {
		results = append(results, res)
	}

	sort.Slice(results, func(a, b int) bool {
		return results[a].line < results[b].line
	})

	return results
}
