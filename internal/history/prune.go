package history

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"specvet/internal/config"
)

// PruneResult summarizes a prune operation.
type PruneResult struct {
	Considered int
	Kept       int
	Deleted    int
}

// Prune deletes old evaluation records according to the retention
// policy. Finding rows cascade with their evaluation.
func (s *Store) Prune(ctx context.Context, policy config.RetentionPolicy, dryRun bool) (PruneResult, error) {
	if policy.KeepLast <= 0 && policy.KeepDays <= 0 {
		return PruneResult{}, nil
	}
	cutoff := time.Time{}
	if policy.KeepDays > 0 {
		cutoff = time.Now().UTC().Add(-time.Duration(policy.KeepDays) * 24 * time.Hour)
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		return PruneResult{}, err
	}

	res := PruneResult{Considered: len(records)}
	for idx, r := range records {
		keep := false
		if policy.KeepLast > 0 && idx < policy.KeepLast {
			keep = true
		}
		if !keep && policy.KeepDays > 0 {
			createdAt, parseErr := time.Parse(time.RFC3339, r.CreatedAt)
			if parseErr != nil || createdAt.After(cutoff) {
				keep = true
			}
		}
		if keep {
			res.Kept++
			continue
		}
		if dryRun {
			res.Deleted++
			continue
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE eval_id = ?`, r.EvalID); err != nil {
			return res, fmt.Errorf("delete evaluation %s: %w", r.EvalID, err)
		}
		log.Debug().Str("eval_id", r.EvalID).Msg("pruned evaluation")
		res.Deleted++
	}
	return res, nil
}
