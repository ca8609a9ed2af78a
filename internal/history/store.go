// Package history persists evaluation reports. It lives outside the
// scoring core: the engine never reads or writes it, the CLI records
// reports after an evaluation completes.
package history

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"specvet/internal/engine"
)

// Store provides persistence for evaluation records.
type Store struct {
	db *sql.DB
}

// NewStore creates a store backed by an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record is one persisted evaluation.
type Record struct {
	EvalID       string
	CreatedAt    string
	DocPath      string
	ContentHash  string
	Verdict      string
	Completeness float64
	Clarity      float64
	Constraints  float64
	Specificity  float64
	Balance      float64
	Repaired     bool
	RepairAction string
	ReportJSON   string
}

// Report decodes the stored report payload.
func (r Record) Report() (*engine.Report, error) {
	var rep engine.Report
	if err := json.Unmarshal([]byte(r.ReportJSON), &rep); err != nil {
		return nil, fmt.Errorf("decode stored report: %w", err)
	}
	return &rep, nil
}

// NewEvalID returns a fresh random evaluation id.
func NewEvalID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return "eval-" + hex.EncodeToString(buf)
}

// HashContent returns the content hash recorded with each evaluation,
// so re-evaluations of an unchanged document are recognizable.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

// Save inserts the evaluation record and its finding rows in one
// transaction.
func (s *Store) Save(ctx context.Context, docPath, docText string, rep *engine.Report) (string, error) {
	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	evalID := NewEvalID()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("begin save evaluation: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO evaluations(
		eval_id, created_at, doc_path, content_hash, verdict,
		completeness, clarity, constraints, specificity, balance,
		repaired, repair_action, report_json)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evalID, createdAt, docPath, HashContent(docText), string(rep.Verdict),
		rep.Axes["completeness"], rep.Axes["clarity"], rep.Axes["constraints"], rep.Axes["specificity"], rep.Balance,
		rep.Repaired, string(rep.RepairAction), string(reportJSON)); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert evaluation: %w", err)
	}
	for i, f := range rep.Findings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO findings(eval_id, position, section, message, severity) VALUES(?, ?, ?, ?, ?)`,
			evalID, i, f.Section, f.Message, string(f.Severity)); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert finding: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save evaluation: %w", err)
	}
	return evalID, nil
}

// List returns evaluations newest first, up to limit; limit <= 0 means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT eval_id, created_at, doc_path, content_hash, verdict,
		completeness, clarity, constraints, specificity, balance,
		repaired, repair_action, report_json
		FROM evaluations ORDER BY created_at DESC, eval_id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.EvalID, &r.CreatedAt, &r.DocPath, &r.ContentHash, &r.Verdict,
			&r.Completeness, &r.Clarity, &r.Constraints, &r.Specificity, &r.Balance,
			&r.Repaired, &r.RepairAction, &r.ReportJSON); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, nil
}

// Get returns one evaluation by id.
func (s *Store) Get(ctx context.Context, evalID string) (Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx, `SELECT eval_id, created_at, doc_path, content_hash, verdict,
		completeness, clarity, constraints, specificity, balance,
		repaired, repair_action, report_json
		FROM evaluations WHERE eval_id = ?`, evalID).
		Scan(&r.EvalID, &r.CreatedAt, &r.DocPath, &r.ContentHash, &r.Verdict,
			&r.Completeness, &r.Clarity, &r.Constraints, &r.Specificity, &r.Balance,
			&r.Repaired, &r.RepairAction, &r.ReportJSON)
	if err != nil {
		return Record{}, fmt.Errorf("get evaluation %s: %w", evalID, err)
	}
	return r, nil
}
