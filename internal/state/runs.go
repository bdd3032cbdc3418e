package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ShayCichocki/taskmill/pkg/models"
)

// Run represents one completed (or in-flight) Taskmill run.
type Run struct {
	ID             string     `json:"id"`
	Input          string     `json:"input"`
	TotalTasks     int        `json:"total_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	FailedTasks    int        `json:"failed_tasks"`
	ReportPath     string     `json:"report_path"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

// RunTask is the persisted form of an executed atomic task.
type RunTask struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id"`
	ParentID    string    `json:"parent_id"`
	Description string    `json:"description"`
	Solver      string    `json:"solver"`
	Status      string    `json:"status"`
	Result      string    `json:"result"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRun records a new run.
func (db *DB) CreateRun(r *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, input, total_tasks, completed_tasks, failed_tasks, report_path, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Input, r.TotalTasks, r.CompletedTasks, r.FailedTasks, r.ReportPath, formatTime(r.StartedAt))
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun records the final counts, report path and finish time of a run.
func (db *DB) FinishRun(r *Run) error {
	finished := time.Now()
	if r.FinishedAt != nil {
		finished = *r.FinishedAt
	}
	_, err := db.Exec(`
		UPDATE runs SET total_tasks = ?, completed_tasks = ?, failed_tasks = ?, report_path = ?, finished_at = ?
		WHERE id = ?
	`, r.TotalTasks, r.CompletedTasks, r.FailedTasks, r.ReportPath, formatTime(finished), r.ID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil if no such run exists.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, input, total_tasks, completed_tasks, failed_tasks, report_path, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// RecentRuns lists the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, input, total_tasks, completed_tasks, failed_tasks, report_path, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// SaveTasks persists the executed tasks of a run in one transaction.
func (db *DB) SaveTasks(runID string, tasks []*models.AtomicTask) error {
	return db.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO run_tasks (id, run_id, parent_id, description, solver, status, result, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare task insert: %w", err)
		}
		defer stmt.Close()

		for _, t := range tasks {
			_, err := stmt.Exec(t.ID, runID, t.ParentID, t.Description,
				t.AssignedSolver, string(t.Status), t.Result, formatTime(t.CreatedAt))
			if err != nil {
				return fmt.Errorf("insert task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// RunTasks lists the persisted tasks of a run in insertion order.
func (db *DB) RunTasks(runID string) ([]RunTask, error) {
	rows, err := db.Query(`
		SELECT id, run_id, parent_id, description, solver, status, result, created_at
		FROM run_tasks WHERE run_id = ? ORDER BY created_at, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("run tasks: %w", err)
	}
	defer rows.Close()

	var tasks []RunTask
	for rows.Next() {
		var t RunTask
		var parentID, solver, result sql.NullString
		var createdAt string
		err := rows.Scan(&t.ID, &t.RunID, &parentID, &t.Description, &solver, &t.Status, &result, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.ParentID = parentID.String
		t.Solver = solver.String
		t.Result = result.String
		t.CreatedAt, _ = parseTime(createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// rowScanner matches *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var reportPath sql.NullString
	var startedAt string
	var finishedAt sql.NullString
	err := row.Scan(&r.ID, &r.Input, &r.TotalTasks, &r.CompletedTasks, &r.FailedTasks,
		&reportPath, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	r.ReportPath = reportPath.String
	r.StartedAt, _ = parseTime(startedAt)
	r.FinishedAt = parseNullableTime(finishedAt)
	return &r, nil
}
