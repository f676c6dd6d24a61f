package symptom

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Run is a persisted record of one completed pipeline invocation.
type Run struct {
	ID            uuid.UUID `json:"id"`
	Conversation  string    `json:"conversation"`
	Status        string    `json:"status"`
	Symptoms      *Record   `json:"symptoms,omitempty"`
	Medicines     []string  `json:"recommended_medicines,omitempty"`
	VoiceResponse string    `json:"voice_response"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRun snapshots the fields of a result worth keeping.
func NewRun(result PipelineResult) *Run {
	return &Run{
		ID:            uuid.New(),
		Conversation:  result.Conversation,
		Status:        result.Status,
		Symptoms:      result.Symptoms,
		Medicines:     result.RecommendedMedicines,
		VoiceResponse: result.VoiceResponse,
		CreatedAt:     time.Now(),
	}
}

// ErrRunNotFound is returned when no run exists for the requested ID.
var ErrRunNotFound = fmt.Errorf("pipeline run not found")

type Repository interface {
	Save(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

type postgresRepo struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var runColumns = []string{"id", "conversation", "status", "symptoms", "medicines", "voice_response", "created_at"}

func (r *postgresRepo) Save(ctx context.Context, run *Run) error {
	symptomsJSON, err := json.Marshal(run.Symptoms)
	if err != nil {
		return fmt.Errorf("marshal symptoms: %w", err)
	}
	medicinesJSON, err := json.Marshal(run.Medicines)
	if err != nil {
		return fmt.Errorf("marshal medicines: %w", err)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query, args, err := r.builder.
		Insert("pipeline_runs").
		Columns(runColumns...).
		Values(run.ID, run.Conversation, run.Status, symptomsJSON, medicinesJSON, run.VoiceResponse, run.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Run, error) {
	query, args, err := r.builder.
		Select(runColumns...).
		From("pipeline_runs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	return run, err
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query, args, err := r.builder.
		Select(runColumns...).
		From("pipeline_runs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var symptomsJSON, medicinesJSON []byte

	err := row.Scan(
		&run.ID,
		&run.Conversation,
		&run.Status,
		&symptomsJSON,
		&medicinesJSON,
		&run.VoiceResponse,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(symptomsJSON) > 0 {
		if err := json.Unmarshal(symptomsJSON, &run.Symptoms); err != nil {
			return nil, fmt.Errorf("unmarshal symptoms: %w", err)
		}
	}
	if len(medicinesJSON) > 0 {
		if err := json.Unmarshal(medicinesJSON, &run.Medicines); err != nil {
			return nil, fmt.Errorf("unmarshal medicines: %w", err)
		}
	}
	return &run, nil
}
