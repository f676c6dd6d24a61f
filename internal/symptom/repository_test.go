package symptom

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func sampleRun() *Run {
	duration := "2 days"
	return &Run{
		ID:           uuid.New(),
		Conversation: "I have a headache",
		Status:       StatusSuccess,
		Symptoms: &Record{
			Symptoms: []string{"headache"},
			Severity: SeverityModerate,
			Duration: &duration,
		},
		Medicines:     []string{"acetaminophen", "ibuprofen"},
		VoiceResponse: "Try acetaminophen. Please consult a healthcare professional.",
		CreatedAt:     time.Now(),
	}
}

func TestRepositorySave(t *testing.T) {
	repo, mock := newMockRepo(t)
	run := sampleRun()

	symptomsJSON, _ := json.Marshal(run.Symptoms)
	medicinesJSON, _ := json.Marshal(run.Medicines)

	mock.ExpectExec("INSERT INTO pipeline_runs").
		WithArgs(run.ID, run.Conversation, run.Status, symptomsJSON, medicinesJSON, run.VoiceResponse, run.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	run := sampleRun()

	symptomsJSON, _ := json.Marshal(run.Symptoms)
	medicinesJSON, _ := json.Marshal(run.Medicines)

	rows := sqlmock.NewRows(runColumns).
		AddRow(run.ID.String(), run.Conversation, run.Status, symptomsJSON, medicinesJSON, run.VoiceResponse, run.CreatedAt)

	mock.ExpectQuery("SELECT id, conversation, status, symptoms, medicines, voice_response, created_at FROM pipeline_runs").
		WithArgs(run.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Conversation, got.Conversation)
	require.NotNil(t, got.Symptoms)
	assert.Equal(t, []string{"headache"}, got.Symptoms.Symptoms)
	assert.Equal(t, run.Medicines, got.Medicines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM pipeline_runs").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(runColumns))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRepositoryListRecent(t *testing.T) {
	repo, mock := newMockRepo(t)
	first := sampleRun()
	second := sampleRun()
	second.Conversation = "I can't sleep"

	rows := sqlmock.NewRows(runColumns).
		AddRow(first.ID.String(), first.Conversation, first.Status, []byte("null"), []byte("null"), first.VoiceResponse, first.CreatedAt).
		AddRow(second.ID.String(), second.Conversation, second.Status, []byte("null"), []byte("null"), second.VoiceResponse, second.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM pipeline_runs ORDER BY created_at DESC LIMIT 2").
		WillReturnRows(rows)

	runs, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, first.Conversation, runs[0].Conversation)
	assert.Nil(t, runs[0].Symptoms)
	assert.NoError(t, mock.ExpectationsWereMet())
}
