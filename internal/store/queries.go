package store

// SQL query constants. PostgresStore methods reference these.

// Run queries.
const (
	queryInsertRun = `
		INSERT INTO smoke_runs (id, started_at, trigger)
		VALUES ($1, $2, $3)`

	queryCompleteRun = `
		UPDATE smoke_runs SET
			completed_at = $2,
			passed       = $3
		WHERE id = $1`

	queryGetRun = `
		SELECT id, started_at, completed_at, passed, trigger
		FROM smoke_runs
		WHERE id = $1`

	queryDeleteOldRuns = `
		DELETE FROM smoke_runs WHERE started_at < $1`
)

// Check result queries.
const (
	queryInsertCheckResult = `
		INSERT INTO check_results (run_id, name, status, message, details, duration_ms)
		VALUES (@run_id, @name, @status, @message, @details, @duration_ms)`

	queryListCheckResults = `
		SELECT run_id, name, status, COALESCE(message, ''), COALESCE(details, '{}'), duration_ms
		FROM check_results
		WHERE run_id = $1
		ORDER BY id`
)
