// Package history stores finished and in-progress sessions in SQLite so a
// game can be audited turn by turn.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"war/engine"
)

var ErrSessionNotFound = errors.New("session not found")

// DB wraps a SQLite connection for session history.
type DB struct {
	conn *sqlx.DB
}

// SessionRow is one stored session.
type SessionRow struct {
	ID            string `db:"id"`
	MissionID     int    `db:"mission_id"`
	Mission       string `db:"mission"`
	PlayerFaction string `db:"player_faction"`
	Status        string `db:"status"`
	Turns         int    `db:"turns"`
	StartedAt     int64  `db:"started_at"` // unix milliseconds
	EndedAt       int64  `db:"ended_at"`   // unix milliseconds, 0 while active
}

func (r SessionRow) Started() time.Time {
	return time.UnixMilli(r.StartedAt)
}

// TurnRow is one stored attack.
type TurnRow struct {
	SessionID       string `db:"session_id"`
	Number          int    `db:"number"`
	Attacker        string `db:"attacker"`
	Defender        string `db:"defender"`
	AttackerFaction string `db:"attacker_faction"`
	DefenderFaction string `db:"defender_faction"`
	AttackRoll      int    `db:"attack_roll"`
	DefenseRoll     int    `db:"defense_roll"`
	Outcome         string `db:"outcome"`
	AttackerAfter   int    `db:"attacker_after"`
	DefenderAfter   int    `db:"defender_after"`
	MissionComplete bool   `db:"mission_complete"`
	Status          string `db:"status"`
	Hash            string `db:"hash"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows one writer; batch runs share this handle across goroutines.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mission_id INTEGER NOT NULL,
		mission TEXT NOT NULL,
		player_faction TEXT NOT NULL,
		status TEXT NOT NULL,
		turns INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS turns (
		session_id TEXT NOT NULL REFERENCES sessions(id),
		number INTEGER NOT NULL,
		attacker TEXT NOT NULL,
		defender TEXT NOT NULL,
		attacker_faction TEXT NOT NULL,
		defender_faction TEXT NOT NULL,
		attack_roll INTEGER NOT NULL,
		defense_roll INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		attacker_after INTEGER NOT NULL,
		defender_after INTEGER NOT NULL,
		mission_complete INTEGER NOT NULL,
		status TEXT NOT NULL,
		hash TEXT NOT NULL,
		PRIMARY KEY (session_id, number)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateSession stores a new session and its mission.
func (db *DB) CreateSession(s *engine.Session) error {
	mission := s.Mission()
	_, err := db.conn.Exec(
		`INSERT INTO sessions (id, mission_id, mission, player_faction, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID(), mission.ID, mission.Description, s.Faction(), s.Status().String(), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("create session %s: %w", s.ID(), err)
	}
	return nil
}

// RecordTurn stores one resolved attack. It satisfies engine.Recorder.
func (db *DB) RecordTurn(sessionID string, turn engine.Turn) error {
	return db.recordTurn(sessionID, turn, "", "")
}

// Recorder returns an engine.Recorder that also stores territory names.
// names[i] names registry index i; indices past the end are stored as numbers.
func (db *DB) Recorder(names []string) engine.Recorder {
	return namedRecorder{db: db, names: names}
}

type namedRecorder struct {
	db    *DB
	names []string
}

func (n namedRecorder) RecordTurn(sessionID string, turn engine.Turn) error {
	return n.db.recordTurn(sessionID, turn, n.name(turn.Attacker), n.name(turn.Defender))
}

func (n namedRecorder) name(i int) string {
	if i < 0 || i >= len(n.names) {
		return ""
	}
	return n.names[i]
}

func (db *DB) recordTurn(sessionID string, turn engine.Turn, attacker, defender string) error {
	if attacker == "" {
		attacker = strconv.Itoa(turn.Attacker)
	}
	if defender == "" {
		defender = strconv.Itoa(turn.Defender)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO turns (session_id, number, attacker, defender, attacker_faction, defender_faction,
			attack_roll, defense_roll, outcome, attacker_after, defender_after, mission_complete, status, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, turn.Number, attacker, defender, turn.AttackerFaction, turn.DefenderFaction,
		turn.AttackRoll, turn.DefenseRoll, turn.Outcome.String(), turn.AttackerAfter, turn.DefenderAfter,
		turn.MissionComplete, turn.Status.String(), strconv.FormatUint(uint64(turn.Hash), 10),
	)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", turn.Number, err)
	}

	res, err := tx.Exec(`UPDATE sessions SET turns = ?, status = ? WHERE id = ?`,
		turn.Number, turn.Status.String(), sessionID)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sessionID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("record turn: %w: %s", ErrSessionNotFound, sessionID)
	}

	return tx.Commit()
}

// FinishSession stamps the session's final status and end time.
func (db *DB) FinishSession(id string, status string) error {
	res, err := db.conn.Exec(`UPDATE sessions SET status = ?, ended_at = ? WHERE id = ?`,
		status, time.Now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("finish session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish session: %w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Session loads one stored session.
func (db *DB) Session(id string) (SessionRow, error) {
	var row SessionRow
	err := db.conn.Get(&row, `SELECT * FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRow{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return SessionRow{}, fmt.Errorf("load session %s: %w", id, err)
	}
	return row, nil
}

// Turns loads a session's turns in play order.
func (db *DB) Turns(sessionID string) ([]TurnRow, error) {
	var rows []TurnRow
	if err := db.conn.Select(&rows, `SELECT * FROM turns WHERE session_id = ? ORDER BY number`, sessionID); err != nil {
		return nil, fmt.Errorf("load turns of %s: %w", sessionID, err)
	}
	return rows, nil
}

// CountByStatus tallies stored sessions per status.
func (db *DB) CountByStatus() (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	if err := db.conn.Select(&rows, `SELECT status, COUNT(*) AS n FROM sessions GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
