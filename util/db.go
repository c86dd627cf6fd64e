package util

import (
	"database/sql"
	"net/url"
	"time"

	"github.com/google/uuid"
	_ "github.com/xeodou/go-sqlcipher"
)

/*
 * encrypted journal of hide sessions. it never stores keys or messages,
 * only what is needed to tell which key belongs to which stego image.
 */
type DB struct {
	db        *sql.DB
	rowsLimit uint
}

type Session struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	CarrierHash string    `json:"carrier_hash"`
	Fingerprint string    `json:"key_fingerprint"`
	Format      string    `json:"format"`
	Output      string    `json:"output"`
}

func ConnectDB(filename, password string, rowsLimit uint) (*DB, error) {

	dbFilename := "file:" + url.QueryEscape(filename)
	dbFilename += "?_journal_mode=WAL&_key=" + url.QueryEscape(password)

	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		return nil, err
	}
	final := &DB{
		db:        db,
		rowsLimit: rowsLimit,
	}
	// check amount of rows
	rows, err := final.Count()
	if err == nil && uint(rows) > rowsLimit {
		db.Close()
		ShredFile(filename)
		// call recursively, as it won't go on the depth more than 1
		return ConnectDB(filename, password, rowsLimit)
	} // else the database was not existing before
	return final, nil
}

func (db *DB) Close() {
	db.db.Close()
}

func (db *DB) InitDB() error {
	sqlStmt := `create table if not exists sessions(
		id text not null primary key,
		created integer not null,
		carrier text,
		fingerprint text,
		format text,
		output text);`
	if _, err := db.db.Exec(sqlStmt); err != nil {
		return err
	}
	_, err := db.db.Exec(`create index if not exists fingerprintIdx on sessions(fingerprint);`)
	return err
}

// AddSession stores a session, filling in id and time when missing.
func (db *DB) AddSession(s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Created.IsZero() {
		s.Created = time.Now()
	}
	_, err := db.db.Exec(
		"insert into sessions(id, created, carrier, fingerprint, format, output) values(?, ?, ?, ?, ?, ?);",
		s.ID, s.Created.Unix(), s.CarrierHash, s.Fingerprint, s.Format, s.Output,
	)
	return err
}

// FindByFingerprint returns the sessions made with a key.
func (db *DB) FindByFingerprint(fingerprint string) ([]Session, error) {
	return db.query(`select id, created, carrier, fingerprint, format, output
		from sessions where fingerprint = ? order by created desc;`, fingerprint)
}

// List returns the latest sessions, at most limit of them.
func (db *DB) List(limit int) ([]Session, error) {
	return db.query(`select id, created, carrier, fingerprint, format, output
		from sessions order by created desc limit ?;`, limit)
}

func (db *DB) query(stmt string, args ...any) ([]Session, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []Session{}
	for rows.Next() {
		var s Session
		var created int64
		if err := rows.Scan(&s.ID, &created, &s.CarrierHash, &s.Fingerprint, &s.Format, &s.Output); err != nil {
			return nil, err
		}
		s.Created = time.Unix(created, 0)
		result = append(result, s)
	}
	return result, rows.Err()
}

func (db *DB) Count() (int, error) {
	var amount int
	if err := db.db.QueryRow(`select count(*) from sessions;`).Scan(&amount); err != nil {
		return -1, err
	}
	return amount, nil
}
