package store

import (
	"database/sql"
	"fmt"

	"taskapp/model"

	_ "github.com/mattn/go-sqlite3"
)

const localSchemaVersion = 1

// LocalStore is the embedded SQLite fallback the mobile builds shipped
// with. The live data path goes through FirestoreStore; this helper is
// kept for offline experiments and is not wired into the server.
type LocalStore struct {
	db *sql.DB
}

func OpenLocalStore(path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &LocalStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) createTables() error {
	ddl := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT,
  email TEXT UNIQUE,
  password TEXT
);
CREATE TABLE IF NOT EXISTS tasks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT,
  description TEXT,
  due_date TEXT,
  priority TEXT,
  status TEXT,
  assigned_to TEXT,
  owner_id TEXT,
  created_at INTEGER
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Upgrade is the single-version migration strategy: drop everything and
// recreate. Local data is a cache of the remote store, so losing it is fine.
func (s *LocalStore) Upgrade() error {
	if _, err := s.db.Exec(`DROP TABLE IF EXISTS users; DROP TABLE IF EXISTS tasks;`); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return s.createTables()
}

func (s *LocalStore) AddTask(task model.Task) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, description, due_date, priority, status, assigned_to, owner_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.Title, task.Description, task.DueDate, task.Priority, task.Status,
		task.AssignedTo, task.OwnerID, task.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *LocalStore) AllTasks(ownerID string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, due_date, priority, status, assigned_to, owner_id, created_at
		 FROM tasks WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var rowID int64
		if err := rows.Scan(&rowID, &t.Title, &t.Description, &t.DueDate, &t.Priority,
			&t.Status, &t.AssignedTo, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.TaskID = fmt.Sprintf("%d", rowID)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *LocalStore) UpdateTaskStatus(rowID int64, status model.Status) error {
	_, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, status, rowID)
	return err
}

func (s *LocalStore) DeleteTask(rowID int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, rowID)
	return err
}

func (s *LocalStore) AddUser(user model.User) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO users (username, email, password) VALUES (?, ?, ?)`,
		user.Username, user.Email, user.Password,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *LocalStore) UserByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT username, email, password FROM users WHERE email = ?`, email)
	var u model.User
	if err := row.Scan(&u.Username, &u.Email, &u.Password); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
