package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Navteca/cline/internal/log"
	"github.com/Navteca/cline/internal/model"
	"github.com/Navteca/cline/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// CreateTask creates a new task in the repository.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (id, title, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query, t.ID, t.Title, t.Status, t.Error, t.CreatedAt.Unix(), t.UpdatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	for i, m := range t.Messages {
		if err := insertMessage(ctx, tx, t.ID, i, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Created task in repository: %s", t.ID)
	return nil
}

// GetTask retrieves a task by ID, including its messages in conversation order.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	query := `
		SELECT id, title, status, error, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	messages, err := r.listMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Messages = messages

	return &task, nil
}

// ListTasks returns all tasks ordered by creation time, including messages.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	query := `
		SELECT id, title, status, error, created_at, updated_at
		FROM tasks
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range tasks {
		messages, err := r.listMessages(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Messages = messages
	}

	return tasks, nil
}

// AppendMessage appends a message to an existing task and refreshes the
// task's updated_at timestamp.
func (r *Repository) AppendMessage(ctx context.Context, taskID string, m model.Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE tasks SET updated_at = ? WHERE id = ?`, m.Timestamp.Unix(), taskID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	query := `
		INSERT INTO messages (id, task_id, sequence, role, content, metadata, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(sequence), -1) + 1 FROM messages WHERE task_id = ?), ?, ?, ?, ?)
	`

	metadata, err := marshalMetadata(m.Metadata)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query, m.ID, taskID, taskID, m.Role, m.Content, metadata, m.Timestamp.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: messages.id") {
			return fmt.Errorf("message already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Appended message %s to task %s", m.ID, taskID)
	return nil
}

// UpdateTaskStatus updates the status and error of an existing task.
func (r *Repository) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, taskErr string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ?, error = ? WHERE id = ?`, status, taskErr, taskID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated task %s status to %s", taskID, status)
	return nil
}

func (r *Repository) listMessages(ctx context.Context, taskID string) ([]model.Message, error) {
	query := `
		SELECT id, role, content, metadata, created_at
		FROM messages
		WHERE task_id = ?
		ORDER BY sequence ASC
	`

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("could not query messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		var metadata sql.NullString
		var createdAt int64

		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		m.Timestamp = timeFromUnix(createdAt)
		if metadata.Valid {
			meta := &model.MessageMetadata{}
			if err := json.Unmarshal([]byte(metadata.String), meta); err != nil {
				return nil, fmt.Errorf("could not decode message metadata: %w", err)
			}
			m.Metadata = meta
		}

		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}

func insertMessage(ctx context.Context, tx *sql.Tx, taskID string, sequence int, m model.Message) error {
	metadata, err := marshalMetadata(m.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO messages (id, task_id, sequence, role, content, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query, m.ID, taskID, sequence, m.Role, m.Content, metadata, m.Timestamp.Unix())
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	return nil
}

func marshalMetadata(m *model.MessageMetadata) (*string, error) {
	if m == nil {
		return nil, nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("could not encode message metadata: %w", err)
	}

	s := string(data)
	return &s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var task model.Task
	var createdAt, updatedAt int64

	err := s.Scan(&task.ID, &task.Title, &task.Status, &task.Error, &createdAt, &updatedAt)
	if err != nil {
		return model.Task{}, err
	}

	task.CreatedAt = timeFromUnix(createdAt)
	task.UpdatedAt = timeFromUnix(updatedAt)

	return task, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
