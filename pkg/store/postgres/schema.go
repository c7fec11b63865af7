// Package postgres implements the lead, task and chat stores on top of a
// postgres database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/internal"
)

var log = internal.GetLogger()

type LeadSchema struct {
	bun.BaseModel `bun:"table:lead,alias:l"`

	ID        int64                  `bun:",pk,autoincrement"`
	CreatedAt time.Time              `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time              `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	UserID    int64                  `bun:",notnull"`
	Name      string                 `bun:",notnull"`
	Email     string                 `bun:",nullzero"`
	Phone     string                 `bun:",nullzero"`
	Company   string                 `bun:",nullzero"`
	Source    string                 `bun:",notnull"`
	Notes     string                 `bun:",nullzero"`
	Score     int                    `bun:",notnull,default:0"`
	Status    string                 `bun:",notnull"`
	Metadata  map[string]interface{} `bun:"type:jsonb,nullzero,json_use_number"`
}

var _ bun.BeforeAppendModelHook = (*LeadSchema)(nil)

func (s *LeadSchema) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		s.UpdatedAt = time.Now()
	}
	return nil
}

type TaskSchema struct {
	bun.BaseModel `bun:"table:task,alias:t"`

	ID          int64      `bun:",pk,autoincrement"`
	CreatedAt   time.Time  `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time  `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	UserID      int64      `bun:",notnull"`
	Title       string     `bun:",notnull"`
	Description string     `bun:",nullzero"`
	DueDate     *time.Time `bun:"type:timestamptz,nullzero"`
	Priority    string     `bun:",notnull"`
	Status      string     `bun:",notnull"`
	RelatedTo   string     `bun:",nullzero"`
}

var _ bun.BeforeAppendModelHook = (*TaskSchema)(nil)

func (s *TaskSchema) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		s.UpdatedAt = time.Now()
	}
	return nil
}

type ConversationSchema struct {
	bun.BaseModel `bun:"table:conversation,alias:c"`

	ID        int64                  `bun:",pk,autoincrement"`
	CreatedAt time.Time              `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time              `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	UserID    int64                  `bun:",notnull"`
	Title     string                 `bun:",nullzero"`
	Metadata  map[string]interface{} `bun:"type:jsonb,nullzero,json_use_number"`
}

var _ bun.BeforeAppendModelHook = (*ConversationSchema)(nil)

func (s *ConversationSchema) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		s.UpdatedAt = time.Now()
	}
	return nil
}

type MessageSchema struct {
	bun.BaseModel `bun:"table:message,alias:m"`

	// ID doubles as the ordering cursor; CreatedAt can collide for
	// messages persisted in the same transaction.
	ID             int64                  `bun:",pk,autoincrement"`
	CreatedAt      time.Time              `bun:"type:timestamptz,nullzero,notnull,default:current_timestamp"`
	ConversationID int64                  `bun:",notnull"`
	Role           string                 `bun:",notnull"`
	Content        string                 `bun:",notnull"`
	Model          string                 `bun:",nullzero"`
	Metadata       map[string]interface{} `bun:"type:jsonb,nullzero,json_use_number"`
	Conversation   *ConversationSchema    `bun:"rel:belongs-to,join:conversation_id=id,on_delete:cascade"`
}

// tableList orders tables so that foreign key targets are created first.
var tableList = []interface{}{
	&MessageSchema{},
	&ConversationSchema{},
	&TaskSchema{},
	&LeadSchema{},
}

// CreateSchema creates the tables in the database if they do not exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	// reverse order so tables with foreign keys are created last
	for i := len(tableList) - 1; i >= 0; i-- {
		schema := tableList[i]
		_, err := db.NewCreateTable().
			Model(schema).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			// bun still trying to create indexes despite IfNotExists flag
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return fmt.Errorf("error creating table for schema %T: %w", schema, err)
		}
	}
	return nil
}

// NewPostgresConn creates a new bun.DB connection to a postgres database using the provided DSN.
// The connection is configured to pool connections based on the number of PROCs available.
func NewPostgresConn(cfg *config.Config) (*bun.DB, error) {
	if cfg.Store.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is not set")
	}

	maxOpenConns := 4 * runtime.GOMAXPROCS(0)

	sqldb := sql.OpenDB(
		pgdriver.NewConnector(
			pgdriver.WithDSN(cfg.Store.Postgres.DSN),
			pgdriver.WithReadTimeout(time.Minute),
		),
	)
	sqldb.SetMaxOpenConns(maxOpenConns)
	sqldb.SetMaxIdleConns(maxOpenConns)

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
