// Package testutil provides an in-memory database/sql driver that plays the
// crawl_reports table for the postgres report store tests. It recognises the
// statements the store issues by their leading keywords rather than parsing
// SQL.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Operations that can be made to fail through ReportDB.Fail.
const (
	OpPing   = "ping"
	OpDDL    = "ddl"
	OpBegin  = "begin"
	OpUpsert = "upsert"
	OpSelect = "select"
	OpCommit = "commit"
)

var errInjected = errors.New("injected failure")

// Row is one stored crawl report.
type Row struct {
	ID        string
	BaseURL   string
	StartedAt time.Time
	Payload   []byte
}

// ReportDB is the fake crawl_reports table behind a sql.DB.
type ReportDB struct {
	mu         sync.Mutex
	statements []string
	rows       map[string]Row
	fail       map[string]bool
}

var registered atomic.Int64

// Open registers a fresh driver and returns a sql.DB talking to a new
// ReportDB.
func Open() (*sql.DB, *ReportDB) {
	fake := &ReportDB{rows: make(map[string]Row), fail: make(map[string]bool)}
	name := fmt.Sprintf("fake-crawl-reports-%d", registered.Add(1))
	sql.Register(name, reportDriver{fake: fake})
	db, err := sql.Open(name, "")
	if err != nil {
		panic(err)
	}
	return db, fake
}

// Fail makes op return an error until Recover is called.
func (f *ReportDB) Fail(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = true
}

// Recover clears every injected failure.
func (f *ReportDB) Recover() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = make(map[string]bool)
}

// Statements returns the statements executed so far.
func (f *ReportDB) Statements() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statements...)
}

// Rows returns the stored reports ordered by id.
func (f *ReportDB) Rows() []Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Row, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *ReportDB) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[op] {
		return fmt.Errorf("%s: %w", op, errInjected)
	}
	return nil
}

type reportDriver struct {
	fake *ReportDB
}

func (d reportDriver) Open(string) (driver.Conn, error) { return &conn{fake: d.fake}, nil }

type conn struct {
	fake *ReportDB
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepared statements are not supported: %s", query)
}

func (c *conn) Close() error { return nil }

func (c *conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *conn) Ping(context.Context) error { return c.fake.check(OpPing) }

func (c *conn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if err := c.fake.check(OpBegin); err != nil {
		return nil, err
	}
	return tx{fake: c.fake}, nil
}

func (c *conn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	f := c.fake
	f.mu.Lock()
	f.statements = append(f.statements, query)
	f.mu.Unlock()

	switch keyword(query) {
	case "CREATE":
		if err := f.check(OpDDL); err != nil {
			return nil, err
		}
		return driver.RowsAffected(0), nil
	case "INSERT":
		if err := f.check(OpUpsert); err != nil {
			return nil, err
		}
		row, err := rowFromArgs(args)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.rows[row.ID] = row
		f.mu.Unlock()
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("unsupported statement: %s", query)
}

func (c *conn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	f := c.fake
	if keyword(query) != "SELECT" {
		return nil, fmt.Errorf("unsupported query: %s", query)
	}
	if err := f.check(OpSelect); err != nil {
		return nil, err
	}
	var out []Row
	if strings.Contains(strings.ToUpper(query), "WHERE ID = $1") {
		if len(args) != 1 {
			return nil, fmt.Errorf("want 1 argument, got %d", len(args))
		}
		f.mu.Lock()
		r, ok := f.rows[fmt.Sprint(args[0].Value)]
		f.mu.Unlock()
		if ok {
			out = append(out, r)
		}
	} else {
		out = f.Rows()
		sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	}
	return &rows{rows: out}, nil
}

func keyword(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

func rowFromArgs(args []driver.NamedValue) (Row, error) {
	if len(args) != 4 {
		return Row{}, fmt.Errorf("upsert wants 4 arguments, got %d", len(args))
	}
	id, _ := args[0].Value.(string)
	baseURL, _ := args[1].Value.(string)
	started, ok := args[2].Value.(time.Time)
	if !ok {
		return Row{}, fmt.Errorf("started_at must be a time, got %T", args[2].Value)
	}
	payload, _ := args[3].Value.([]byte)
	return Row{ID: id, BaseURL: baseURL, StartedAt: started, Payload: append([]byte(nil), payload...)}, nil
}

type tx struct {
	fake *ReportDB
}

func (t tx) Commit() error   { return t.fake.check(OpCommit) }
func (t tx) Rollback() error { return nil }

type rows struct {
	rows []Row
	next int
}

func (r *rows) Columns() []string { return []string{"id", "base_url", "started_at", "payload"} }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.next]
	r.next++
	dest[0], dest[1], dest[2], dest[3] = row.ID, row.BaseURL, row.StartedAt, row.Payload
	return nil
}
