package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrInvalidTable means the logical table name is not whitelisted
	ErrInvalidTable = errors.New("invalid table")
	// ErrBadRequest means the operation payload is malformed or empty
	ErrBadRequest = errors.New("bad request")
)

// Logical table names exposed to the admin surface
const (
	TableSubscribers  = "subscribers"
	TableRegions      = "regions"
	TableBroadcastLog = "broadcastLog"
)

// Filters are the admin-supplied query parameters. Anything outside a
// table's sort whitelist or the two order directions falls back to the
// table default; the raw values are never interpolated into SQL.
type Filters struct {
	Search string
	SortBy string
	Order  string
}

// Row is a single record keyed by projected column name
type Row map[string]interface{}

// Result is an ordered query result. Columns preserves the projection
// order so CSV export can emit a stable header.
type Result struct {
	Columns []string
	Rows    []Row
}

// tableSpec describes the query shape of one logical table
type tableSpec struct {
	sqlName     string
	baseSelect  string
	searchWhere string
	searchCols  int
	sortKeys    map[string]string
	defaultSort string
	fixedOrder  string
	useLogStore bool
}

var tables = map[string]tableSpec{
	TableSubscribers: {
		sqlName: "subscribers",
		baseSelect: `SELECT s.*, r.name AS region_name
			FROM subscribers s
			LEFT JOIN regions r ON s.region_id = r.id`,
		searchWhere: ` WHERE (s.user_id LIKE ? OR s.first_name LIKE ? OR s.username LIKE ? OR s.comment LIKE ? OR r.name LIKE ?)`,
		searchCols:  5,
		sortKeys: map[string]string{
			"id":             "s.id",
			"user_id":        "s.user_id",
			"first_name":     "s.first_name",
			"subscribe_date": "s.subscribe_date",
		},
		defaultSort: "s.id",
	},
	TableRegions: {
		sqlName:    "regions",
		baseSelect: `SELECT * FROM regions`,
		fixedOrder: ` ORDER BY name ASC`,
	},
	TableBroadcastLog: {
		sqlName:     "broadcast_log",
		baseSelect:  `SELECT * FROM broadcast_log`,
		searchWhere: ` WHERE (message LIKE ? OR user_ids LIKE ?)`,
		searchCols:  2,
		sortKeys: map[string]string{
			"id":             "id",
			"timestamp":      "timestamp",
			"recipient_type": "recipient_type",
		},
		defaultSort: "id",
		useLogStore: true,
	},
}

// Valid reports whether name is a whitelisted logical table
func Valid(name string) bool {
	_, ok := tables[name]
	return ok
}

// Manager is the generic query/CRUD engine over the whitelisted logical
// tables. It routes each table to its backing store.
type Manager struct {
	primary *sqlx.DB
	logDB   *sqlx.DB
}

// NewManager creates a table manager over the two stores
func NewManager(primary, logDB *sqlx.DB) *Manager {
	return &Manager{primary: primary, logDB: logDB}
}

func (m *Manager) storeFor(spec tableSpec) *sqlx.DB {
	if spec.useLogStore {
		return m.logDB
	}
	return m.primary
}

// Query runs a filtered, sorted select against a logical table. An empty
// result is a valid outcome, not an error.
func (m *Manager) Query(table string, filters Filters) (*Result, error) {
	spec, ok := tables[table]
	if !ok {
		return nil, ErrInvalidTable
	}

	query := spec.baseSelect
	var args []interface{}

	if filters.Search != "" && spec.searchWhere != "" {
		query += spec.searchWhere
		term := "%" + filters.Search + "%"
		for i := 0; i < spec.searchCols; i++ {
			args = append(args, term)
		}
	}

	if spec.fixedOrder != "" {
		query += spec.fixedOrder
	} else {
		query += fmt.Sprintf(" ORDER BY %s %s", spec.sortColumn(filters.SortBy), orderDirection(filters.Order))
	}

	rows, err := m.storeFor(spec).Queryx(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading %s columns: %w", table, err)
	}

	result := &Result{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}

	return result, nil
}

// sortColumn maps an external sort key to a known-safe column reference,
// falling back to the table default for anything outside the whitelist
func (spec tableSpec) sortColumn(key string) string {
	if col, ok := spec.sortKeys[key]; ok {
		return col
	}
	return spec.defaultSort
}

// orderDirection admits only the two literal directions
func orderDirection(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// InsertRegion creates a region. A duplicate name is reported as a false
// result rather than an error: it is an expected business outcome.
func (m *Manager) InsertRegion(name string) (bool, error) {
	if name == "" {
		return false, ErrBadRequest
	}

	_, err := m.primary.Exec(`INSERT INTO regions (name) VALUES (?)`, name)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return false, nil
		}
		return false, fmt.Errorf("inserting region: %w", err)
	}
	return true, nil
}

// UpdateRegion renames the region matching id. A missing id is a no-op.
func (m *Manager) UpdateRegion(id int64, name string) error {
	if id == 0 || name == "" {
		return ErrBadRequest
	}

	if _, err := m.primary.Exec(`UPDATE regions SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("updating region %d: %w", id, err)
	}
	return nil
}

// Delete removes all rows of a logical table whose id is in ids.
// Non-existent ids are silently ignored.
func (m *Manager) Delete(table string, ids []int64) error {
	spec, ok := tables[table]
	if !ok {
		return ErrInvalidTable
	}
	if len(ids) == 0 {
		return ErrBadRequest
	}

	query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE id IN (?)", spec.sqlName), ids)
	if err != nil {
		return fmt.Errorf("building delete for %s: %w", table, err)
	}

	if _, err := m.storeFor(spec).Exec(query, args...); err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	return nil
}
