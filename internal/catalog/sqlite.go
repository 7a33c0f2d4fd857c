package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fixdesk/internal/debug"
	apperrors "fixdesk/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

// migrations are applied in order; PRAGMA user_version records progress.
var migrations = []string{
	`CREATE TABLE entities (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE UNIQUE INDEX entities_kind_name ON entities(kind, name COLLATE NOCASE);
	CREATE TABLE services (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		device_id   TEXT REFERENCES entities(id),
		updated_at  TEXT NOT NULL
	);
	CREATE TABLE service_items (
		service_id  TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		brand_id    TEXT REFERENCES entities(id),
		warranty_id TEXT REFERENCES entities(id),
		price_cents INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (service_id, position)
	);`,
}

// SQLiteStore persists the catalog in a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// OpenSQLite opens (creating if needed) the database at dbPath and applies
// pending migrations.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "database path is required", nil)
	}
	db, err := sql.Open("sqlite", buildSQLiteDSN(trimmed))
	if err != nil {
		return nil, storageErr("open catalog db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageErr("ping catalog db", err)
	}
	s := &SQLiteStore{db: db, dbPath: trimmed, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	debug.Debug("catalog db opened", zap.String("path", trimmed))
	return s, nil
}

// buildSQLiteDSN creates a read-write WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return storageErr("read schema version", err)
	}
	for i := version; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return storageErr("begin migration", err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return storageErr(fmt.Sprintf("apply migration %d", i+1), err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return storageErr("record schema version", err)
		}
		if err := tx.Commit(); err != nil {
			return storageErr("commit migration", err)
		}
		debug.Debug("catalog migration applied", zap.Int("version", i+1))
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

func (s *SQLiteStore) List(ctx context.Context, kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM entities
		WHERE kind = ?
		ORDER BY rowid
	`, string(kind))
	if err != nil {
		return nil, storageErr("query "+string(kind)+"s", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Entity
	for rows.Next() {
		var e Entity
		var created string
		if err := rows.Scan(&e.ID, &e.Name, &created); err != nil {
			return nil, storageErr("scan "+string(kind), err)
		}
		e.Kind = kind
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate "+string(kind)+"s", err)
	}
	return out, nil
}

func (s *SQLiteStore) Create(ctx context.Context, kind Kind, name string) (Entity, error) {
	if err := checkKind(kind); err != nil {
		return Entity{}, err
	}
	trimmed, err := normalizeName(kind, name)
	if err != nil {
		return Entity{}, err
	}
	taken, err := s.nameTaken(ctx, kind, trimmed, "")
	if err != nil {
		return Entity{}, err
	}
	if taken {
		return Entity{}, duplicateName(kind, trimmed)
	}
	e := Entity{ID: uuid.NewString(), Kind: kind, Name: trimmed, CreatedAt: s.now().UTC()}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO entities (id, kind, name, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, string(kind), e.Name, formatTime(e.CreatedAt),
	); err != nil {
		return Entity{}, storageErr("insert "+string(kind), err)
	}
	debug.Debug("catalog entity created", zap.String("kind", string(kind)), zap.String("id", e.ID), zap.String("name", e.Name))
	return e, nil
}

func (s *SQLiteStore) Rename(ctx context.Context, kind Kind, id, name string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	trimmed, err := normalizeName(kind, name)
	if err != nil {
		return err
	}
	if _, err := s.entityName(ctx, kind, id); err != nil {
		return err
	}
	taken, err := s.nameTaken(ctx, kind, trimmed, id)
	if err != nil {
		return err
	}
	if taken {
		return duplicateName(kind, trimmed)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE entities SET name = ? WHERE id = ? AND kind = ?`, trimmed, id, string(kind)); err != nil {
		return storageErr("rename "+string(kind), err)
	}
	debug.Debug("catalog entity renamed", zap.String("kind", string(kind)), zap.String("id", id), zap.String("name", trimmed))
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, kind Kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	name, err := s.entityName(ctx, kind, id)
	if err != nil {
		return err
	}
	refs, err := s.countRefs(ctx, kind, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return inUse(kind, name, refs)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, id); err != nil {
		return storageErr("delete "+string(kind), err)
	}
	debug.Debug("catalog entity deleted", zap.String("kind", string(kind)), zap.String("id", id))
	return nil
}

func (s *SQLiteStore) Services(ctx context.Context) ([]Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, COALESCE(device_id, ''), updated_at
		FROM services
		ORDER BY rowid
	`)
	if err != nil {
		return nil, storageErr("query services", err)
	}
	var services []Service
	index := make(map[string]int)
	for rows.Next() {
		var svc Service
		var updated string
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.DeviceID, &updated); err != nil {
			_ = rows.Close()
			return nil, storageErr("scan service", err)
		}
		svc.UpdatedAt = parseTime(updated)
		index[svc.ID] = len(services)
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, storageErr("iterate services", err)
	}
	_ = rows.Close()

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT service_id, COALESCE(brand_id, ''), COALESCE(warranty_id, ''), price_cents
		FROM service_items
		ORDER BY service_id, position
	`)
	if err != nil {
		return nil, storageErr("query service items", err)
	}
	defer func() {
		_ = itemRows.Close()
	}()
	for itemRows.Next() {
		var serviceID string
		var item LineItem
		if err := itemRows.Scan(&serviceID, &item.BrandID, &item.WarrantyID, &item.PriceCents); err != nil {
			return nil, storageErr("scan service item", err)
		}
		if i, ok := index[serviceID]; ok {
			services[i].Items = append(services[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, storageErr("iterate service items", err)
	}
	return services, nil
}

func (s *SQLiteStore) SaveService(ctx context.Context, svc Service) (Service, error) {
	trimmed, err := normalizeName("service", svc.Name)
	if err != nil {
		return Service{}, err
	}
	svc = cloneService(svc)
	svc.Name = trimmed
	svc.UpdatedAt = s.now().UTC()
	insert := svc.ID == ""
	if insert {
		svc.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Service{}, storageErr("begin save service", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := checkRefsTx(ctx, tx, svc); err != nil {
		return Service{}, err
	}

	if insert {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO services (id, name, description, device_id, updated_at) VALUES (?, ?, ?, ?, ?)`,
			svc.ID, svc.Name, svc.Description, nullable(svc.DeviceID), formatTime(svc.UpdatedAt))
	} else {
		var res sql.Result
		res, err = tx.ExecContext(ctx,
			`UPDATE services SET name = ?, description = ?, device_id = ?, updated_at = ? WHERE id = ?`,
			svc.Name, svc.Description, nullable(svc.DeviceID), formatTime(svc.UpdatedAt), svc.ID)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				return Service{}, notFound("service", svc.ID)
			}
		}
	}
	if err != nil {
		return Service{}, storageErr("write service", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM service_items WHERE service_id = ?`, svc.ID); err != nil {
		return Service{}, storageErr("clear service items", err)
	}
	for i, item := range svc.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO service_items (service_id, position, brand_id, warranty_id, price_cents) VALUES (?, ?, ?, ?, ?)`,
			svc.ID, i, nullable(item.BrandID), nullable(item.WarrantyID), item.PriceCents,
		); err != nil {
			return Service{}, storageErr("insert service item", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Service{}, storageErr("commit service", err)
	}
	debug.Debug("catalog service saved", zap.String("id", svc.ID), zap.Bool("insert", insert), zap.Int("items", len(svc.Items)))
	return svc, nil
}

func (s *SQLiteStore) DeleteService(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete service", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("service", id)
	}
	debug.Debug("catalog service deleted", zap.String("id", id))
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) entityName(ctx context.Context, kind Kind, id string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM entities WHERE id = ? AND kind = ?`, id, string(kind)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound(string(kind), id)
	}
	if err != nil {
		return "", storageErr("lookup "+string(kind), err)
	}
	return name, nil
}

func (s *SQLiteStore) nameTaken(ctx context.Context, kind Kind, name, exceptID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entities WHERE kind = ? AND name = ? COLLATE NOCASE AND id != ?`,
		string(kind), name, exceptID).Scan(&n)
	if err != nil {
		return false, storageErr("check "+string(kind)+" name", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) countRefs(ctx context.Context, kind Kind, id string) (int, error) {
	var query string
	switch kind {
	case KindDevice:
		query = `SELECT COUNT(*) FROM services WHERE device_id = ?`
	case KindBrand:
		query = `SELECT COUNT(DISTINCT service_id) FROM service_items WHERE brand_id = ?`
	case KindWarranty:
		query = `SELECT COUNT(DISTINCT service_id) FROM service_items WHERE warranty_id = ?`
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return 0, storageErr("count "+string(kind)+" references", err)
	}
	return n, nil
}

func checkRefsTx(ctx context.Context, tx *sql.Tx, svc Service) error {
	exists := func(kind Kind, id string) (bool, error) {
		var n int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities WHERE id = ? AND kind = ?`, id, string(kind)).Scan(&n)
		return n > 0, err
	}
	check := func(kind Kind, id string) error {
		if id == "" {
			return nil
		}
		ok, err := exists(kind, id)
		if err != nil {
			return storageErr("check "+string(kind), err)
		}
		if !ok {
			return notFound(string(kind), id)
		}
		return nil
	}
	if err := check(KindDevice, svc.DeviceID); err != nil {
		return err
	}
	for i, item := range svc.Items {
		if err := check(KindBrand, item.BrandID); err != nil {
			return fmt.Errorf("line item %d: %w", i+1, err)
		}
		if err := check(KindWarranty, item.WarrantyID); err != nil {
			return fmt.Errorf("line item %d: %w", i+1, err)
		}
	}
	return nil
}

func storageErr(msg string, err error) error {
	return apperrors.New(apperrors.CodeStorage, fmt.Sprintf("%s: %v", msg, err), err)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
