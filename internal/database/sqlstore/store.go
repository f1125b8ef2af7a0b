// Package sqlstore implements the gallery storage on top of database/sql.
// The same queries serve PostgreSQL and MariaDB, differing only in their
// Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
)

// Dialect holds the syntax differences between the supported databases.
type Dialect struct {
	Name string
	// Placeholder returns the bind parameter for the n-th argument (1 based).
	Placeholder func(n int) string
	// ILike is the case insensitive LIKE operator.
	ILike string
	// MigrationsDDL creates the schema_migrations bookkeeping table.
	MigrationsDDL string
}

const (
	pgMigrationsDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ DEFAULT NOW()
	)`
	mysqlMigrationsDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
)

var (
	Postgres = Dialect{
		Name:          "postgres",
		Placeholder:   func(n int) string { return "$" + strconv.Itoa(n) },
		ILike:         "ILIKE",
		MigrationsDDL: pgMigrationsDDL,
	}
	MySQL = Dialect{
		Name:          "mysql",
		Placeholder:   func(int) string { return "?" },
		ILike:         "LIKE",
		MigrationsDDL: mysqlMigrationsDDL,
	}
)

type facetTable struct {
	table   string
	nameCol string
	linkTab string
	linkCol string
}

var facetTables = map[gallery.Kind]facetTable{
	gallery.KindTag:    {table: "tags", nameCol: "tag_name", linkTab: "photo_tags", linkCol: "tag_id"},
	gallery.KindPerson: {table: "people", nameCol: "person_name", linkTab: "photo_people", linkCol: "person_id"},
	gallery.KindPlace:  {table: "places", nameCol: "place_name", linkTab: "photo_places", linkCol: "place_id"},
}

func tableFor(kind gallery.Kind) (facetTable, error) {
	t, ok := facetTables[kind]
	if !ok {
		return facetTable{}, fmt.Errorf("unknown facet kind %q", kind.Key())
	}
	return t, nil
}

// Store reads and writes the gallery tables.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New creates a store on an open database.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// builder accumulates a statement and its bind arguments.
type builder struct {
	dialect Dialect
	sb      strings.Builder
	args    []any
}

func (b *builder) write(parts ...string) {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

func (b *builder) String() string {
	return b.sb.String()
}

// photosQuery translates a predicate into a SELECT over the photos table.
func (s *Store) photosQuery(scope gallery.Scope, pred search.Predicate) (string, []any, error) {
	b := &builder{dialect: s.dialect}
	b.write("SELECT p.id, p.date, p.grade FROM photos p WHERE 1=1")
	if !scope.Authorized {
		b.write(" AND p.is_public")
	}
	if pred.Since != nil {
		b.write(" AND p.date >= ", b.arg(*pred.Since))
	}
	if pred.Until != nil {
		b.write(" AND p.date <= ", b.arg(*pred.Until))
	}
	for _, m := range pred.Facets {
		t, err := tableFor(m.Kind)
		if err != nil {
			return "", nil, err
		}
		op := " IN "
		if !m.Include {
			op = " NOT IN "
		}
		b.write(" AND p.id", op, "(SELECT photo_id FROM ", t.linkTab, " WHERE ", t.linkCol, " = ", b.arg(m.ID), ")")
	}
	if pred.HasPosition != nil {
		op := " IN "
		if !*pred.HasPosition {
			op = " NOT IN "
		}
		b.write(" AND p.id", op, "(SELECT photo_id FROM positions)")
	}
	b.write(" ORDER BY p.date IS NULL, p.date DESC, p.id")
	return b.String(), b.args, nil
}

// Photos returns the photos matching pred, newest first.
func (s *Store) Photos(ctx context.Context, scope gallery.Scope, pred search.Predicate) ([]gallery.Photo, error) {
	query, args, err := s.photosQuery(scope, pred)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	var photos []gallery.Photo
	for rows.Next() {
		var (
			p     gallery.Photo
			date  sql.NullTime
			grade sql.NullInt16
		)
		if err := rows.Scan(&p.ID, &date, &grade); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		if date.Valid {
			d := date.Time
			p.Date = &d
		}
		if grade.Valid {
			g := grade.Int16
			p.Grade = &g
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

// PhotoDate returns the date of a photo, nil if it has none.
func (s *Store) PhotoDate(ctx context.Context, id int32) (*time.Time, error) {
	query := "SELECT date FROM photos WHERE id = " + s.dialect.Placeholder(1)

	var date sql.NullTime
	err := s.db.QueryRowContext(ctx, query, id).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo %d: %w", id, gallery.ErrPhotoNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get photo date: %w", err)
	}
	if !date.Valid {
		return nil, nil
	}
	return &date.Time, nil
}

func (s *Store) facetBySlug(ctx context.Context, kind gallery.Kind, facetSlug string) (gallery.Facet, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := "SELECT id, " + t.nameCol + ", slug FROM " + t.table + " WHERE slug = " + s.dialect.Placeholder(1)

	var (
		id         int32
		name, slug string
	)
	err = s.db.QueryRowContext(ctx, query, facetSlug).Scan(&id, &name, &slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %q: %w", kind, facetSlug, gallery.ErrFacetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return gallery.NewFacet(kind, id, name, slug)
}

// TagBySlug returns the tag with the given slug.
func (s *Store) TagBySlug(ctx context.Context, slug string) (gallery.Tag, error) {
	f, err := s.facetBySlug(ctx, gallery.KindTag, slug)
	if err != nil {
		return gallery.Tag{}, err
	}
	return f.(gallery.Tag), nil
}

// PersonBySlug returns the person with the given slug.
func (s *Store) PersonBySlug(ctx context.Context, slug string) (gallery.Person, error) {
	f, err := s.facetBySlug(ctx, gallery.KindPerson, slug)
	if err != nil {
		return gallery.Person{}, err
	}
	return f.(gallery.Person), nil
}

// PlaceBySlug returns the place with the given slug.
func (s *Store) PlaceBySlug(ctx context.Context, slug string) (gallery.Place, error) {
	f, err := s.facetBySlug(ctx, gallery.KindPlace, slug)
	if err != nil {
		return gallery.Place{}, err
	}
	return f.(gallery.Place), nil
}

// Complete returns up to limit facets of one kind whose name contains term,
// ordered by name. Callers outside the authorized scope only see facets
// attached to a public photo.
func (s *Store) Complete(ctx context.Context, scope gallery.Scope, kind gallery.Kind, term string, limit int) ([]gallery.Suggestion, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	b := &builder{dialect: s.dialect}
	b.write("SELECT f.", t.nameCol, ", f.slug FROM ", t.table, " f WHERE f.", t.nameCol, " ", s.dialect.ILike, " ", b.arg(likePattern(term)))
	if !scope.Authorized {
		b.write(" AND f.id IN (SELECT l.", t.linkCol, " FROM ", t.linkTab, " l JOIN photos p ON p.id = l.photo_id WHERE p.is_public)")
	}
	b.write(" ORDER BY f.", t.nameCol, " LIMIT ", b.arg(limit))

	rows, err := s.db.QueryContext(ctx, b.String(), b.args...)
	if err != nil {
		return nil, fmt.Errorf("query %s suggestions: %w", kind, err)
	}
	defer rows.Close()

	var out []gallery.Suggestion
	for rows.Next() {
		sg := gallery.Suggestion{Kind: kind.Key()}
		if err := rows.Scan(&sg.Name, &sg.Slug); err != nil {
			return nil, fmt.Errorf("scan %s suggestion: %w", kind, err)
		}
		out = append(out, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s suggestions: %w", kind, err)
	}
	return out, nil
}

// EnsureFacet returns the facet of the given kind whose slug matches name,
// creating it first if needed.
func (s *Store) EnsureFacet(ctx context.Context, kind gallery.Kind, name string) (gallery.Facet, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	facetSlug := slug.Make(name)
	if facetSlug == "" {
		return nil, fmt.Errorf("%s %q: %w", kind, name, gallery.ErrInvalidName)
	}

	f, err := s.facetBySlug(ctx, kind, facetSlug)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, gallery.ErrFacetNotFound) {
		return nil, err
	}

	query := "INSERT INTO " + t.table + " (" + t.nameCol + ", slug) VALUES (" +
		s.dialect.Placeholder(1) + ", " + s.dialect.Placeholder(2) + ")"
	if _, err := s.db.ExecContext(ctx, query, name, facetSlug); err != nil {
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}
	return s.facetBySlug(ctx, kind, facetSlug)
}

// likePattern matches term anywhere, with LIKE wildcards in term escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
