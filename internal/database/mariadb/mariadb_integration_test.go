//go:build integration

package mariadb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kozaktomas/photo-archive/internal/config"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestContainer(t *testing.T) (*Pool, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mariadb:11",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MARIADB_USER":          "test",
			"MARIADB_PASSWORD":      "test",
			"MARIADB_DATABASE":      "testdb",
			"MARIADB_ROOT_PASSWORD": "root",
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.DatabaseConfig{
		URL:          fmt.Sprintf("test:test@tcp(%s:%s)/testdb", host, port.Port()),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	// The port opens before the server accepts logins.
	var pool *Pool
	for range 30 {
		if pool, err = NewPool(cfg); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to create pool: %v", err)
	}

	if _, err := pool.Migrate(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pool, func() {
		pool.Close()
		container.Terminate(ctx)
	}
}

func TestStore(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	for _, stmt := range []string{
		`INSERT INTO photos (id, path, date, grade, is_public) VALUES
			(1, 'a.jpg', '2020-01-01 10:00:00', 3, TRUE),
			(2, 'b.jpg', '2021-06-01 10:00:00', NULL, FALSE),
			(3, 'c.jpg', NULL, 1, TRUE)`,
		`INSERT INTO tags (id, tag_name, slug) VALUES (1, 'Sunset', 'sunset')`,
		`INSERT INTO photo_tags (photo_id, tag_id) VALUES (1, 1), (2, 1)`,
		`INSERT INTO positions (photo_id, latitude, longitude) VALUES (2, 49.74, 13.37)`,
	} {
		if _, err := pool.DB().ExecContext(ctx, stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	store := pool.Store()
	all := gallery.Scope{Authorized: true}

	photos, err := store.Photos(ctx, all, search.Predicate{})
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	if len(photos) != 3 || photos[0].ID != 2 || photos[2].ID != 3 || photos[2].Date != nil {
		t.Errorf("unexpected order %+v", photos)
	}

	with := true
	photos, err = store.Photos(ctx, gallery.Public, search.Predicate{
		Facets:      []search.Membership{{Kind: gallery.KindTag, ID: 1, Include: true}},
		HasPosition: &with,
	})
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("private photo leaked: %+v", photos)
	}

	date, err := store.PhotoDate(ctx, 1)
	if err != nil || date == nil || !date.Equal(time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("PhotoDate(1) = %v, %v", date, err)
	}
	if _, err := store.TagBySlug(ctx, "rain"); !errors.Is(err, gallery.ErrFacetNotFound) {
		t.Errorf("expected ErrFacetNotFound, got %v", err)
	}

	got, err := store.Complete(ctx, gallery.Public, gallery.KindTag, "sun", 10)
	if err != nil || len(got) != 1 || got[0].Slug != "sunset" {
		t.Errorf("Complete = %+v, %v", got, err)
	}

	f, err := store.EnsureFacet(ctx, gallery.KindPlace, "Plzeň")
	if err != nil || f.FacetSlug() != "plzen" {
		t.Errorf("EnsureFacet = %+v, %v", f, err)
	}
}
