//go:build integration

package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	dom "Clientes/internal/domain"
	"Clientes/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/suite"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// storeSuite runs the same behaviour checks against every ClienteRepo backed
// by a real database. reset must leave the store empty.
type storeSuite struct {
	suite.Suite
	repo  ClienteRepo
	reset func(ctx context.Context) error
}

func (s *storeSuite) SetupTest() {
	s.Require().NoError(s.reset(context.Background()))
}

func (s *storeSuite) insert(dni string, extra map[string]any) dom.Cliente {
	fields := map[string]any{"dni": dni}
	for k, v := range extra {
		fields[k] = v
	}
	c, err := dom.NewCliente(fields)
	s.Require().NoError(err)
	c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	out, err := s.repo.Insert(context.Background(), c)
	s.Require().NoError(err)
	return out
}

func (s *storeSuite) TestInsertAndFindOne() {
	ctx := context.Background()
	created := s.insert("111", map[string]any{"name": "Ana", "city": "Rosario"})
	s.NotEmpty(created.ID)

	got, ok, err := s.repo.FindOne(ctx, Filter{}.And(Eq(dom.FieldDNI, "111")))
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(created.ID, got.ID)
	s.Equal("Ana", got.Name)
	s.Equal("Rosario", got.Extra["city"])
	s.True(got.CreatedAt.Equal(created.CreatedAt))
	s.Nil(got.DeletedAt)

	_, ok, err = s.repo.FindOne(ctx, Filter{}.And(Eq(dom.FieldDNI, "999")))
	s.NoError(err)
	s.False(ok)
}

func (s *storeSuite) TestInsertDuplicateDNI() {
	s.insert("111", nil)
	c, err := dom.NewCliente(map[string]any{"dni": "111"})
	s.Require().NoError(err)
	_, err = s.repo.Insert(context.Background(), c)
	s.ErrorIs(err, ErrDuplicateKey)
}

func (s *storeSuite) TestFindManyFiltersAndPages() {
	ctx := context.Background()
	s.insert("100", map[string]any{"name": "Ana María"})
	s.insert("200", map[string]any{"name": "ANABELA"})
	s.insert("300", map[string]any{"name": "Juan", "cuit": "20-300-1"})
	s.insert("400", map[string]any{"name": "a.b"})

	f := Filter{}.Or(ContainsFold(dom.FieldName, "ana"))
	list, err := s.repo.FindMany(ctx, f, 0, 0)
	s.Require().NoError(err)
	s.Len(list, 2)

	// Search text is literal.
	list, err = s.repo.FindMany(ctx, Filter{}.Or(ContainsFold(dom.FieldName, ".")), 0, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("400", list[0].DNI)

	list, err = s.repo.FindMany(ctx, Filter{}.Or(Eq(dom.FieldCUIT, "20-300-1")), 0, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("300", list[0].DNI)

	list, err = s.repo.FindMany(ctx, Filter{}, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("200", list[0].DNI)
	s.Equal("300", list[1].DNI)

	list, err = s.repo.FindMany(ctx, Filter{}, 0, -3)
	s.Require().NoError(err)
	s.Len(list, 3)

	_, err = s.repo.FindMany(ctx, Filter{}, -1, 10)
	var se *StoreError
	s.True(errors.As(err, &se))
}

func (s *storeSuite) TestUpdateFields() {
	ctx := context.Background()
	s.insert("111", map[string]any{"name": "Ana"})
	s.insert("222", nil)

	n, err := s.repo.UpdateFields(ctx, "111", dom.Patch{"lastname": "Pérez", "dni": "333"})
	s.Require().NoError(err)
	s.EqualValues(1, n)

	got, ok, err := s.repo.FindOne(ctx, Filter{}.And(Eq(dom.FieldDNI, "333")))
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("Ana", got.Name)
	s.Equal("Pérez", got.Lastname)

	n, err = s.repo.UpdateFields(ctx, "nope", dom.Patch{"name": "x"})
	s.NoError(err)
	s.Zero(n)

	_, err = s.repo.UpdateFields(ctx, "333", dom.Patch{"dni": "222"})
	s.ErrorIs(err, ErrDuplicateKey)
}

func (s *storeSuite) TestSetDeletedAt() {
	ctx := context.Background()
	s.insert("111", nil)
	at := time.Now().UTC().Truncate(time.Millisecond)

	res, err := s.repo.SetDeletedAt(ctx, "111", &at)
	s.Require().NoError(err)
	s.Equal(UpdateResult{Matched: 1, Modified: 1}, res)

	active, err := s.repo.FindMany(ctx, Filter{}.And(IsNull(dom.FieldDeletedAt)), 0, 0)
	s.Require().NoError(err)
	s.Empty(active)

	res, err = s.repo.SetDeletedAt(ctx, "111", nil)
	s.Require().NoError(err)
	s.Equal(UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = s.repo.SetDeletedAt(ctx, "111", nil)
	s.Require().NoError(err)
	s.Equal(UpdateResult{Matched: 1}, res)

	res, err = s.repo.SetDeletedAt(ctx, "nope", nil)
	s.Require().NoError(err)
	s.Zero(res.Matched)
}

func (s *storeSuite) TestPing() {
	s.NoError(s.repo.Ping(context.Background()))
}

func TestMongoStore(t *testing.T) {
	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get mongo connection string: %v", err)
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	r := NewMongoClienteRepo(client, "clientes_test", "clientes")
	t.Cleanup(func() { _ = r.Close(context.Background()) })

	suite.Run(t, &storeSuite{
		repo: r,
		reset: func(ctx context.Context) error {
			if err := r.coll.Drop(ctx); err != nil {
				return err
			}
			return r.EnsureIndexes(ctx)
		},
	})
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clientes"),
		tcpostgres.WithUsername("clientes"),
		tcpostgres.WithPassword("clientes"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		t.Fatalf("goose dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	_ = db.Close()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	r := NewPGClienteRepo(pool)
	t.Cleanup(func() { _ = r.Close(context.Background()) })

	suite.Run(t, &storeSuite{
		repo: r,
		reset: func(ctx context.Context) error {
			_, err := pool.Exec(ctx, `TRUNCATE clientes`)
			return err
		},
	})
}
