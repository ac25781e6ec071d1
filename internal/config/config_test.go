package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"10", 10 * time.Second, false},
		{"10s", 10 * time.Second, false},
		{"5m", 5 * time.Minute, false},
		{`"15s"`, 15 * time.Second, false},
		{"", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromEnv_MongoDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "clientes_db")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "clientes", cfg.Mongo.Collection)
	assert.Equal(t, "5002", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.Store.ConnectTimeout.Duration())
	assert.Equal(t, []string{"*"}, cfg.HTTP.Origins())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"mongo without uri", map[string]string{"STORE_DRIVER": "mongo", "DB_NAME": "x"}},
		{"mongo without db", map[string]string{"STORE_DRIVER": "mongo", "MONGO_URI": "mongodb://h"}},
		{"mongo bad scheme", map[string]string{"STORE_DRIVER": "mongo", "MONGO_URI": "http://h", "DB_NAME": "x"}},
		{"postgres without dsn", map[string]string{"STORE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"bad timeout", map[string]string{"STORE_DRIVER": "memory", "HTTP_READ_TIMEOUT": "later"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"MONGO_URI", "DB_NAME", "PG_DSN"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_Postgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PG_DSN", "postgres://u:p@localhost:5432/clientes")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.com, http://b.com")
	t.Setenv("HTTP_IDLE_TIMEOUT", "90")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.HTTP.Origins())
	assert.Equal(t, 90*time.Second, cfg.HTTP.IdleTimeout.Duration())
}

func TestCheckMongoURI(t *testing.T) {
	assert.NoError(t, checkMongoURI("mongodb+srv://user:pw@cluster0.example.net/?retryWrites=true"))
	assert.NoError(t, checkMongoURI("mongodb://localhost:27017"))
	assert.Error(t, checkMongoURI("mongodb://"))
	assert.Error(t, checkMongoURI("redis://localhost:6379"))
}
