package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/fachrinfl/ts-project-management-api/database"
	"github.com/fachrinfl/ts-project-management-api/internal/app"
	"github.com/fachrinfl/ts-project-management-api/internal/config"
	"github.com/fachrinfl/ts-project-management-api/internal/storage"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config

	pool     *dockertest.Pool
	resource *dockertest.Resource
	filesDir string
}

// NewTestServer поднимает httptest-сервер поверх настоящего Postgres.
// БД берётся из TEST_DATABASE_URL, иначе запускается контейнер postgres:16-alpine.
// Если ни того, ни другого нет, возвращается ошибка и тесты пропускаются.
func NewTestServer() (*TestServer, error) {
	ts := &TestServer{}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		var err error
		dsn, err = ts.startPostgres()
		if err != nil {
			return nil, err
		}
	}

	db, err := database.Open(database.Options{
		Driver:       "postgres",
		DSN:          dsn,
		MaxOpenConns: 10,
		MaxIdleConns: 2,
		Env:          "test",
	})
	if err != nil {
		ts.purge()
		return nil, fmt.Errorf("connect test database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		ts.purge()
		return nil, fmt.Errorf("migrate test database: %w", err)
	}
	ts.DB = db

	filesDir, err := os.MkdirTemp("", "pm-files-*")
	if err != nil {
		ts.Close()
		return nil, err
	}
	ts.filesDir = filesDir

	ts.Config = testConfig(dsn, filesDir)
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: filesDir,
		BaseURL:  ts.Config.Storage.BaseURL,
	})
	if err != nil {
		ts.Close()
		return nil, err
	}

	router := app.SetupRouter(ts.Config, db, store)
	ts.Server = httptest.NewServer(router)

	log.Printf("✅ Тестовый сервер запущен: %s", ts.Server.URL)
	return ts, nil
}

func testConfig(dsn, filesDir string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.CORSOrigins = []string{"*"}

	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = dsn

	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTTL = config.Duration(15 * time.Minute)
	cfg.JWT.RefreshTTL = config.Duration(7 * 24 * time.Hour)
	cfg.JWT.Issuer = "project-management-api-test"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = filesDir
	cfg.Storage.BaseURL = "/files"

	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.TempDir = filesDir
	cfg.Upload.DefaultFolder = "general"

	// лимитер выключен: тесты логинятся десятки раз подряд
	cfg.RateLimit.RPS = 0
	return cfg
}

func (ts *TestServer) startPostgres() (string, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", fmt.Errorf("docker unavailable: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		return "", fmt.Errorf("docker unavailable: %w", err)
	}
	pool.MaxWait = 90 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=pm",
			"POSTGRES_PASSWORD=pm",
			"POSTGRES_DB=pm_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}
	_ = resource.Expire(300)

	ts.pool = pool
	ts.resource = resource

	dsn := fmt.Sprintf("postgres://pm:pm@%s/pm_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	// контейнер принимает соединения не сразу
	err = pool.Retry(func() error {
		db, err := database.Open(database.Options{Driver: "postgres", DSN: dsn, Env: "test"})
		if err != nil {
			return err
		}
		return database.Close(db)
	})
	if err != nil {
		ts.purge()
		return "", fmt.Errorf("postgres container not ready: %w", err)
	}
	return dsn, nil
}

func (ts *TestServer) purge() {
	if ts.pool != nil && ts.resource != nil {
		if err := ts.pool.Purge(ts.resource); err != nil {
			log.Printf("Не удалось удалить контейнер: %v", err)
		}
		ts.resource = nil
	}
}

func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
	if ts.DB != nil {
		_ = database.Close(ts.DB)
	}
	if ts.filesDir != "" {
		_ = os.RemoveAll(ts.filesDir)
	}
	ts.purge()
}

// ClearTables очищает все таблицы между тестами
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE tasks, project_teams, projects, refresh_tokens, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}

	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в dst
func DecodeJSON(t *testing.T, body string, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("Не удалось распарсить JSON %q: %v", body, err)
	}
}
