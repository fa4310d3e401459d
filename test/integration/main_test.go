package integration_test

import (
	"errors"
	"flag"
	"log"
	"os"
	"testing"

	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	setupErr         error
)

// GetTestServer возвращает общий сервер и очищает таблицы перед тестом.
// Тесты пакета не параллельные: все они работают с одной БД.
func GetTestServer(t *testing.T) *helpers.TestServer {
	t.Helper()
	if globalTestServer == nil {
		t.Skipf("integration database unavailable: %v", setupErr)
	}
	globalTestServer.ClearTables(t)
	return globalTestServer
}

func TestMain(m *testing.M) {
	flag.Parse()
	logger.Init("test")

	if testing.Short() {
		setupErr = errors.New("-short mode")
		os.Exit(m.Run())
	}

	log.Println("--- [TestMain] Initializing test server... ---")
	globalTestServer, setupErr = helpers.NewTestServer()
	if setupErr != nil {
		log.Printf("--- [TestMain] integration tests will be skipped: %v ---", setupErr)
	}

	code := m.Run()

	if globalTestServer != nil {
		log.Println("--- [TestMain] Cleaning up... ---")
		globalTestServer.Close()
	}

	os.Exit(code)
}
