//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "galeria-api"
	ConsumerName = "galeria-portal"

	StateCatalogBaseline = "catalog baseline"
	StateArtworkExists   = "artwork with id 101 exists"
	StateArtworkMissing  = "no artwork with id 404"
	StateBuyerSession    = "buyer session exists without orders"
	StatePendingOrder    = "buyer session exists with a pending order"

	ExistingArtworkID int64 = 101
	MissingArtworkID  int64 = 404
	PendingOrderID    int64 = 1

	BuyerID      int64 = 7
	SessionToken       = "pact-session-token"
)

const (
	exampleTitle = "Nocturno sobre lienzo"
	examplePrice = 120.5
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleArtworkPayload provides stable test data for pact interactions.
func ExampleArtworkPayload() map[string]any {
	return map[string]any{
		"id":       ExistingArtworkID,
		"id_autor": int64(2),
		"titulo":   exampleTitle,
		"precio":   examplePrice,
		"cantidad": 3,
		"activo":   true,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
