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
	ProviderName = "store-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product 7b1d8e52 exists"
	StateProductMissing  = "no product 0000dead exists"
	StateCustomerCanBuy  = "customer 3f2c9a10 and product 7b1d8e52 exist"
)

const (
	ExistingProductID = "7b1d8e52-4c1a-4f0e-9a57-1d2b3c4d5e6f"
	MissingProductID  = "0000dead-0000-4000-8000-000000000000"
	CustomerID        = "3f2c9a10-8d6e-4b7a-9c01-aabbccddeeff"

	ProductName  = "Pact Laptop"
	ProductPrice = 10.0
	ProductStock = 5
	CustomerName = "Pact Customer"
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

// PactFile returns the canonical pact file path for the storefront consumer.
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

// ExampleProductPayload is the add-product request used across interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"kind":           "electronic",
		"name":           ProductName,
		"price":          ProductPrice,
		"stock":          ProductStock,
		"warrantyMonths": 24,
	}
}

// ExampleOrderPayload orders three units of the seeded product for the seeded customer.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"userId": CustomerID,
		"items": []map[string]any{
			{"productId": ExistingProductID, "quantity": 3},
		},
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
