package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests are skipped when it
// is not reachable, so the unit suite stays runnable without MySQL.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/radagast_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repository tests expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrders := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		shippingAddressId INT UNSIGNED NOT NULL,
		transactionId VARCHAR(64) NULL,
		status VARCHAR(32) NOT NULL,
		subtotal DECIMAL(12,2) NOT NULL DEFAULT 0,
		shippingCost DECIMAL(12,2) NOT NULL DEFAULT 0,
		total DECIMAL(12,2) NOT NULL DEFAULT 0,
		createdAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`

	createOrderItems := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL,
		unitPrice DECIMAL(12,2) NOT NULL,
		CONSTRAINT fkTestOrderItemsOrder FOREIGN KEY (orderId) REFERENCES Orders (id) ON DELETE CASCADE
	) ENGINE=InnoDB`

	for _, stmt := range []string{createOrders, createOrderItems} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to create test tables: %v", err)
		}
	}
}
