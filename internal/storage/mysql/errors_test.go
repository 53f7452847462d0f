package mysql_test

import (
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"

	mysqlrepo "insight_engine/internal/storage/mysql"
)

func TestIsDeadlock(t *testing.T) {
	dl := fmt.Errorf("upsert aggregate 1: %w", &gomysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	if !mysqlrepo.IsDeadlock(dl) {
		t.Fatalf("wrapped 1213 should be a deadlock")
	}
	if mysqlrepo.IsDeadlock(&gomysql.MySQLError{Number: 1062}) {
		t.Fatalf("duplicate key is not a deadlock")
	}
	if mysqlrepo.IsDeadlock(errors.New("boom")) || mysqlrepo.IsDeadlock(nil) {
		t.Fatalf("plain errors are not deadlocks")
	}
}
