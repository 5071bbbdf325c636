package db

import (
	"database/sql/driver"
	"fmt"
	"strings"

	moderncsqlite "modernc.org/sqlite"
)

// sqliteLowerFunc folds text with full Unicode case mapping. The built-in
// LOWER only folds ASCII.
const sqliteLowerFunc = "unicode_lower"

func init() {
	if err := moderncsqlite.RegisterDeterministicScalarFunction(sqliteLowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", sqliteLowerFunc, err))
	}
}

func unicodeLower(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return value, nil
	}
}

// ContainsFoldClause returns a WHERE fragment matching column against one
// lower-cased LIKE pattern bound as "?" and escaped with a backslash.
func (c *Database) ContainsFoldClause(column string) string {
	if c.driver == DriverPostgres {
		return column + ` ILIKE ? ESCAPE '\'`
	}
	return sqliteLowerFunc + "(" + column + `) LIKE ? ESCAPE '\'`
}
