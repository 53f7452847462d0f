package mysql

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
)

const errDeadlock = 1213

// IsDeadlock reports whether err is an InnoDB deadlock; the transaction can be retried.
func IsDeadlock(err error) bool {
	var me *gomysql.MySQLError
	return errors.As(err, &me) && me.Number == errDeadlock
}
