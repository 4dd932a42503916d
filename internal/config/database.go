// internal/config/database.go
package config

import (
	"fmt"
)

// AuthDSN builds the SQLite DSN for the shared users database. Foreign keys
// are enabled per connection; SQLite defaults them to off.
func (d *DatabaseConfig) AuthDSN() string {
	return fmt.Sprintf(
		"%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		d.AuthDBPath, d.BusyTimeout,
	)
}
