// Package migrations содержит SQL миграции для каждого поддерживаемого диалекта.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// For возвращает каталог миграций для драйвера ("postgres" или "sqlite3").
func For(driver string) (fs.FS, error) {
	switch driver {
	case "postgres":
		return fs.Sub(files, "postgres")
	case "sqlite3":
		return fs.Sub(files, "sqlite")
	default:
		return nil, fmt.Errorf("migrations: нет миграций для драйвера %q", driver)
	}
}
