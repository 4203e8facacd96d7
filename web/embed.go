// Package web содержит встроенные файлы клиента дашборда карточек.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Assets возвращает файлы клиента с корнем в каталоге static
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// каталог встроен при компиляции
		panic(err)
	}
	return sub
}
