package domain

import "github.com/oklog/ulid/v2"

// NewID генерирует уникальный идентификатор документа.
// ULID монотонно возрастает внутри процесса, поэтому сортировка по ID совпадает с порядком создания.
func NewID() string {
	return ulid.Make().String()
}
