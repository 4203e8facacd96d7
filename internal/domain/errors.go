package domain

import "errors"

// Доменные ошибки хранилища
var (
	// ErrCardNotFound возвращается когда карточка с указанным ID отсутствует
	ErrCardNotFound = errors.New("card not found")

	// ErrUnitNotFound возвращается когда подразделение с указанным ID отсутствует
	ErrUnitNotFound = errors.New("unit not found")

	// ErrUnknownList возвращается при обращении к несуществующему вложенному списку подразделения
	ErrUnknownList = errors.New("unknown unit list")
)

// IsNotFound сообщает, относится ли ошибка к отсутствующему документу
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrUnitNotFound)
}
