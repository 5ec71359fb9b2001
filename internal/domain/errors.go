package domain

import (
	"errors"
)

var (
	// ErrNotSignedIn возвращается, когда операция требует авторизованного пользователя.
	ErrNotSignedIn = errors.New("пользователь не авторизован")

	// ErrMalformedRange возвращается при разборе строки временного диапазона
	// вида "9:00 AM - 10:00 AM" с отсутствующим разделителем или
	// некорректным временем.
	ErrMalformedRange = errors.New("некорректный формат временного диапазона")

	// ErrNoAvailabilityData возвращается, когда для тьютора/дня ожидалась
	// сетка доступности, но она отсутствует.
	ErrNoAvailabilityData = errors.New("данные о доступности не найдены")

	// ErrWindowUnavailable возвращается при бронировании, когда хотя бы
	// один слот запрошенного окна уже занят или снят тьютором.
	ErrWindowUnavailable = errors.New("запрошенное окно уже недоступно")

	// ErrPersistence оборачивает ошибки хранилища документов.
	ErrPersistence = errors.New("ошибка хранилища")

	ErrNotFound = errors.New("не найдено")
)
