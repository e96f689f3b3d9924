package requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request not found")

	// ErrEventNotFound возвращается, когда мероприятие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrForbidden возвращается, когда у пользователя нет прав доступа
	ErrForbidden = errors.New("access denied")

	// ErrAlreadySet возвращается при повторной привязке события календаря
	ErrAlreadySet = errors.New("calendar event id already set")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
