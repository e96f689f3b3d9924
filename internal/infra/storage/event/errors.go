package event

import "errors"

var (
	// ErrEventNotFound возвращается, когда мероприятие не найдено
	ErrEventNotFound = errors.New("event.repository: event not found")

	// ErrEventExists возвращается, если по заявке уже создано мероприятие
	ErrEventExists = errors.New("event.repository: event for request already exists")

	// ErrCalendarEventAlreadySet возвращается при повторной установке calendar_event_id
	ErrCalendarEventAlreadySet = errors.New("event.repository: calendar event id already set")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("event.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("event.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("event.repository: failed to scan row")
)
