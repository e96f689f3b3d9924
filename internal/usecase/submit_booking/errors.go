package submit_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("submit_booking: venue not found")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с уже занятым
	ErrSlotNotAvailable = errors.New("submit_booking: slot is not available")

	// ErrSlotBusy возвращается, когда площадку на эту дату сейчас бронирует другая заявка; запрос можно повторить
	ErrSlotBusy = errors.New("submit_booking: venue date is locked by another submit")

	// ErrInvalidDate возвращается, когда дата мероприятия в прошлом
	ErrInvalidDate = errors.New("submit_booking: invalid event date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("submit_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда время начала сегодня уже прошло
	ErrTooLateToBook = errors.New("submit_booking: start time has already passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
