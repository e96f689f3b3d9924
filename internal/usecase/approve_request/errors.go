package approve_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена или уже не ожидает решения
	ErrRequestNotFound = errors.New("approve_request: request not found")

	// ErrForbidden возвращается, когда действие выполняет не администратор
	ErrForbidden = errors.New("approve_request: admin role required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_request: internal error")
)
