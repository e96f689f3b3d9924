package reject_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена или уже не ожидает решения
	ErrRequestNotFound = errors.New("reject_request: request not found")

	// ErrForbidden возвращается, когда действие выполняет не администратор
	ErrForbidden = errors.New("reject_request: admin role required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_request: internal error")
)
