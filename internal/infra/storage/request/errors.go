package request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request.repository: request not found")

	// ErrNotPending возвращается при попытке разрешить уже разрешенную заявку
	ErrNotPending = errors.New("request.repository: request is not pending")

	// ErrDuplicateRequest возвращается при повторной вставке заявки с тем же ID
	ErrDuplicateRequest = errors.New("request.repository: duplicate request")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("request.repository: invalid request status")
)
