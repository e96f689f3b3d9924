package airanker

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("airanker client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("airanker client: invalid response")

	// ErrServiceDegraded возвращается, если сервис ранжирования недоступен
	// Вызывающая сторона переходит на детерминированное ранжирование
	ErrServiceDegraded = errors.New("airanker unavailable: graceful degradation applied")
)
