package occupancy

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("occupancy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("occupancy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("occupancy.repository: failed to scan row")

	// ErrSlotTaken возвращается, когда ключ слота уже удерживает другая заявка
	ErrSlotTaken = errors.New("occupancy.repository: slot is held by another request")

	// ErrInvalidSlot возвращается, если в реестре лежит некорректный ключ слота
	ErrInvalidSlot = errors.New("occupancy.repository: invalid slot in ledger")
)
