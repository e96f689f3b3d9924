package expire_requests

// Response итог одного прохода очистки
type Response struct {
	Expired  int      // Переведено в expired
	Skipped  int      // Решены параллельно, пока шла очистка
	Failed   int      // Ошибки, будут повторены на следующем проходе
	Released int64    // Освобождено слотов
	IDs      []string // Идентификаторы истекших заявок
}
