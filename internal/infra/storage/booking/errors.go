package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDatesOverlap возвращается, когда БД отклонила запись из-за пересечения дат (bookings_no_overlap)
	ErrDatesOverlap = errors.New("booking.repository: dates overlap an existing booking")

	// ErrSerialization возвращается, когда конкурентная транзакция помешала записи
	ErrSerialization = errors.New("booking.repository: concurrent update, could not serialize access")

	// ErrInvalidReference возвращается, если объявление или пользователь не существуют
	ErrInvalidReference = errors.New("booking.repository: listing or user does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
