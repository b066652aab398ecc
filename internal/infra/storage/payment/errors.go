package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда у бронирования нет платежа
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrBookingNotFound возвращается при записи платежа для несуществующего бронирования
	ErrBookingNotFound = errors.New("payment.repository: booking does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
