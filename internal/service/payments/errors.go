package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда у бронирования нет платежа
	ErrPaymentNotFound = errors.New("payments: payment not found")

	// ErrBookingNotFound возвращается при записи платежа для несуществующего бронирования
	ErrBookingNotFound = errors.New("payments: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("payments: access denied")

	// ErrIllegalTransition возвращается, когда статус платежа требует недопустимого перехода бронирования
	ErrIllegalTransition = errors.New("payments: payment status is not compatible with booking status")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("payments: invalid payment method")

	// ErrInvalidAmount возвращается при некорректной сумме
	ErrInvalidAmount = errors.New("payments: invalid amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
