package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCancelWindowClosed возвращается при попытке отмены в день заезда или позже
	ErrCancelWindowClosed = errors.New("bookings: booking can no longer be cancelled on or after check-in")

	// ErrCannotCancel возвращается, когда бронирование в терминальном статусе, из которого отмена невозможна
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
