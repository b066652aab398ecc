package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование редактирует не его владелец
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrListingImmutable возвращается при попытке перенести бронирование на другое объявление
	ErrListingImmutable = errors.New("update_booking: listing cannot be changed")

	// ErrNotEditable возвращается при изменении дат или гостей не в статусе pending
	ErrNotEditable = errors.New("update_booking: only pending bookings can change dates or guests")

	// ErrCheckInInPast возвращается, когда новая дата заезда раньше сегодняшнего дня
	ErrCheckInInPast = errors.New("update_booking: check_in is in the past")

	// ErrInvalidDates возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDates = errors.New("update_booking: check_out must be after check_in")

	// ErrInvalidOccupancy возвращается при некорректном количестве гостей
	ErrInvalidOccupancy = errors.New("update_booking: invalid occupancy")

	// ErrDatesUnavailable возвращается, когда новые даты пересекаются с другим бронированием
	ErrDatesUnavailable = errors.New("update_booking: dates are not available")

	// ErrIllegalTransition возвращается, когда статус платежа несовместим со статусом бронирования
	ErrIllegalTransition = errors.New("update_booking: payment status is not compatible with booking status")

	// ErrInvalidPayment возвращается при некорректных данных платежа
	ErrInvalidPayment = errors.New("update_booking: invalid payment data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
