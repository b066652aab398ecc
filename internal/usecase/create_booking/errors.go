package create_booking

import "errors"

var (
	// ErrListingNotFound возвращается, когда объявление не найдено
	ErrListingNotFound = errors.New("create_booking: listing not found")

	// ErrCheckInInPast возвращается, когда дата заезда раньше сегодняшнего дня
	ErrCheckInInPast = errors.New("create_booking: check_in is in the past")

	// ErrInvalidDates возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDates = errors.New("create_booking: check_out must be after check_in")

	// ErrInvalidOccupancy возвращается при некорректном количестве гостей
	ErrInvalidOccupancy = errors.New("create_booking: invalid occupancy")

	// ErrDatesUnavailable возвращается, когда даты пересекаются с существующим бронированием
	ErrDatesUnavailable = errors.New("create_booking: dates are not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
