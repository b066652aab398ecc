package quote_stay

import "errors"

var (
	// ErrListingNotFound возвращается, когда объявление не найдено
	ErrListingNotFound = errors.New("quote_stay: listing not found")

	// ErrCheckInInPast возвращается, когда дата заезда раньше сегодняшнего дня
	ErrCheckInInPast = errors.New("quote_stay: check_in is in the past")

	// ErrInvalidDates возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDates = errors.New("quote_stay: check_out must be after check_in")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_stay: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_stay: internal error")
)
