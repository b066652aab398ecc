package models

import (
	"time"

	"github.com/m04kA/SMC-StayService/internal/domain"
	paymentModels "github.com/m04kA/SMC-StayService/internal/service/payments/models"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

// UserInfo публичные данные пользователя
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// HostInfo данные хоста объявления
type HostInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ListingInfo краткие данные объявления
type ListingInfo struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Address       string    `json:"address"`
	PricePerNight string    `json:"price_per_night"`
	Host          *HostInfo `json:"host"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64        `json:"id"`
	Listing     int64        `json:"listing"`
	ListingInfo *ListingInfo `json:"listing_info"`
	User        *UserInfo    `json:"user"`

	CheckIn  types.Date `json:"check_in"`
	CheckOut types.Date `json:"check_out"`

	Adult    int `json:"adult"`
	Children int `json:"children"`
	Infant   int `json:"infant"`

	// TotalPrice сумма без налога, зафиксированная при бронировании
	TotalPrice string `json:"total_price"`
	TaxAmount  string `json:"tax_amount"`
	Status     string `json:"status"`
	Nights     int    `json:"nights"`

	Payment *paymentModels.PaymentResponse `json:"payment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Related связанные с бронированием данные для представления
type Related struct {
	Listing *domain.Listing
	Host    *domain.UserSummary
	User    *domain.UserSummary
	Payment *domain.Payment
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, rel Related) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		Listing:    b.ListingID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Adult:      b.Adults,
		Children:   b.Children,
		Infant:     b.Infants,
		TotalPrice: b.TotalPrice.StringFixed(domain.MoneyPlaces),
		TaxAmount:  b.TaxAmount().StringFixed(domain.MoneyPlaces),
		Status:     string(b.Status),
		Nights:     b.Nights(),
		Payment:    paymentModels.FromDomainPayment(rel.Payment),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if rel.Listing != nil {
		resp.ListingInfo = &ListingInfo{
			ID:            rel.Listing.ID,
			Title:         rel.Listing.Title,
			Address:       rel.Listing.Address,
			PricePerNight: rel.Listing.NightlyRate.StringFixed(domain.MoneyPlaces),
		}
		if rel.Host != nil {
			resp.ListingInfo.Host = &HostInfo{
				ID:       rel.Host.ID,
				Username: rel.Host.Username,
				Email:    rel.Host.Email,
				Role:     string(domain.RoleHost),
			}
		}
	}

	if rel.User != nil {
		resp.User = &UserInfo{
			ID:       rel.User.ID,
			Username: rel.User.Username,
			Email:    rel.User.Email,
		}
	}

	return resp
}
