package update_payment

import (
	"context"

	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/service/payments/models"
)

type PaymentService interface {
	Update(ctx context.Context, bookingID int64, actor domain.Identity, req *models.UpdatePaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
