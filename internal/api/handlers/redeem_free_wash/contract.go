package redeem_free_wash

import (
	"context"

	redeemFreeWash "github.com/m04kA/SMC-WashBooking/internal/usecase/redeem_free_wash"
)

type RedeemFreeWashUseCase interface {
	Execute(ctx context.Context, req *redeemFreeWash.Request) (*redeemFreeWash.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
