package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/handlers/v1/account"
	"github.com/carson-networks/money-movement/internal/handlers/v1/status"
	"github.com/carson-networks/money-movement/internal/handlers/v1/transaction"
	"github.com/carson-networks/money-movement/internal/handlers/v1/transfer"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/service"
	"github.com/carson-networks/money-movement/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
}

// Routes builds the mux with /status and every v1 operation registered.
func (r *Rest) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Money Movement API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))
	RegisterV1(api, r.Service)

	return mux
}

// RegisterV1 registers the account, transaction and transfer operations.
func RegisterV1(api huma.API, svc *service.Service) {
	account.NewCreateAccountHandler(svc.Account).Register(api)
	account.NewGetAccountHandler(svc.Account).Register(api)

	transaction.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewGetTransactionHandler(svc.Transaction).Register(api)

	transfer.NewCreateTransferHandler(svc.Transfer).Register(api)
	transfer.NewLinkTransferHandler(svc.Transfer).Register(api)
	transfer.NewConvertTransferHandler(svc.Transfer).Register(api)
	transfer.NewUpdateTransferHandler(svc.Transfer).Register(api)
	transfer.NewDeleteTransferHandler(svc.Transfer).Register(api)
	transfer.NewGetTransferHandler(svc.Transfer).Register(api)
}

// Serve blocks until ctx is cancelled or the listener fails.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
