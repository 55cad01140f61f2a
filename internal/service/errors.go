package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// finish tags err for op and logs it. System errors are logged in full;
// domain errors only at debug since the caller reports them.
func finish(ctx context.Context, logger *logrus.Logger, op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domainerr.Error
	if !errors.As(err, &domainErr) {
		if storage.IsUniqueViolation(err) {
			err = &domainerr.Error{Kind: domainerr.KindConflict, Op: op, Message: "duplicate row", Err: err}
		} else {
			err = domainerr.System(op, err)
		}
	}

	kind := domainerr.KindOf(err)
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("errorKind", kind.String())
	}

	entry := logger.WithError(err).WithField("op", op).WithField("kind", kind.String())
	if kind == domainerr.KindSystem {
		entry.Error("Service.Error")
	} else {
		entry.Debug("Service.Rejected")
	}
	return err
}

func requireScope(op string, s scope.Scope) error {
	if s.IsZero() {
		return domainerr.Validation(op, "user and household are required")
	}
	return nil
}
