package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage"
)

// Transactor opens the storage transaction an action runs in.
type Transactor interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage Transactor
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s Transactor, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

// processItem runs one action in its own transaction. Any error, including a
// cancelled context observed before commit, rolls the whole action back.
func (o *Operator) processItem(item ActionItem) error {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err == nil {
		err = item.ctx.Err()
	}
	if err != nil {
		if rbErr := writer.Rollback(context.WithoutCancel(item.ctx)); rbErr != nil {
			o.logger.WithError(rbErr).WithField("action", actionName(item.action)).Warn("Operator.processItem.rollback")
		}
		return err
	}

	return writer.Commit(item.ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}

func actionName(action actions.IAction) string {
	return fmt.Sprintf("%T", action)
}
