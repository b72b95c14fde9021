// AngelaMos | 2026
// txnid.go

package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

const txnPrefix = "TXN"

var (
	errMissingTxnID = core.BadRequestError("Missing Transaction ID", core.ErrInvalidInput)
	errInvalidTxnID = core.BadRequestError("Invalid Transaction ID", core.ErrInvalidInput)
	errTxnUser      = core.BadRequestError("Transaction ID of Invalid User", core.ErrInvalidInput)
	errTxnEvent     = core.BadRequestError("Transaction ID of Invalid Event", core.ErrInvalidInput)
)

// ParseTransactionID splits a TXN-<userID>-<eventID> identifier. It only
// checks the shape; ValidateTransactionID also checks the user and event.
func ParseTransactionID(txnID string) (TransactionRef, error) {
	if txnID == "" {
		return TransactionRef{}, errMissingTxnID
	}

	parts := strings.Split(txnID, "-")
	if len(parts) != 3 || parts[0] != txnPrefix {
		return TransactionRef{}, errInvalidTxnID
	}

	userID, err := strconv.Atoi(parts[1])
	if err != nil || userID <= 0 {
		return TransactionRef{}, errInvalidTxnID
	}

	eventID, err := strconv.Atoi(parts[2])
	if err != nil || eventID <= 0 {
		return TransactionRef{}, errInvalidTxnID
	}

	return TransactionRef{TxnID: txnID, UserID: userID, EventID: eventID}, nil
}

// ValidateTransactionID checks that the identifier is well formed, names
// a user whose account is active and names an existing event.
func (s *Service) ValidateTransactionID(
	ctx context.Context,
	txnID string,
) (TransactionRef, error) {
	const op = "admin.ValidateTransactionID"

	ref, err := ParseTransactionID(txnID)
	if err != nil {
		return TransactionRef{}, err
	}

	err = s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{
			core.Read(core.TableEvents),
			core.Read(core.TableUsers),
		},
		func(ctx context.Context, sess *core.Session) error {
			u, err := s.users(sess.DB()).GetByID(ctx, ref.UserID)
			if err := user.CheckValid(u, err); err != nil {
				if core.IsAppError(err) {
					return errTxnUser
				}
				return err
			}

			_, err = s.repo(sess.DB()).GetEvent(ctx, ref.EventID)
			if errors.Is(err, core.ErrNotFound) {
				return errTxnEvent
			}
			return err
		},
	)
	if err != nil {
		return TransactionRef{}, core.Surface(ctx, op, "db", err)
	}

	return ref, nil
}

// GetTransaction validates txnID against the main store, then reads the
// ledger row from the transactions store in a second, separate session.
func (s *Service) GetTransaction(ctx context.Context, txnID string) (*Transaction, error) {
	const op = "admin.GetTransaction"

	ref, err := s.ValidateTransactionID(ctx, txnID)
	if err != nil {
		return nil, err
	}

	var txn *Transaction
	err = s.txns.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableTransactions)},
		func(ctx context.Context, sess *core.Session) error {
			t, err := s.ledger(sess.DB()).GetByID(ctx, ref.TxnID)
			if errors.Is(err, core.ErrNotFound) {
				return core.NotFoundError("Transaction not found.")
			}
			txn = t
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return txn, nil
}
