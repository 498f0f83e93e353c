package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

// storeError wraps a query failure, mapping transient connectivity
// classes to ErrUnavailable so callers can tell an outage apart from a
// bad request or a bug.
func storeError(op string, err error) error {
	if isTransient(err) {
		return apperrors.Unavailable(fmt.Sprintf("%s: %v", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
