package services

import (
	"fmt"

	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrStorage, op, err)
}
