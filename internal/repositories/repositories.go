package repositories

import (
	"context"

	"giftmart/pkg/database"
)

// querier returns the transaction bound to ctx when one is active, so a
// repository call made inside TxManager.WithTransaction joins it.
func querier(ctx context.Context, db database.Querier) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db
}
