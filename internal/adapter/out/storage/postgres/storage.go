package postgres

import (
	"errors"
	"fmt"

	"microblog/internal/service"
	"microblog/pkg/tableinfo"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

// The not-found and invalid-request sentinels are shared with the
// service layer so callers match on one value end to end.
var (
	ErrBuildingQuery  = errors.New("error building sql-query")
	ErrInvalidRequest = service.ErrInvalidRequest
	ErrNotFound       = service.ErrNotFound
)

// DB is what every storage talks to: a pgxpool.Pool in production, a
// mock in tests. The transaction manager getter swaps in the ambient
// transaction when one is open on the context.
type DB = trmpgx.Tr

var postColumns = []string{
	tableinfo.PostIDColumn,
	tableinfo.PostTextColumn,
	tableinfo.PostAuthorIDColumn,
	tableinfo.PostGroupIDColumn,
	tableinfo.PostImageColumn,
	tableinfo.PostPubDateColumn,
}

func postOrderNewestFirst() []string {
	return []string{
		fmt.Sprintf("%s DESC", tableinfo.PostPubDateColumn),
		fmt.Sprintf("%s DESC", tableinfo.PostIDColumn),
	}
}
