package postgres

import (
	"context"
	"testing"

	"github.com/Sakhi-balti/Early-Intervention-System/pkg/testutil"
)

func TestNewPoolInvalidDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "not a dsn", PoolOptions{})
	testutil.AssertErrorContains(t, err, "parse config")
}
