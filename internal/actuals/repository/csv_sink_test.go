package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"github.com/allisson/liquidity/internal/actuals/domain"
)

func TestCSVTransactionSink(t *testing.T) {
	t.Run("writes header and rows", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVTransactionSink(bucket)
		transaction := &domain.Transaction{
			ActualID:       "txn-1_acc-1",
			BusinessID:     "BIZ-001",
			AccountID:      "acc-1",
			AccountName:    "Plaid Checking",
			Direction:      domain.DirectionOutflow,
			Amount:         decimal.NewFromFloat(89.40),
			Currency:       "USD",
			PostDate:       "2025-08-01",
			AuthorizedDate: "2025-07-31",
			MerchantName:   "Uber",
			OriginalName:   "Uber 072515 SF**POOL**",
			CategoryL1:     "Travel",
			CategoryL2:     "Taxi",
			PaymentChannel: "online",
			Type:           "special",
			Pending:        false,
			IngestTS:       time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC),
		}

		err := sink.WriteTransactions(ctx, "actuals.csv", []*domain.Transaction{transaction})
		require.NoError(t, err)

		data, err := bucket.ReadAll(ctx, "actuals.csv")
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "actual_id,business_id,account_id,account_name,source_system,cashflow_type,direction,amount,currency,post_date,authorized_date,merchant_name,original_name,category_l1,category_l2,payment_channel,transaction_type,pending,ingest_ts")
		assert.Contains(t, content, "txn-1_acc-1,BIZ-001,acc-1,Plaid Checking,plaid_sandbox,ACTUAL_TXN,OUTFLOW,89.40,USD,2025-08-01,2025-07-31,Uber,Uber 072515 SF**POOL**,Travel,Taxi,online,special,false,2025-08-26T12:00:00Z")
	})
}

func TestCSVBalanceSink(t *testing.T) {
	t.Run("writes one row per business", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVBalanceSink(bucket)
		balances := []*domain.OpeningBalance{
			{BusinessID: "BIZ-001", Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(53700)},
			{BusinessID: "BIZ-002", Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(12000.25)},
		}

		err := sink.WriteBalances(ctx, "opening_balances.csv", balances)
		require.NoError(t, err)

		data, err := bucket.ReadAll(ctx, "opening_balances.csv")
		require.NoError(t, err)
		assert.Equal(t,
			"business_id,opening_balance_date,opening_balance_amount\n"+
				"BIZ-001,2025-07-01,53700.00\n"+
				"BIZ-002,2025-07-01,12000.25\n",
			string(data),
		)
	})
}
