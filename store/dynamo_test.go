package store_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gczaar/BYT-RestaurantSystem/restaurant"
	"github.com/gczaar/BYT-RestaurantSystem/store"
)

// fakeDynamo is an in-memory table keyed by (pk, seq). Query pages hold at
// most pageSize items so that pagination is exercised.
type fakeDynamo struct {
	mu       sync.Mutex
	items    map[string]map[int]map[string]types.AttributeValue
	pageSize int

	// unprocessed makes the next N BatchWriteItem calls hand back their last request.
	unprocessed int
	batchCalls  int
	queryErr    error
}

var _ store.DynamoAPI = (*fakeDynamo)(nil)

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		items:    make(map[string]map[int]map[string]types.AttributeValue),
		pageSize: 2,
	}
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	pk := in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value
	rows := f.items[pk]
	seqs := make([]int, 0, len(rows))
	for seq := range rows {
		seqs = append(seqs, seq)
	}
	sort.Ints(seqs)

	start := 0
	if in.ExclusiveStartKey != nil {
		after := mustSeq(in.ExclusiveStartKey)
		start = sort.SearchInts(seqs, after+1)
	}
	end := min(start+f.pageSize, len(seqs))

	out := &dynamodb.QueryOutput{}
	for _, seq := range seqs[start:end] {
		out.Items = append(out.Items, rows[seq])
	}
	if end < len(seqs) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"pk":  &types.AttributeValueMemberS{Value: pk},
			"seq": &types.AttributeValueMemberN{Value: strconv.Itoa(seqs[end-1])},
		}
	}
	return out, nil
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++

	out := &dynamodb.BatchWriteItemOutput{}
	for table, reqs := range in.RequestItems {
		if len(reqs) > 25 {
			return nil, errors.New("too many requests in batch")
		}
		if f.unprocessed > 0 && len(reqs) > 0 {
			f.unprocessed--
			out.UnprocessedItems = map[string][]types.WriteRequest{table: reqs[len(reqs)-1:]}
			reqs = reqs[:len(reqs)-1]
		}
		for _, req := range reqs {
			switch {
			case req.PutRequest != nil:
				f.put(req.PutRequest.Item)
			case req.DeleteRequest != nil:
				pk := req.DeleteRequest.Key["pk"].(*types.AttributeValueMemberS).Value
				delete(f.items[pk], mustSeq(req.DeleteRequest.Key))
			}
		}
	}
	return out, nil
}

func (f *fakeDynamo) put(item map[string]types.AttributeValue) {
	pk := item["pk"].(*types.AttributeValueMemberS).Value
	if f.items[pk] == nil {
		f.items[pk] = make(map[int]map[string]types.AttributeValue)
	}
	f.items[pk][mustSeq(item)] = item
}

func (f *fakeDynamo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rows := range f.items {
		n += len(rows)
	}
	return n
}

func mustSeq(item map[string]types.AttributeValue) int {
	n, err := strconv.Atoi(item["seq"].(*types.AttributeValueMemberN).Value)
	if err != nil {
		panic(err)
	}
	return n
}

func newDynamoStore(client store.DynamoAPI, numShards int) *store.Store {
	cfg := store.DefaultConfig()
	cfg.Backend = store.BackendDynamoDB
	cfg.Table = "restaurant_test"
	cfg.NumShards = numShards
	s, err := store.Open(cfg, client, nil)
	if err != nil {
		panic(err)
	}
	return s
}

// --- DynamoBackend Tests ---

func TestDynamoStore_RoundTrip(t *testing.T) {
	for _, numShards := range []int{1, 4, 16} {
		t.Run("shards="+strconv.Itoa(numShards), func(t *testing.T) {
			ctx := context.Background()
			fake := newFakeDynamo()
			s := newDynamoStore(fake, numShards)
			reg := seedRegistry(t)

			require.NoError(t, s.SaveAll(ctx, reg))

			loaded := newRegistry()
			require.NoError(t, s.LoadAll(ctx, loaded))
			assert.Equal(t, takeSnapshot(reg), takeSnapshot(loaded))
		})
	}
}

func TestDynamoStore_ManyRowsSpanBatches(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := newDynamoStore(fake, 4)

	reg := newRegistry()
	for id := 1; id <= 60; id++ {
		_, err := reg.NewTable(id, id%20+1)
		require.NoError(t, err)
	}
	require.NoError(t, s.SaveTables(ctx, reg))
	assert.Equal(t, 61, fake.count(), "60 rows plus the header")
	assert.GreaterOrEqual(t, fake.batchCalls, 3)

	loaded := newRegistry()
	require.NoError(t, s.LoadTables(ctx, loaded))
	assert.Equal(t, reg.TableRecords(), loaded.TableRecords())
}

func TestDynamoStore_ShrinkingExtentDeletesStaleRows(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := newDynamoStore(fake, 1)

	reg := seedRegistry(t)
	require.NoError(t, s.SaveStaff(ctx, reg))
	assert.Equal(t, 3, fake.count())

	smaller := newRegistry()
	_, err := smaller.NewStaff("Ewa Lis", "Manager")
	require.NoError(t, err)
	require.NoError(t, s.SaveStaff(ctx, smaller))
	assert.Equal(t, 2, fake.count())

	loaded := newRegistry()
	require.NoError(t, s.LoadStaff(ctx, loaded))
	assert.Equal(t, smaller.StaffRecords(), loaded.StaffRecords())
}

func TestDynamoStore_ReshardingKeepsOneCopy(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	reg := seedRegistry(t)

	require.NoError(t, newDynamoStore(fake, 1).SaveReservations(ctx, reg))
	// a wider store still sees shard 00, so the old rows are replaced
	require.NoError(t, newDynamoStore(fake, 8).SaveReservations(ctx, reg))
	assert.Equal(t, 3, fake.count())

	loaded := newRegistry()
	require.NoError(t, newDynamoStore(fake, 8).LoadReservations(ctx, loaded))
	assert.Equal(t, reg.ReservationRecords(), loaded.ReservationRecords())
}

func orderItemsWithQuantities(t *testing.T, quantities ...int) *restaurant.Registry {
	t.Helper()
	reg := newRegistry()
	for _, q := range quantities {
		_, err := reg.NewOrderItem(q, decimal.NewFromInt(1))
		require.NoError(t, err)
	}
	return reg
}

func TestDynamoStore_NarrowingShardsDropsOldRows(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()

	wide := make([]int, 20)
	for i := range wide {
		wide[i] = 100 + i
	}
	require.NoError(t, newDynamoStore(fake, 8).SaveOrderItems(ctx, orderItemsWithQuantities(t, wide...)))

	narrow := orderItemsWithQuantities(t, 1, 2)
	require.NoError(t, newDynamoStore(fake, 1).SaveOrderItems(ctx, narrow))
	assert.Equal(t, 3, fake.count(), "rows in shards 01..07 are deleted")

	for _, numShards := range []int{1, 8} {
		loaded := newRegistry()
		require.NoError(t, newDynamoStore(fake, numShards).LoadOrderItems(ctx, loaded))
		assert.Equal(t, narrow.OrderItemRecords(), loaded.OrderItemRecords(), "shards=%d", numShards)
	}
}

func TestDynamoStore_IgnoresRowsOutsideSavedLayout(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	narrow := orderItemsWithQuantities(t, 1, 2)
	require.NoError(t, newDynamoStore(fake, 1).SaveOrderItems(ctx, narrow))

	// a row at seq 0 left in another shard by an interrupted save
	fake.put(map[string]types.AttributeValue{
		"pk":         &types.AttributeValueMemberS{Value: "orderitems#05"},
		"seq":        &types.AttributeValueMemberN{Value: "0"},
		"quantity":   &types.AttributeValueMemberN{Value: "999"},
		"unit_price": &types.AttributeValueMemberS{Value: "1"},
	})

	loaded := newRegistry()
	require.NoError(t, newDynamoStore(fake, 8).LoadOrderItems(ctx, loaded))
	assert.Equal(t, narrow.OrderItemRecords(), loaded.OrderItemRecords())
}

func TestDynamoBackend_SavedAtComesFromDocument(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	backend := store.NewDynamoBackend(fake, store.DefaultConfig(), nil)

	savedAt := time.Date(2026, 3, 3, 12, 0, 0, 123456789, time.UTC)
	doc := &store.Document[restaurant.TableRecord]{
		Extent:  store.ExtentTables,
		SavedAt: savedAt,
		Records: []restaurant.TableRecord{{TableID: 1, Capacity: 4}},
	}
	require.NoError(t, backend.Write(ctx, doc))

	header := fake.items["tables#00"][-1]
	require.NotNil(t, header)
	assert.Equal(t, "2026-03-03T12:00:00.123456789Z", header["saved_at"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "1", header["num_shards"].(*types.AttributeValueMemberN).Value)

	loaded := &store.Document[restaurant.TableRecord]{Extent: store.ExtentTables}
	require.NoError(t, backend.Read(ctx, loaded))
	assert.True(t, savedAt.Equal(loaded.SavedAt))
	assert.Equal(t, doc.Records, loaded.Records)
}

func TestDynamoStore_MissingExtentLeavesRegistry(t *testing.T) {
	s := newDynamoStore(newFakeDynamo(), 4)
	reg := seedRegistry(t)
	before := takeSnapshot(reg)

	require.NoError(t, s.LoadAll(context.Background(), reg))
	assert.Equal(t, before, takeSnapshot(reg))
}

func TestDynamoStore_IncompleteSnapshotClearsExtent(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := newDynamoStore(fake, 1)
	reg := seedRegistry(t)
	require.NoError(t, s.SavePayments(ctx, reg))

	// drop row 1, leaving the header claiming two rows
	delete(fake.items["payments#00"], 1)

	require.NoError(t, s.LoadPayments(ctx, reg))
	assert.Zero(t, reg.Payments().Len())
}

func TestDynamoStore_QueryErrorClearsExtent(t *testing.T) {
	fake := newFakeDynamo()
	fake.queryErr = errors.New("throttled")
	s := newDynamoStore(fake, 4)
	reg := seedRegistry(t)

	require.NoError(t, s.LoadTables(context.Background(), reg))
	assert.Zero(t, reg.Tables().Len())
}

func TestDynamoStore_SaveQueryError(t *testing.T) {
	fake := newFakeDynamo()
	fake.queryErr = errors.New("throttled")
	s := newDynamoStore(fake, 1)

	err := s.SaveTables(context.Background(), seedRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestDynamoStore_RetriesUnprocessedItems(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	fake.unprocessed = 2
	s := newDynamoStore(fake, 1)
	reg := seedRegistry(t)

	require.NoError(t, s.SaveStaff(ctx, reg))
	assert.Equal(t, 3, fake.batchCalls)

	loaded := newRegistry()
	require.NoError(t, s.LoadStaff(ctx, loaded))
	assert.Equal(t, reg.StaffRecords(), loaded.StaffRecords())
}

func TestDynamoStore_GivesUpOnUnprocessedItems(t *testing.T) {
	fake := newFakeDynamo()
	fake.unprocessed = 100
	s := newDynamoStore(fake, 1)

	err := s.SaveStaff(context.Background(), seedRegistry(t))
	assert.ErrorIs(t, err, store.ErrUnprocessedItems)
}

func TestDynamoBackend_ItemLayout(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := newDynamoStore(fake, 1)
	require.NoError(t, s.SaveTables(ctx, seedRegistry(t)))

	header := fake.items["tables#00"][-1]
	require.NotNil(t, header)
	assert.Equal(t, "2", header["count"].(*types.AttributeValueMemberN).Value)

	row := fake.items["tables#00"][1]
	require.NotNil(t, row)
	assert.Equal(t, "tables", row["extent"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "2", row["table_id"].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, row["occupied"])
	assert.Equal(t, "8", row["capacity"].(*types.AttributeValueMemberN).Value)
}
