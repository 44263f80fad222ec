package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/gczaar/BYT-RestaurantSystem/internal/shard"
)

const (
	// maxBatchWrite is the DynamoDB limit of requests per BatchWriteItem call.
	maxBatchWrite = 25

	// maxBatchAttempts bounds retries of unprocessed items per batch.
	maxBatchAttempts = 5

	// headerSeq is the sort key of the per-extent header row.
	headerSeq = -1
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoBackend.
type DynamoAPI interface {
	dynamodb.QueryAPIClient
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// DynamoBackend stores each record of an extent as its own item.
//
// Items are keyed by pk = "<extent>#<shard>" and a numeric sort key seq, the
// record's position in the extent. A header item at seq -1 in shard 00 records
// how many rows the last save wrote and over how many shards; its presence
// marks the extent as saved.
type DynamoBackend struct {
	client    DynamoAPI
	table     string
	numShards int
	logger    *zap.SugaredLogger
}

var _ Backend = (*DynamoBackend)(nil)

// NewDynamoBackend creates a DynamoBackend using cfg.Table and cfg.NumShards.
func NewDynamoBackend(client DynamoAPI, cfg Config, logger *zap.SugaredLogger) *DynamoBackend {
	cfg.validate()
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DynamoBackend{
		client:    client,
		table:     cfg.Table,
		numShards: cfg.NumShards,
		logger:    logger,
	}
}

// Write replaces every row of the extent. Rows are put first, then rows left
// over from a previous save are deleted, including those in shards beyond the
// current count. The replacement is not atomic: a failure part way leaves a
// mix that Read rejects as incomplete.
func (b *DynamoBackend) Write(ctx context.Context, doc Rows) error {
	name := doc.Name()

	existing, _, err := b.extentItems(ctx, name, aws.String("pk, seq, num_shards"))
	if err != nil {
		return fmt.Errorf("query existing rows: %w", err)
	}

	written := make(map[string]bool, doc.Len()+1)
	requests := make([]types.WriteRequest, 0, doc.Len()+1)

	header := map[string]types.AttributeValue{
		"pk":         &types.AttributeValueMemberS{Value: shard.PK(name, 0)},
		"seq":        &types.AttributeValueMemberN{Value: strconv.Itoa(headerSeq)},
		"extent":     &types.AttributeValueMemberS{Value: name},
		"count":      &types.AttributeValueMemberN{Value: strconv.Itoa(doc.Len())},
		"num_shards": &types.AttributeValueMemberN{Value: strconv.Itoa(b.numShards)},
		"saved_at":   &types.AttributeValueMemberS{Value: doc.Saved().UTC().Format(time.RFC3339Nano)},
	}
	written[rowKey(header)] = true
	requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: header}})

	for i := 0; i < doc.Len(); i++ {
		item, err := attributevalue.MarshalMap(doc.Row(i))
		if err != nil {
			return fmt.Errorf("marshal %s row %d: %w", name, i, err)
		}
		item["pk"] = &types.AttributeValueMemberS{Value: shard.RecordPK(name, i, b.numShards)}
		item["seq"] = &types.AttributeValueMemberN{Value: strconv.Itoa(i)}
		item["extent"] = &types.AttributeValueMemberS{Value: name}

		written[rowKey(item)] = true
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	for _, item := range existing {
		if written[rowKey(item)] {
			continue
		}
		requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{"pk": item["pk"], "seq": item["seq"]},
		}})
	}

	return b.batchWrite(ctx, requests)
}

// Read loads every row of the extent into doc in seq order.
// Returns ErrSnapshotNotFound if the extent has no header row.
//
// Only rows stored where the header's shard count places them are used;
// anything else is left over from an interrupted save and is skipped.
func (b *DynamoBackend) Read(ctx context.Context, doc Rows) error {
	name := doc.Name()

	items, header, err := b.extentItems(ctx, name, nil)
	if err != nil {
		return fmt.Errorf("query rows: %w", err)
	}
	if header == nil {
		return ErrSnapshotNotFound
	}

	count, err := itemInt(header, "count")
	if err != nil {
		return err
	}
	shards := headerShards(header, b.numShards)
	if v, ok := header["saved_at"].(*types.AttributeValueMemberS); ok {
		if t, err := time.Parse(time.RFC3339Nano, v.Value); err == nil {
			doc.SetSaved(t)
		}
	}

	stale := 0
	rows := make(map[int]map[string]types.AttributeValue, count)
	for _, item := range items {
		seq, err := itemSeq(item)
		if err != nil {
			return err
		}
		if seq == headerSeq {
			continue
		}
		pk, _ := item["pk"].(*types.AttributeValueMemberS)
		if seq >= count || pk == nil || pk.Value != shard.RecordPK(name, seq, shards) {
			stale++
			continue
		}
		rows[seq] = item
	}

	for seq := 0; seq < count; seq++ {
		item, ok := rows[seq]
		if !ok {
			return fmt.Errorf("incomplete snapshot of %s: row %d of %d missing", name, seq, count)
		}
		if err := doc.Append(func(v any) error { return attributevalue.UnmarshalMap(item, v) }); err != nil {
			return fmt.Errorf("unmarshal %s row %d: %w", name, seq, err)
		}
	}
	if stale > 0 {
		b.logger.Warnw("ignoring stale rows", "extent", name, "count", stale)
	}
	return nil
}

// extentItems returns every item of the extent and its header item, or a nil
// header if the extent was never saved. Shards past the configured count are
// queried too when the header says the last save used more of them.
func (b *DynamoBackend) extentItems(ctx context.Context, name string, projection *string) ([]map[string]types.AttributeValue, map[string]types.AttributeValue, error) {
	items, err := b.queryShards(ctx, shard.All(name, b.numShards), projection)
	if err != nil {
		return nil, nil, err
	}

	var header map[string]types.AttributeValue
	for _, item := range items {
		seq, err := itemSeq(item)
		if err != nil {
			return nil, nil, err
		}
		if seq == headerSeq {
			header = item
			break
		}
	}

	if saved := headerShards(header, b.numShards); saved > b.numShards {
		more, err := b.queryShards(ctx, shard.All(name, saved)[b.numShards:], projection)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, more...)
	}
	return items, header, nil
}

// queryShards returns every item stored under the given partition keys.
func (b *DynamoBackend) queryShards(ctx context.Context, pks []string, projection *string) ([]map[string]types.AttributeValue, error) {
	// Fast path for single shard (default)
	if len(pks) == 1 {
		return b.queryShard(ctx, pks[0], projection)
	}

	// Multi-shard fan-out
	var mu sync.Mutex
	var all []map[string]types.AttributeValue
	var wg sync.WaitGroup
	errs := make(chan error, len(pks))

	for _, pk := range pks {
		wg.Add(1)
		go func(pk string) {
			defer wg.Done()

			items, err := b.queryShard(ctx, pk, projection)
			if err != nil {
				errs <- fmt.Errorf("shard %s: %w", pk, err)
				return
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}(pk)
	}

	go func() {
		wg.Wait()
		close(errs)
	}()

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return all, nil
}

func (b *DynamoBackend) queryShard(ctx context.Context, pk string, projection *string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue

	paginator := dynamodb.NewQueryPaginator(b.client, &dynamodb.QueryInput{
		TableName:              aws.String(b.table),
		KeyConditionExpression: aws.String("pk = :pk"),
		ProjectionExpression:   projection,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}

	return items, nil
}

// batchWrite sends requests in batches of 25, retrying unprocessed items with
// exponential backoff.
func (b *DynamoBackend) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	for chunk := range slices.Chunk(requests, maxBatchWrite) {
		pending := map[string][]types.WriteRequest{b.table: chunk}

		for attempt := 0; len(pending[b.table]) > 0; attempt++ {
			if attempt == maxBatchAttempts {
				return fmt.Errorf("%w: %d requests", ErrUnprocessedItems, len(pending[b.table]))
			}
			if attempt > 0 {
				b.logger.Warnw("retrying unprocessed items",
					"table", b.table,
					"attempt", attempt,
					"count", len(pending[b.table]),
				)
				if err := sleep(ctx, backoff(attempt)); err != nil {
					return err
				}
			}

			out, err := b.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 25 * time.Millisecond
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func rowKey(item map[string]types.AttributeValue) string {
	var pk, seq string
	if v, ok := item["pk"].(*types.AttributeValueMemberS); ok {
		pk = v.Value
	}
	if v, ok := item["seq"].(*types.AttributeValueMemberN); ok {
		seq = v.Value
	}
	return pk + "|" + seq
}

// headerShards returns the shard count a header was written with, or fallback
// for a missing header or one that predates the attribute.
func headerShards(header map[string]types.AttributeValue, fallback int) int {
	if header == nil {
		return fallback
	}
	n, err := itemInt(header, "num_shards")
	if err != nil || n < 1 {
		return fallback
	}
	return min(n, maxShards)
}

func itemSeq(item map[string]types.AttributeValue) (int, error) {
	return itemInt(item, "seq")
}

func itemInt(item map[string]types.AttributeValue, attr string) (int, error) {
	v, ok := item[attr].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("item has no numeric %q attribute", attr)
	}
	n, err := strconv.Atoi(v.Value)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", attr, err)
	}
	return n, nil
}
