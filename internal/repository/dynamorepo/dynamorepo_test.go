package dynamorepo

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrled/skyval/internal/model"
)

// fakeDynamo is an in-memory stand-in for the DynamoDB API, keyed by PK#SK.
// It understands just enough of the expressions DynamoRepository sends.
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "#" + sk
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	k := itemKey(params.Item)
	if _, exists := f.items[k]; exists && params.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: strPtr("exists")}
	}
	f.items[k] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	k := itemKey(params.Key)
	rev := int64(0)
	if existing, ok := f.items[k]; ok {
		if n, ok := existing["Rev"].(*types.AttributeValueMemberN); ok {
			rev, _ = strconv.ParseInt(n.Value, 10, 64)
		}
	}
	rev++

	v := params.ExpressionAttributeValues
	item := map[string]types.AttributeValue{
		"PK":           params.Key["PK"],
		"SK":           params.Key["SK"],
		"Rows":         v[":rows"],
		"Valid":        v[":valid"],
		"FailedRule":   v[":rule"],
		"ValidateTime": v[":time"],
		"Rev":          &types.AttributeValueMemberN{Value: strconv.FormatInt(rev, 10)},
	}
	f.items[k] = item
	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{"Rev": item["Rev"]},
	}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[itemKey(params.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	k := itemKey(params.Key)
	if _, exists := f.items[k]; !exists {
		return nil, &types.ConditionalCheckFailedException{Message: strPtr("missing")}
	}
	delete(f.items, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	out := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func strPtr(s string) *string {
	return &s
}

func TestDynamoRepository_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoRepository(newFakeDynamo(), "verdicts")

	record := &model.VerdictRecord{
		BoardID:      "v1:abc",
		Source:       "check.txt",
		Rows:         []string{"***21**", "412453*"},
		Valid:        true,
		ValidateTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Store(ctx, record); err != nil {
		t.Fatalf("Failed to store record: %v", err)
	}

	got, err := repo.Get(ctx, "v1:abc", "check.txt")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if !got.Valid || got.Rev != 1 || len(got.Rows) != 2 {
		t.Errorf("Unexpected record: %+v", got)
	}
	if !got.ValidateTime.Equal(record.ValidateTime) {
		t.Errorf("Expected ValidateTime %s, got %s", record.ValidateTime, got.ValidateTime)
	}

	if err := repo.Store(ctx, record); !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestDynamoRepository_GetMissing(t *testing.T) {
	repo := NewDynamoRepository(newFakeDynamo(), "verdicts")
	_, err := repo.Get(context.Background(), "v1:none", "none.txt")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDynamoRepository_UnconditionalStore(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoRepository(newFakeDynamo(), "verdicts")

	for i := 1; i <= 2; i++ {
		record := &model.VerdictRecord{
			BoardID:    "v1:abc",
			Source:     "check.txt",
			Rows:       []string{"***21**"},
			Valid:      false,
			FailedRule: "finished",
		}
		if err := repo.UnconditionalStore(ctx, record); err != nil {
			t.Fatalf("Failed to store record: %v", err)
		}
		if record.Rev != int64(i) {
			t.Errorf("Expected rev %d, got %d", i, record.Rev)
		}
	}

	got, err := repo.Get(ctx, "v1:abc", "check.txt")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got.FailedRule != "finished" || got.Rev != 2 {
		t.Errorf("Unexpected record: %+v", got)
	}
}

func TestDynamoRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoRepository(newFakeDynamo(), "verdicts")

	for _, source := range []string{"a.txt", "b.txt"} {
		if err := repo.Store(ctx, &model.VerdictRecord{BoardID: "v1:abc", Source: source}); err != nil {
			t.Fatalf("Failed to store record: %v", err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}

	if err := repo.Delete(ctx, "v1:abc", "a.txt"); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}
	if err := repo.Delete(ctx, "v1:abc", "a.txt"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
