package dynamorepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrled/skyval/internal/model"
)

// Client is the subset of the DynamoDB API the repository uses
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository is a DynamoDB implementation of VerdictRepository
type DynamoRepository struct {
	client    Client
	tableName string
}

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client Client, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func key(boardID, source string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: boardID},
		"SK": &types.AttributeValueMemberS{Value: source},
	}
}

// Store saves a verdict record to DynamoDB
// Uses board ID as the PK and source as the SK
func (r *DynamoRepository) Store(ctx context.Context, data *model.VerdictRecord) error {
	if data == nil {
		return fmt.Errorf("verdict record cannot be nil")
	}

	if data.Rev == 0 {
		data.Rev = 1
	}
	item, err := attributevalue.MarshalMap(FromDomain(data))
	if err != nil {
		return fmt.Errorf("failed to marshal verdict record: %w", err)
	}

	// Matches MemoryRepository.Store, which returns ErrAlreadyExists
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store verdict record: %w", err)
	}

	return nil
}

// UnconditionalStore writes a verdict record, replacing any existing one.
// The revision is incremented atomically on the server.
func (r *DynamoRepository) UnconditionalStore(ctx context.Context, data *model.VerdictRecord) error {
	if data == nil {
		return fmt.Errorf("verdict record cannot be nil")
	}

	values, err := attributevalue.MarshalMap(map[string]any{
		":rows":  data.Rows,
		":valid": data.Valid,
		":rule":  data.FailedRule,
		":time":  data.ValidateTime,
		":zero":  0,
		":one":   1,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal verdict record: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       key(data.BoardID, data.Source),
		UpdateExpression:          aws.String("SET #rows = :rows, Valid = :valid, FailedRule = :rule, ValidateTime = :time, Rev = if_not_exists(Rev, :zero) + :one"),
		ExpressionAttributeNames:  map[string]string{"#rows": "Rows"},
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return fmt.Errorf("failed to store verdict record: %w", err)
	}

	if rev, ok := out.Attributes["Rev"].(*types.AttributeValueMemberN); ok {
		n, err := strconv.ParseInt(rev.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse revision %q: %w", rev.Value, err)
		}
		data.Rev = n
	}

	return nil
}

// Get retrieves a verdict record by board ID and source from DynamoDB
func (r *DynamoRepository) Get(ctx context.Context, boardID, source string) (*model.VerdictRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key(boardID, source),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get verdict record: %w", err)
	}

	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict record: %w", err)
	}

	return dto.ToDomain(), nil
}

// List retrieves all verdict records from DynamoDB, following scan pages
func (r *DynamoRepository) List(ctx context.Context) ([]*model.VerdictRecord, error) {
	var dtos []*DynamoDTO

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verdict records: %w", err)
		}

		var pageDTOs []*DynamoDTO
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageDTOs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal verdict records: %w", err)
		}
		dtos = append(dtos, pageDTOs...)
	}

	return ToDomainList(dtos), nil
}

// Delete removes a verdict record by board ID and source from DynamoDB
func (r *DynamoRepository) Delete(ctx context.Context, boardID, source string) error {
	// Matches MemoryRepository.Delete, which returns ErrNotFound
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 key(boardID, source),
		ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete verdict record: %w", err)
	}

	return nil
}
