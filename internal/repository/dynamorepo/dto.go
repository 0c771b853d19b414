package dynamorepo

import (
	"time"

	"github.com/mrled/skyval/internal/model"
)

// DynamoDTO represents the persistence layer DTO for DynamoDB
// It maps the domain model to DynamoDB's key structure where:
// - PK (partition key) is the BoardID
// - SK (sort key) is the Source
type DynamoDTO struct {
	PK           string    `dynamodbav:"PK"` // Partition Key - maps from BoardID
	SK           string    `dynamodbav:"SK"` // Sort Key - maps from Source
	Rows         []string  `dynamodbav:"Rows"`
	Valid        bool      `dynamodbav:"Valid"`
	FailedRule   string    `dynamodbav:"FailedRule"`
	ValidateTime time.Time `dynamodbav:"ValidateTime"`
	Rev          int64     `dynamodbav:"Rev"` // Monotonically increasing revision number
}

// ToDomain converts a DynamoDTO to a domain model VerdictRecord
func (dto *DynamoDTO) ToDomain() *model.VerdictRecord {
	return &model.VerdictRecord{
		BoardID:      dto.PK,
		Source:       dto.SK,
		Rows:         dto.Rows,
		Valid:        dto.Valid,
		FailedRule:   dto.FailedRule,
		ValidateTime: dto.ValidateTime,
		Rev:          dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a domain model VerdictRecord
func FromDomain(record *model.VerdictRecord) *DynamoDTO {
	return &DynamoDTO{
		PK:           record.BoardID,
		SK:           record.Source,
		Rows:         record.Rows,
		Valid:        record.Valid,
		FailedRule:   record.FailedRule,
		ValidateTime: record.ValidateTime,
		Rev:          record.Rev,
	}
}

// ToDomainList converts a slice of DynamoDTOs to domain model VerdictRecords
func ToDomainList(dtos []*DynamoDTO) []*model.VerdictRecord {
	records := make([]*model.VerdictRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.ToDomain()
	}
	return records
}
