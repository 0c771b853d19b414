package memrepo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mrled/skyval/internal/model"
)

func ExampleMemoryRepository() {
	tmpFile, _ := os.CreateTemp("", "example-*.json")
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	ctx := context.Background()
	repo, _ := NewMemoryRepositoryWithPersistence(tmpPath)

	data := &model.VerdictRecord{
		BoardID:      "v1:abc123",
		Source:       "check.txt",
		Rows:         []string{"*******", "*?????*", "*?????*", "*?????*", "*?????*", "*?????*", "*******"},
		Valid:        false,
		FailedRule:   "finished",
		ValidateTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
	}

	repo.UnconditionalStore(ctx, data)

	// Read the JSON file to show format
	content, _ := os.ReadFile(tmpPath)
	fmt.Println(string(content))

	// Output:
	// [
	//   {
	//     "BoardID": "v1:abc123",
	//     "Source": "check.txt",
	//     "Rows": [
	//       "*******",
	//       "*?????*",
	//       "*?????*",
	//       "*?????*",
	//       "*?????*",
	//       "*?????*",
	//       "*******"
	//     ],
	//     "Valid": false,
	//     "FailedRule": "finished",
	//     "ValidateTime": "2025-10-17T12:00:00Z",
	//     "Rev": 1
	//   }
	// ]
}
