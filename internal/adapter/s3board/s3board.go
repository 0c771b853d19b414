package s3board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrled/skyval/internal/board"
	"github.com/mrled/skyval/internal/loader"
)

// Scheme is the URL scheme of references this adapter loads
const Scheme = "s3"

// GetObjectAPI is the subset of the S3 API the loader uses
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader loads boards stored as S3 objects, referenced as s3://bucket/key
type Loader struct {
	s3Client GetObjectAPI
	maxBytes int64
}

// New creates a new S3 board loader
func New(s3Client GetObjectAPI) *Loader {
	return &Loader{
		s3Client: s3Client,
		maxBytes: 64 * 1024, // a board is 56 bytes; anything this large is not one
	}
}

// ParseRef splits an s3://bucket/key reference
func ParseRef(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, Scheme+"://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an %s:// reference", loader.ErrUnsupportedSource, ref, Scheme)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 reference %q: expected s3://bucket/key", ref)
	}
	return bucket, key, nil
}

// Load fetches the object named by ref and parses it as a board
func (l *Loader) Load(ctx context.Context, ref string) (board.Board, error) {
	bucket, key, err := ParseRef(ref)
	if err != nil {
		return board.Board{}, err
	}

	result, err := l.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return board.Board{}, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(result.Body, l.maxBytes+1))
	if err != nil {
		return board.Board{}, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	if int64(len(bodyBytes)) > l.maxBytes {
		return board.Board{}, fmt.Errorf("%w: S3 object %s is larger than %d bytes", board.ErrMalformedBoard, ref, l.maxBytes)
	}

	b, err := loader.Decode(key, bodyBytes)
	if err != nil {
		return board.Board{}, fmt.Errorf("%s: %w", ref, err)
	}

	slog.Debug("Loaded board from S3",
		slog.String("bucket", bucket),
		slog.String("key", key))
	return b, nil
}
