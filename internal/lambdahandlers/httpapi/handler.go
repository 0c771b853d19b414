package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrled/skyval/internal/adapter/s3board"
	"github.com/mrled/skyval/internal/board"
	"github.com/mrled/skyval/internal/loader"
	"github.com/mrled/skyval/internal/logger"
	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/repository"
	"github.com/mrled/skyval/internal/service/validation"
	"github.com/mrled/skyval/internal/usecase/check"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	checkUseCase *check.CheckUseCase
	boards       loader.Loader
	bucket       string
	log          *slog.Logger
}

// CheckRequest is the JSON payload for a check.
// Exactly one of Rows or Key must be set; Key names an object in the board bucket.
type CheckRequest struct {
	Rows []string `json:"rows,omitempty"`
	Key  string   `json:"key,omitempty"`
}

// CheckResponse is the JSON response for a check
type CheckResponse struct {
	Valid      bool   `json:"valid"`
	FailedRule string `json:"failedRule,omitempty"`
	BoardID    string `json:"boardId"`
	Rev        int64  `json:"rev,omitempty"`
}

// New creates a handler from already constructed dependencies.
// boards may be nil when no board bucket is configured.
func New(checkUseCase *check.CheckUseCase, boards loader.Loader, bucket string, log *slog.Logger) *Handler {
	return &Handler{
		checkUseCase: checkUseCase,
		boards:       boards,
		bucket:       bucket,
		log:          log,
	}
}

// NewHandler creates a new httpapi handler configured from the environment
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	ctx := context.Background()

	strict := os.Getenv("SKYVAL_COLUMN_UNIQUENESS") == "true"
	validator := validation.NewService(validation.WithLogger(log), validation.WithColumnUniqueness(strict))
	log.Info("Validation rules", slog.Any("rules", validator.Rules()))

	opts := []check.Option{check.WithLogger(log)}

	repoCfg := repository.RepositoryConfig{
		DynamoTable:    os.Getenv("DYNAMODB_TABLE"),
		DynamoEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
	}
	if repoCfg.Configured() {
		if repoCfg.DynamoEndpoint == "" && os.Getenv("AWS_REGION") == "" {
			return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
		}
		repo, err := repository.NewRepository(ctx, repoCfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, check.WithRepository(repo))
		log.Info("Storing verdicts in DynamoDB", slog.String("table", repoCfg.DynamoTable))
	} else {
		log.Info("DYNAMODB_TABLE not set, verdicts will not be stored")
	}

	var boards loader.Loader
	bucket := os.Getenv("SKYVAL_BOARD_BUCKET")
	if bucket != "" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		boards = s3board.New(s3.NewFromConfig(cfg))
		log.Info("Using board bucket", slog.String("bucket", bucket))
	}

	checkUseCase := check.NewCheckUseCase(boards, validator, opts...)

	return New(checkUseCase, boards, bucket, log), nil
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	requestLogger.Info("Incoming request",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", request.RequestContext.HTTP.Path),
		slog.String("raw_path", request.RawPath))

	// For API Gateway v2, the path is in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimPrefix(path, "/api")

	switch {
	case strings.HasSuffix(path, "/v1/check"):
		return h.handleCheck(ctx, requestLogger, request)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(404, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleCheck(ctx context.Context, requestLogger *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	httpMethod := request.RequestContext.HTTP.Method
	if httpMethod != "POST" {
		requestLogger.Warn("Method validation failed", slog.String("received_method", httpMethod))
		return errorResponseV2(405, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", httpMethod))
	}

	var checkReq CheckRequest
	if err := json.Unmarshal([]byte(request.Body), &checkReq); err != nil {
		return errorResponseV2(400, fmt.Sprintf("Invalid request body: %v", err))
	}

	var (
		record *model.VerdictRecord
		err    error
	)
	switch {
	case len(checkReq.Rows) > 0 && checkReq.Key != "":
		return errorResponseV2(400, "only one of rows or key may be given")
	case len(checkReq.Rows) > 0:
		b, parseErr := board.Parse(checkReq.Rows)
		if parseErr != nil {
			return errorResponseV2(400, parseErr.Error())
		}
		record, err = h.checkUseCase.CheckBoard(ctx, "api", b)
	case checkReq.Key != "":
		if h.boards == nil {
			return errorResponseV2(400, "no board bucket is configured; send rows instead")
		}
		ref := s3board.Scheme + "://" + h.bucket + "/" + strings.TrimPrefix(checkReq.Key, "/")
		b, loadErr := h.boards.Load(ctx, ref)
		if errors.Is(loadErr, board.ErrMalformedBoard) {
			return errorResponseV2(400, loadErr.Error())
		}
		if loadErr != nil {
			requestLogger.Error("Failed to load board", slog.String("ref", ref), slog.String("error", loadErr.Error()))
			return errorResponseV2(502, fmt.Sprintf("failed to load board: %v", loadErr))
		}
		record, err = h.checkUseCase.CheckBoard(ctx, ref, b)
	default:
		return errorResponseV2(400, "rows or key is required")
	}
	if err != nil {
		requestLogger.Error("Check failed", slog.String("error", err.Error()))
		return errorResponseV2(500, fmt.Sprintf("check failed: %v", err))
	}

	response := CheckResponse{
		Valid:      record.Valid,
		FailedRule: record.FailedRule,
		BoardID:    record.BoardID,
		Rev:        record.Rev,
	}

	responseBody, err := json.Marshal(response)
	if err != nil {
		requestLogger.Error("Failed to marshal response", slog.String("error", err.Error()))
		return errorResponseV2(500, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Body:       string(responseBody),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	errorBody := map[string]string{
		"error": message,
	}
	body, _ := json.Marshal(errorBody)

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
