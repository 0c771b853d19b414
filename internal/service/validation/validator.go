package validation

import (
	"context"
	"io"
	"log/slog"

	"github.com/mrled/skyval/internal/board"
)

// Rule names one of the checks a board must pass
type Rule string

const (
	RuleNone                 Rule = ""
	RuleFinished             Rule = "finished"
	RuleRowUniqueness        Rule = "row-uniqueness"
	RuleColumnUniqueness     Rule = "column-uniqueness"
	RuleHorizontalVisibility Rule = "horizontal-visibility"
	RuleVerticalVisibility   Rule = "vertical-visibility"
)

// Verdict is the outcome of validating one board.
// FailedRule is the first rule that failed, or RuleNone when Valid is true.
type Verdict struct {
	Valid      bool
	FailedRule Rule
}

// Validator defines the interface for board validation
type Validator interface {
	Evaluate(ctx context.Context, b board.Board) Verdict
}

type check struct {
	rule Rule
	fn   func(board.Board) bool
}

// Validate runs the finished, row uniqueness, horizontal visibility and
// vertical visibility checks in that order and stops at the first failure.
func Validate(b board.Board) bool {
	return evaluate(b, defaultChecks).Valid
}

var defaultChecks = []check{
	{RuleFinished, CheckFinished},
	{RuleRowUniqueness, CheckRowUniqueness},
	{RuleHorizontalVisibility, CheckHorizontalVisibility},
	{RuleVerticalVisibility, CheckVerticalVisibility},
}

var strictChecks = []check{
	{RuleFinished, CheckFinished},
	{RuleRowUniqueness, CheckRowUniqueness},
	{RuleColumnUniqueness, CheckColumnUniqueness},
	{RuleHorizontalVisibility, CheckHorizontalVisibility},
	{RuleVerticalVisibility, CheckVerticalVisibility},
}

func evaluate(b board.Board, checks []check) Verdict {
	for _, c := range checks {
		if !c.fn(b) {
			return Verdict{Valid: false, FailedRule: c.rule}
		}
	}
	return Verdict{Valid: true}
}

// Service implements the Validator interface
type Service struct {
	log              *slog.Logger
	columnUniqueness bool
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used to report failed rules
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithColumnUniqueness enables the column uniqueness rule, which is not
// part of the default rule set
func WithColumnUniqueness(enabled bool) Option {
	return func(s *Service) {
		s.columnUniqueness = enabled
	}
}

// NewService creates a new validation service
func NewService(opts ...Option) *Service {
	s := &Service{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules lists the rules the service applies, in evaluation order
func (s *Service) Rules() []Rule {
	checks := s.checks()
	rules := make([]Rule, len(checks))
	for i, c := range checks {
		rules[i] = c.rule
	}
	return rules
}

func (s *Service) checks() []check {
	if s.columnUniqueness {
		return strictChecks
	}
	return defaultChecks
}

// Evaluate validates b and reports the first rule it breaks
func (s *Service) Evaluate(ctx context.Context, b board.Board) Verdict {
	verdict := evaluate(b, s.checks())
	if verdict.Valid {
		s.log.DebugContext(ctx, "Board is valid")
	} else {
		s.log.DebugContext(ctx, "Board failed validation", slog.String("rule", string(verdict.FailedRule)))
	}
	return verdict
}

// Validate reports whether b passes every rule
func (s *Service) Validate(ctx context.Context, b board.Board) bool {
	return s.Evaluate(ctx, b).Valid
}
