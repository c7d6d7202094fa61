package arrivals

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Candidate is a vehicle inside the search radius of a stop
type Candidate struct {
	Distance float64
	Speed    float64
}

// ApproachPolicy decides whether a nearby vehicle should be shown as approaching.
// Without trajectory history every implementation is a heuristic.
type ApproachPolicy interface {
	Approaching(candidate Candidate) bool
}

// ThresholdPolicy applies, in order: at the stop is always shown, stationary
// vehicles further out are parked, moving vehicles close enough are shown.
// Vehicles that have just passed the stop and are moving away slowly still
// count as approaching.
type ThresholdPolicy struct {
	AtStopDistance float64
	ParkedDistance float64
	MovingDistance float64
}

var DefaultThresholdPolicy = ThresholdPolicy{
	AtStopDistance: 50,
	ParkedDistance: 100,
	MovingDistance: 1000,
}

func (p ThresholdPolicy) Approaching(candidate Candidate) bool {
	if candidate.Distance < p.AtStopDistance {
		return true
	}

	if candidate.Speed == 0 && candidate.Distance > p.ParkedDistance {
		return false
	}

	if candidate.Distance <= p.MovingDistance && candidate.Speed > 0 {
		return true
	}

	return false
}

// DefaultPolicyExpression is the threshold policy written as an expression
const DefaultPolicyExpression = "distance < 50 || (speed > 0 && distance <= 1000)"

// ExprPolicy evaluates a boolean expression over `distance` (metres) and `speed` (km/h)
type ExprPolicy struct {
	Source  string
	program *vm.Program
}

func NewExprPolicy(source string) (*ExprPolicy, error) {
	program, err := expr.Compile(source, expr.Env(policyEnvironment(Candidate{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid approach policy %q: %w", source, err)
	}

	return &ExprPolicy{
		Source:  source,
		program: program,
	}, nil
}

func (p *ExprPolicy) Approaching(candidate Candidate) bool {
	output, err := expr.Run(p.program, policyEnvironment(candidate))
	if err != nil {
		return false
	}

	approaching, _ := output.(bool)
	return approaching
}

func policyEnvironment(candidate Candidate) map[string]interface{} {
	return map[string]interface{}{
		"distance": candidate.Distance,
		"speed":    candidate.Speed,
	}
}
