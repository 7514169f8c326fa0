package engine

import (
	"fmt"
	"sort"

	"github.com/keyward/keyward/model"
	"github.com/keyward/keyward/pdp/condition"
	pdp_model "github.com/keyward/keyward/pdp/model"
)

// CompiledPolicy pairs a policy snapshot with its compiled condition tree.
// Compilation happens upstream, after validation; the simulator assumes
// every tree it sees has already passed the validator.
type CompiledPolicy struct {
	Policy model.Policy
	Tree   *condition.Tree
}

// Simulator evaluates an ordered policy set against one request context.
// It owns no state and never mutates its inputs, so concurrent simulations
// against the same snapshot are safe.
type Simulator struct {
	evaluator *Evaluator
}

func NewSimulator() *Simulator {
	return &Simulator{evaluator: NewEvaluator()}
}

// Simulate walks the policy set in priority order (ascending, stable on the
// supplied order for ties) and returns the decision of the first enabled,
// type-matching policy whose condition holds. First match wins: an explicit
// deny early in the order outranks any later allow. When nothing matches,
// the default is deny. The trace names every policy in the set and is
// deterministic for a given (policies, context) pair.
func (s *Simulator) Simulate(policies []CompiledPolicy, reqCtx *pdp_model.RequestContext) pdp_model.Decision {
	ordered := make([]CompiledPolicy, len(policies))
	copy(ordered, policies)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Policy.Priority < ordered[j].Policy.Priority
	})

	decision := pdp_model.Decision{
		Effect: model.PolicyEffectDeny,
		Reason: "no matching policy",
	}
	matched := false

	for _, cp := range ordered {
		entry := pdp_model.TraceEntry{
			PolicyID:   cp.Policy.ID,
			PolicyName: cp.Policy.Name,
		}

		switch {
		case matched:
			entry.Skipped = true
			entry.Reason = pdp_model.SkipReasonEarlierMatch
		case !cp.Policy.Enabled:
			entry.Skipped = true
			entry.Reason = pdp_model.SkipReasonDisabled
		case cp.Policy.CredentialType != reqCtx.CredentialType:
			entry.Skipped = true
			entry.Reason = pdp_model.SkipReasonTypeMismatch
		case s.evaluator.Evaluate(cp.Tree, reqCtx):
			entry.Matched = true
			matched = true
			decision.Effect = cp.Policy.Effect
			decision.PolicyID = cp.Policy.ID
			decision.Reason = fmt.Sprintf("matched policy %q", cp.Policy.Name)
		default:
			entry.Reason = "condition not satisfied"
		}

		decision.Trace = append(decision.Trace, entry)
	}

	return decision
}
