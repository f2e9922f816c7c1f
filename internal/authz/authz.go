// Package authz decides ticket read access with an in-process OPA Rego
// policy. The policy maps a staff role to a projection scope; handlers never
// branch on roles directly.
package authz

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	authdomain "civic-reporting/backend/internal/auth/domain"
)

// Projection scopes granted by the read-access policy.
const (
	// ScopeSummary grants the redacted ticket view.
	ScopeSummary = "summary"
	// ScopeFull grants the complete ticket record.
	ScopeFull = "full"
)

// Ticket read-access policy. Officers see summaries, supervisors see full
// records, everything else is denied.
const ticketAccessPolicy = `package civic.tickets

default allow = false
default scope = ""

allow if {
	input.identity.role == "OFFICER"
}

allow if {
	input.identity.role == "SUPERVISOR"
}

scope = "summary" if {
	input.identity.role == "OFFICER"
}

scope = "full" if {
	input.identity.role == "SUPERVISOR"
}
`

// Decision is the outcome of a read-access evaluation.
type Decision struct {
	Allowed bool
	Scope   string
}

// Evaluator evaluates the ticket read-access policy.
type Evaluator struct {
	allowQuery rego.PreparedEvalQuery
	scopeQuery rego.PreparedEvalQuery
}

// NewEvaluator compiles the ticket access policy and prepares its queries.
func NewEvaluator(ctx context.Context) (*Evaluator, error) {
	compiler, err := ast.CompileModules(map[string]string{"tickets.rego": ticketAccessPolicy})
	if err != nil {
		return nil, fmt.Errorf("compile ticket access policy: %w", err)
	}
	allowQuery, err := rego.New(
		rego.Query("data.civic.tickets.allow"),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare allow query: %w", err)
	}
	scopeQuery, err := rego.New(
		rego.Query("data.civic.tickets.scope"),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare scope query: %w", err)
	}
	return &Evaluator{allowQuery: allowQuery, scopeQuery: scopeQuery}, nil
}

// Authorize evaluates read access for the given identity.
func (e *Evaluator) Authorize(ctx context.Context, id *authdomain.Identity) (Decision, error) {
	input := map[string]interface{}{
		"identity": map[string]interface{}{
			"role":       string(id.Role),
			"employeeId": id.EmployeeID,
		},
	}

	out := Decision{}

	allowRS, err := e.allowQuery.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, fmt.Errorf("eval allow: %w", err)
	}
	if len(allowRS) > 0 && len(allowRS[0].Expressions) > 0 {
		if v, ok := allowRS[0].Expressions[0].Value.(bool); ok {
			out.Allowed = v
		}
	}
	if !out.Allowed {
		return out, nil
	}

	scopeRS, err := e.scopeQuery.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, fmt.Errorf("eval scope: %w", err)
	}
	if len(scopeRS) > 0 && len(scopeRS[0].Expressions) > 0 {
		if v, ok := scopeRS[0].Expressions[0].Value.(string); ok {
			out.Scope = v
		}
	}
	return out, nil
}

// HealthCheck verifies the compiled policy still evaluates. Returns nil on
// success.
func (e *Evaluator) HealthCheck(ctx context.Context) error {
	d, err := e.Authorize(ctx, &authdomain.Identity{Role: authdomain.RoleSupervisor})
	if err != nil {
		return err
	}
	if !d.Allowed || d.Scope != ScopeFull {
		return fmt.Errorf("policy returned unexpected decision %+v", d)
	}
	return nil
}
