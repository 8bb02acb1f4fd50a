package dsl

import "github.com/voltcraft/troubleshoot/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node domain.Node
}

// Question sets the prompt of the node.
func (n *NodeBuilder) Question(text string) *NodeBuilder {
	n.node.Question = text
	return n
}

// Describe sets the helper text shown under the question.
func (n *NodeBuilder) Describe(text string) *NodeBuilder {
	n.node.Description = text
	return n
}

// Go adds an option that continues to the target node.
func (n *NodeBuilder) Go(label, target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Goto(label, target))
	return n
}

// Conclude adds an option that ends the traversal with a diagnosis.
func (n *NodeBuilder) Conclude(label string, result *ResultBuilder) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Finish(label, result.Build()))
	return n
}

// Build returns the underlying domain.Node.
func (n *NodeBuilder) Build() domain.Node {
	node := n.node
	node.Options = append([]domain.Option(nil), n.node.Options...)
	return node
}

// ResultBuilder configures a terminal diagnosis.
type ResultBuilder struct {
	result domain.Result
}

// Diagnosis starts a result with its headline and severity.
func Diagnosis(diagnosis string, severity domain.Severity) *ResultBuilder {
	return &ResultBuilder{result: domain.Result{Diagnosis: diagnosis, Severity: severity}}
}

// Causes appends likely causes.
func (r *ResultBuilder) Causes(causes ...string) *ResultBuilder {
	r.result.Causes = append(r.result.Causes, causes...)
	return r
}

// Solutions appends recommended fixes.
func (r *ResultBuilder) Solutions(solutions ...string) *ResultBuilder {
	r.result.Solutions = append(r.result.Solutions, solutions...)
	return r
}

// Estimate sets the cost and time estimates.
func (r *ResultBuilder) Estimate(cost, duration string) *ResultBuilder {
	r.result.EstimatedCost = cost
	r.result.EstimatedTime = duration
	return r
}

// DIY marks the fix as safe for the owner to do.
func (r *ResultBuilder) DIY() *ResultBuilder {
	r.result.DIYFriendly = true
	return r
}

// Technician marks the fix as requiring a professional.
func (r *ResultBuilder) Technician() *ResultBuilder {
	r.result.RequiresTechnician = true
	return r
}

// Warn sets a safety warning.
func (r *ResultBuilder) Warn(warning string) *ResultBuilder {
	r.result.SafetyWarning = warning
	return r
}

// Build returns a copy of the result.
func (r *ResultBuilder) Build() domain.Result {
	return *r.result.Clone()
}
