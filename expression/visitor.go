package expression

// variableCollector gathers variable names in pre-order appearance order.
type variableCollector struct {
	names []string
	seen  map[string]bool
}

// Variables returns the distinct variable names of expr in order of first
// appearance.
func Variables(expr Expression) []string {
	collector := &variableCollector{seen: map[string]bool{}}
	expr.Accept(collector)
	return collector.names
}

// FirstVariable returns the first variable of expr in appearance order and
// whether one exists.
func FirstVariable(expr Expression) (string, bool) {
	names := Variables(expr)
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

func (c *variableCollector) VisitNumber(*Number) any { return nil }

func (c *variableCollector) VisitVariable(v *Variable) any {
	if !c.seen[v.Name()] {
		c.seen[v.Name()] = true
		c.names = append(c.names, v.Name())
	}
	return nil
}

func (c *variableCollector) VisitUnary(u *Unary) any {
	u.Operand().Accept(c)
	return nil
}

func (c *variableCollector) VisitBinary(b *Binary) any {
	b.Left().Accept(c)
	b.Right().Accept(c)
	return nil
}

func (c *variableCollector) VisitFunction(f *Function) any {
	for _, argument := range f.Arguments() {
		argument.Accept(c)
	}
	return nil
}

func (c *variableCollector) VisitEquation(e *Equation) any {
	e.Left().Accept(c)
	e.Right().Accept(c)
	return nil
}

func (c *variableCollector) VisitEquationSystem(s *EquationSystem) any {
	for _, equation := range s.Equations() {
		equation.Accept(c)
	}
	return nil
}

func (c *variableCollector) VisitMatrix(*Matrix) any { return nil }

// functionDetector reports whether a function with a given name appears
// anywhere in the tree.
type functionDetector struct {
	name  string
	found bool
}

// ContainsFunction reports whether a call to name appears anywhere in expr.
func ContainsFunction(expr Expression, name string) bool {
	detector := &functionDetector{name: name}
	expr.Accept(detector)
	return detector.found
}

// ContainsSqrt reports whether expr contains a square root anywhere; the
// equation solver dispatches radical equations on it.
func ContainsSqrt(expr Expression) bool {
	return ContainsFunction(expr, SqrtName)
}

func (d *functionDetector) VisitNumber(*Number) any   { return nil }
func (d *functionDetector) VisitVariable(*Variable) any { return nil }

func (d *functionDetector) VisitUnary(u *Unary) any {
	u.Operand().Accept(d)
	return nil
}

func (d *functionDetector) VisitBinary(b *Binary) any {
	b.Left().Accept(d)
	b.Right().Accept(d)
	return nil
}

func (d *functionDetector) VisitFunction(f *Function) any {
	if f.Name() == d.name {
		d.found = true
		return nil
	}
	for _, argument := range f.Arguments() {
		argument.Accept(d)
	}
	return nil
}

func (d *functionDetector) VisitEquation(e *Equation) any {
	e.Left().Accept(d)
	e.Right().Accept(d)
	return nil
}

func (d *functionDetector) VisitEquationSystem(s *EquationSystem) any {
	for _, equation := range s.Equations() {
		equation.Accept(d)
	}
	return nil
}

func (d *functionDetector) VisitMatrix(*Matrix) any { return nil }

// substituteVisitor rebuilds a tree with one variable replaced.
type substituteVisitor struct {
	name        string
	replacement Expression
}

// Substitute returns a new tree with every occurrence of the named variable
// replaced. Untouched subtrees are shared, never mutated.
func Substitute(expr Expression, name string, replacement Expression) Expression {
	visitor := &substituteVisitor{name: name, replacement: replacement}
	return expr.Accept(visitor).(Expression)
}

func (s *substituteVisitor) VisitNumber(n *Number) any { return Expression(n) }

func (s *substituteVisitor) VisitVariable(v *Variable) any {
	if v.Name() == s.name {
		return s.replacement
	}
	return Expression(v)
}

func (s *substituteVisitor) VisitUnary(u *Unary) any {
	return Expression(Negate(u.Operand().Accept(s).(Expression)))
}

func (s *substituteVisitor) VisitBinary(b *Binary) any {
	left := b.Left().Accept(s).(Expression)
	right := b.Right().Accept(s).(Expression)
	return Expression(NewBinary(left, b.Operator(), right))
}

func (s *substituteVisitor) VisitFunction(f *Function) any {
	arguments := make([]Expression, len(f.Arguments()))
	for i, argument := range f.Arguments() {
		arguments[i] = argument.Accept(s).(Expression)
	}
	return Expression(NewFunction(f.Name(), arguments...))
}

func (s *substituteVisitor) VisitEquation(e *Equation) any {
	left := e.Left().Accept(s).(Expression)
	right := e.Right().Accept(s).(Expression)
	return Expression(NewEquation(left, right))
}

func (s *substituteVisitor) VisitEquationSystem(sys *EquationSystem) any {
	equations := make([]*Equation, len(sys.Equations()))
	for i, equation := range sys.Equations() {
		equations[i] = equation.Accept(s).(Expression).(*Equation)
	}
	return Expression(NewEquationSystem(equations...))
}

func (s *substituteVisitor) VisitMatrix(m *Matrix) any { return Expression(m) }

// SignedPart is one additive operand with its accumulated sign.
type SignedPart struct {
	Expr     Expression
	Negative bool
}

// signedPartCollector splits a top-level Add/Subtract chain while tracking
// signs; non-additive nodes become single opaque parts.
type signedPartCollector struct {
	parts    []SignedPart
	negative bool
}

// SignedParts flattens the top-level additive chain of expr, tracking each
// part's sign through Subtract and Negate nodes.
func SignedParts(expr Expression) []SignedPart {
	collector := &signedPartCollector{}
	expr.Accept(collector)
	return collector.parts
}

func (c *signedPartCollector) add(e Expression) {
	c.parts = append(c.parts, SignedPart{Expr: e, Negative: c.negative})
}

func (c *signedPartCollector) VisitNumber(n *Number) any   { c.add(n); return nil }
func (c *signedPartCollector) VisitVariable(v *Variable) any { c.add(v); return nil }

func (c *signedPartCollector) VisitUnary(u *Unary) any {
	c.negative = !c.negative
	u.Operand().Accept(c)
	c.negative = !c.negative
	return nil
}

func (c *signedPartCollector) VisitBinary(b *Binary) any {
	switch b.Operator() {
	case Add:
		b.Left().Accept(c)
		b.Right().Accept(c)
	case Subtract:
		b.Left().Accept(c)
		c.negative = !c.negative
		b.Right().Accept(c)
		c.negative = !c.negative
	default:
		c.add(b)
	}
	return nil
}

func (c *signedPartCollector) VisitFunction(f *Function) any       { c.add(f); return nil }
func (c *signedPartCollector) VisitEquation(e *Equation) any       { c.add(e); return nil }
func (c *signedPartCollector) VisitEquationSystem(s *EquationSystem) any { c.add(s); return nil }
func (c *signedPartCollector) VisitMatrix(m *Matrix) any           { c.add(m); return nil }
