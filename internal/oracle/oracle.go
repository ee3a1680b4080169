package oracle

// #region question
// Question is one problem instance posed to the policy: an ordered pair of
// integers. Immutable once created.
type Question struct {
	A int `json:"a"`
	B int `json:"b"`
}
// #endregion question

// #region oracle
// Oracle maps a question to its correct answer. Implementations must be
// pure, total, and deterministic.
type Oracle func(q Question) int

// Addition is the reference oracle: the answer to (a, b) is a + b.
func Addition(q Question) int {
	return q.A + q.B
}
// #endregion oracle
