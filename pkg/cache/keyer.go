package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs give equal keys.
type Keyer interface {
	// ResultKey identifies a solver result for a graph and search options.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// ColoringKey identifies a whole-graph coloring.
	ColoringKey(graphHash string, opts ColoringKeyOpts) string
}

// ResultKeyOpts lists every option that changes a solver result.
type ResultKeyOpts struct {
	Quality    string  `json:"quality"`
	Iterations int     `json:"iterations"`
	TimeLimit  float64 `json:"time_limit"` // seconds
	Seed       uint64  `json:"seed"`
}

// ColoringKeyOpts lists every option that changes a coloring.
type ColoringKeyOpts struct {
	Ordering string `json:"ordering"`
	Seed     uint64 `json:"seed"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<graph>:<hash(opts)>".
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result:"+graphHash, opts)
}

// ColoringKey returns "coloring:<graph>:<hash(opts)>".
func (DefaultKeyer) ColoringKey(graphHash string, opts ColoringKeyOpts) string {
	return hashKey("coloring:"+graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
