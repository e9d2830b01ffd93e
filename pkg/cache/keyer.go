package cache

// Operation names used in result keys.
const (
	OpCheck     = "check"
	OpEmbed     = "embed"
	OpPlanarize = "planarize"
)

// ResultKeyOpts are the options that change a result for the same graph.
type ResultKeyOpts struct {
	Algorithm    string  `json:"algorithm,omitempty"`
	ST           []int64 `json:"st,omitempty"`
	VirtualStart int64   `json:"virtual_start,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey names the result of op on the graph whose content hash is
	// graphHash.
	ResultKey(op, graphHash string, opts ResultKeyOpts) string
	// ReportKey names a stored report by id.
	ReportKey(id string) string
}

// DefaultKeyer produces keys of the form "<op>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements [Keyer].
func (DefaultKeyer) ResultKey(op, graphHash string, opts ResultKeyOpts) string {
	return hashKey(op, graphHash, opts)
}

// ReportKey implements [Keyer].
func (DefaultKeyer) ReportKey(id string) string {
	return "report:" + id
}
