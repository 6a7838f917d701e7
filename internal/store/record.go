package store

import "github.com/provlab/hedberg/internal/engine"

// Run is one persisted engine invocation.
//
// ID is assigned by the caller (see RunIDGenerator); Seq comes from the
// log's logical clock. Everything else mirrors the engine result.
type Run struct {
	ID           string
	Seq          int64
	ObligationID string
	Name         string
	ICount       int
	Phase        engine.Phase
	Closed       bool
	Branches     []Branch
}

// Branch is one persisted constructor branch. Position preserves the
// family's declaration order.
type Branch struct {
	Position int
	Ctor     string
	Status   engine.BranchStatus
	Reason   engine.OpenReason
	Detail   string

	// ResidualJSON and WitnessJSON hold canonical term encodings, empty
	// when the branch carries neither.
	ResidualJSON string
	WitnessJSON  string
}

// NewRun stamps an engine result with an identity and sequence number,
// serializing branch terms to canonical JSON.
func NewRun(id string, seq int64, res *engine.Result) (Run, error) {
	run := Run{
		ID:           id,
		Seq:          seq,
		ObligationID: res.ObligationID,
		Name:         res.Name,
		ICount:       res.ICount,
		Phase:        res.Phase,
		Closed:       res.Closed,
	}
	for i, b := range res.Branches {
		residual, err := marshalTerm(b.Residual)
		if err != nil {
			return Run{}, err
		}
		witness, err := marshalTerm(b.Witness)
		if err != nil {
			return Run{}, err
		}
		run.Branches = append(run.Branches, Branch{
			Position:     i,
			Ctor:         b.Ctor,
			Status:       b.Status,
			Reason:       b.Reason,
			Detail:       b.Detail,
			ResidualJSON: residual,
			WitnessJSON:  witness,
		})
	}
	return run, nil
}

// Result reconstructs the engine result recorded by this run.
func (r Run) Result() (*engine.Result, error) {
	res := &engine.Result{
		ObligationID: r.ObligationID,
		Name:         r.Name,
		ICount:       r.ICount,
		Phase:        r.Phase,
		Closed:       r.Closed,
	}
	for _, b := range r.Branches {
		residual, err := unmarshalTerm(b.ResidualJSON)
		if err != nil {
			return nil, err
		}
		witness, err := unmarshalTerm(b.WitnessJSON)
		if err != nil {
			return nil, err
		}
		res.Branches = append(res.Branches, engine.BranchReport{
			Ctor:     b.Ctor,
			Status:   b.Status,
			Reason:   b.Reason,
			Detail:   b.Detail,
			Residual: residual,
			Witness:  witness,
		})
	}
	return res, nil
}
