package aeff

import (
	"context"
	"strings"

	"go-hep.org/x/hep/groot/rtree"
	"go.trai.ch/zerr"
)

// Branches maps Event fields to tree branch names.  Empty names are not
// read and leave the corresponding Event field zero, so a source over
// thrown-simulation files can restrict itself to the branches those files
// carry.
type Branches struct {
	Energy   string
	Size     string
	Leakage2 string
	Zd       string
	DataType string
	ThetaSq  string
}

// AnalyzedBranches returns the branch names of an analyzed (event-selected)
// Monte-Carlo or data file.
func AnalyzedBranches() Branches {
	return Branches{
		Energy:   "MMcEvt.fEnergy",
		Size:     "MHillas.fSize",
		Leakage2: "MNewImagePar.fLeakage2",
		Zd:       "MPointingPos.fZd",
		DataType: "DataType.fVal",
		ThetaSq:  "ThetaSquared.fVal",
	}
}

// ThrownBranches returns the branch names of a thrown-simulation file,
// which carries only the true event kinematics.
func ThrownBranches() Branches {
	return Branches{
		Energy: "MMcEvtBasic.fEnergy",
		Zd:     "MPointingPos.fZd",
	}
}

// RootSource reads events from the named tree of one or more ROOT files,
// chained in order.
type RootSource struct {
	Files    []string
	Tree     string // defaults to "Events"
	Branches Branches
}

var _ EventSource = (*RootSource)(nil)

func (s *RootSource) tree() string {
	if s.Tree == "" {
		return "Events"
	}
	return s.Tree
}

// readVar splits a MARS-style qualified leaf name ("DataType.fVal") into a
// branch/leaf read variable.
func readVar(name string, ptr *float64) rtree.ReadVar {
	branch, leaf, ok := strings.Cut(name, ".")
	if !ok {
		return rtree.ReadVar{Name: name, Value: ptr}
	}
	return rtree.ReadVar{Name: branch, Leaf: leaf, Value: ptr}
}

func (s *RootSource) Scan(ctx context.Context, fn func(Event) error) error {
	if len(s.Files) == 0 {
		return ErrNoFiles
	}

	tree, closer, err := rtree.ChainOf(s.tree(), s.Files...)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open tree chain"), "tree", s.tree())
	}
	defer closer()

	var (
		ev    Event
		rvars []rtree.ReadVar
	)
	for _, v := range []struct {
		name string
		ptr  *float64
	}{
		{s.Branches.Energy, &ev.Energy},
		{s.Branches.Size, &ev.Size},
		{s.Branches.Leakage2, &ev.Leakage2},
		{s.Branches.Zd, &ev.Zd},
		{s.Branches.DataType, &ev.DataType},
		{s.Branches.ThetaSq, &ev.ThetaSq},
	} {
		if v.name == "" {
			continue
		}
		rvars = append(rvars, readVar(v.name, v.ptr))
	}

	r, err := rtree.NewReader(tree, rvars)
	if err != nil {
		return zerr.Wrap(err, "failed to create tree reader")
	}
	defer r.Close()

	return r.Read(func(rctx rtree.RCtx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ev)
	})
}
