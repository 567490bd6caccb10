package engine

import (
	"fmt"
	"io"
)

// Stats counts nodes and cutoffs for one search.
type Stats struct {
	Nodes            uint64
	QNodes           uint64
	TTHits           uint64
	TTCutoffs        uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
}

// Add accumulates o into st.
func (st *Stats) Add(o Stats) {
	st.Nodes += o.Nodes
	st.QNodes += o.QNodes
	st.TTHits += o.TTHits
	st.TTCutoffs += o.TTCutoffs
	st.BetaCutoffs += o.BetaCutoffs
	st.QStandPatCutoffs += o.QStandPatCutoffs
	st.QBetaCutoffs += o.QBetaCutoffs
}

// Dump writes the counters as UCI info strings.
func (st Stats) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", st.Nodes)
	fmt.Fprintf(w, "info string   QNodes: %d\n", st.QNodes)
	fmt.Fprintf(w, "info string   TT hits: %d\n", st.TTHits)
	fmt.Fprintf(w, "info string   TT cutoffs: %d\n", st.TTCutoffs)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", st.BetaCutoffs)
	fmt.Fprintf(w, "info string   QStandPat cutoffs: %d\n", st.QStandPatCutoffs)
	fmt.Fprintf(w, "info string   QBeta cutoffs: %d\n", st.QBetaCutoffs)
}
