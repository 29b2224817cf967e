package cmdutil

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress counts finished clusters on stderr. The zero value and a nil
// *Progress are silent no-ops.
type Progress struct {
	bar *pb.ProgressBar
}

// StartProgress starts a bar of total steps on dst when enabled.
func StartProgress(dst io.Writer, total int, enabled bool) *Progress {
	if !enabled || total <= 0 {
		return &Progress{}
	}
	bar := pb.Full.New(total).SetWriter(dst)
	bar.Start()
	return &Progress{bar: bar}
}

// Increment is safe for concurrent use.
func (p *Progress) Increment() {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Increment()
}

// Finish stops the bar.
func (p *Progress) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Finish()
}
