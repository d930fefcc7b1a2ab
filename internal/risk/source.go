package risk

import "context"

// Source is the boundary to an external risk-scanning engine. Two instances
// exist in practice: the prelaunch device scan and the transaction risk
// register. Both return the same report shape; their internals are opaque.
type Source interface {
	Scan(ctx context.Context) (ScanReport, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (ScanReport, error)

func (f SourceFunc) Scan(ctx context.Context) (ScanReport, error) {
	return f(ctx)
}
