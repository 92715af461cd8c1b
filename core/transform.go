package core

// Transformer mutates a RunResult in place.
type Transformer interface {
	Transform(r *RunResult) error
}

// Chain applies transformers in order, stopping at the first error.
func Chain(r *RunResult, transformers ...Transformer) error {
	for _, tr := range transformers {
		if err := tr.Transform(r); err != nil {
			return err
		}
	}
	return nil
}
