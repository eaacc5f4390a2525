package services

// Outcome reports the fate of a best-effort persistence write performed
// after local state has already advanced. Callers may ignore it: the
// local/remote divergence it reports is intentional and is not rolled back.
type Outcome struct {
	Persisted bool
	Err       error
}

func persisted() Outcome {
	return Outcome{Persisted: true}
}

func failed(err error) Outcome {
	return Outcome{Err: err}
}
