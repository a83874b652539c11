package pipeline

import "fmt"

// IngestError is the error surfaced when ingestion encounters a construct
// it cannot lower. The whole job is abandoned; no partial result exists.
type IngestError struct {
	Msg string
}

func (e *IngestError) Error() string { return e.Msg }

// fatalf aborts the current ingestion with an IngestError. The exported
// entry points recover it into a returned error.
func fatalf(format string, args ...interface{}) {
	panic(&IngestError{Msg: fmt.Sprintf(format, args...)})
}

// recoverIngestError converts an in-flight IngestError panic into err.
// Other panics propagate.
func recoverIngestError(err *error) {
	if r := recover(); r != nil {
		if ingestErr, ok := r.(*IngestError); ok {
			*err = ingestErr
			return
		}
		panic(r)
	}
}
