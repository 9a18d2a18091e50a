package domain

// Status is the block-level outcome shown to the workflow host.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the uniform envelope every block returns: either a payload with
// a success message, or a classified error. The payload is meaningful only
// when Status() == StatusSuccess.
type Result[T any] struct {
	status  Status
	message string
	payload T
	err     *BlockError
}

// Success builds a success envelope around payload.
func Success[T any](payload T, message string) Result[T] {
	return Result[T]{status: StatusSuccess, message: message, payload: payload}
}

// Failure builds an error envelope from err, classifying it if needed.
func Failure[T any](err error) Result[T] {
	be := AsBlockError(err)
	return Result[T]{status: StatusError, message: be.Message, err: be}
}

func (r Result[T]) Status() Status  { return r.status }
func (r Result[T]) Message() string { return r.message }

// Payload returns the payload and whether it is valid.
func (r Result[T]) Payload() (T, bool) {
	return r.payload, r.status == StatusSuccess
}

// Err returns the classified error, or nil on success.
func (r Result[T]) Err() *BlockError { return r.err }
